package schema

import (
	"encoding/json"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Profile is a student profile submitted to the dev backend.
type Profile struct {
	ent.Schema
}

func (Profile) Mixin() []ent.Mixin {
	return []ent.Mixin{CreatedMixin{}}
}

func (Profile) Fields() []ent.Field {
	return []ent.Field{
		field.String("full_name"),
		field.String("father_name").Default(""),
		field.String("mother_name").Default(""),
		field.String("email"),
		field.String("phone_country_code").Default(""),
		field.String("phone_number").Default(""),
		field.String("nationality").Default(""),
		field.String("current_living_country").Default(""),
		field.Strings("preferred_countries").
			Comment("Destinations in selection order"),
		field.Int("budget_min_bdt").Default(0),
		field.Int("budget_max_bdt").Default(0),
		field.String("preferred_currency").Default(""),
		field.String("preferred_intake").Default(""),
		field.JSON("education", json.RawMessage{}).
			Comment("Education entries as submitted"),
		field.JSON("resume", json.RawMessage{}).
			Optional().
			Comment("Resume file name, content type and size; the file is not kept"),
	}
}

func (Profile) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("email"),
	}
}

func (Profile) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "profiles"}}
}
