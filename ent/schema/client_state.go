package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
)

// ClientState is the client's key/value table, e.g. the remembered user ID.
type ClientState struct {
	ent.Schema
}

func (ClientState) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			Unique().
			NotEmpty(),
		field.String("value"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

func (ClientState) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "client_state"}}
}
