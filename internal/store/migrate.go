package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	sqlschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/goabroadai/goabroad/ent/schema"
)

// schemas lists the entities persisted by the store.
var schemas = []ent.Interface{
	entschema.ClientState{},
	entschema.Profile{},
	entschema.LLMRequestEvent{},
}

// tables turns the ent schemas into migration tables. Every table gets an
// auto-increment integer "id" primary key, as ent does by default.
func tables() ([]*sqlschema.Table, error) {
	out := make([]*sqlschema.Table, 0, len(schemas))
	for _, s := range schemas {
		t, err := tableOf(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func tableOf(s ent.Interface) (*sqlschema.Table, error) {
	t := sqlschema.NewTable(tableName(s))
	t.AddPrimary(&sqlschema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	fields := s.Fields()
	indexes := s.Indexes()
	for _, m := range s.Mixin() {
		fields = append(m.Fields(), fields...)
		indexes = append(indexes, m.Indexes()...)
	}

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t.Name, d.Name, d.Err)
		}
		t.AddColumn(columnOf(d))
	}
	for _, idx := range indexes {
		d := idx.Descriptor()
		t.AddIndex(t.Name+"_"+strings.Join(d.Fields, "_"), d.Unique, d.Fields)
	}
	return t, nil
}

func tableName(s ent.Interface) string {
	for _, a := range s.Annotations() {
		if ant, ok := a.(entsql.Annotation); ok && ant.Table != "" {
			return ant.Table
		}
	}
	return strings.ToLower(reflect.TypeOf(s).Name()) + "s"
}

func columnOf(d *field.Descriptor) *sqlschema.Column {
	c := &sqlschema.Column{
		Name:       d.Name,
		Type:       d.Info.Type,
		Size:       int64(d.Size),
		Unique:     d.Unique,
		Nullable:   d.Optional || d.Nillable,
		SchemaType: d.SchemaType,
	}
	if d.StorageKey != "" {
		c.Name = d.StorageKey
	}
	// Function defaults such as time.Now are applied by the repositories.
	if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
		c.Default = d.Default
	}
	return c
}

// migrate creates missing tables, columns and indexes with ent's Atlas
// migration engine.
func migrate(ctx context.Context, drv dialect.Driver) error {
	ts, err := tables()
	if err != nil {
		return err
	}
	m, err := sqlschema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	return m.Create(ctx, ts...)
}
