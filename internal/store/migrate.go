package store

import (
	"context"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	sqlschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/examgen/ent/schema"
)

const tableLLMEvents = "llm_request_events"

// llmEventsTable is built from the ent schema, which stays the single
// definition of the usage log's columns and indexes.
var llmEventsTable = tableFor(tableLLMEvents, entschema.LLMRequestEvent{})

func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := sqlschema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, llmEventsTable)
}

// tableFor converts an ent schema, mixins included, into a migration table
// with an auto-increment "id" primary key. Function defaults such as
// time.Now are applied on insert, not in the DDL.
func tableFor(name string, s ent.Interface) *sqlschema.Table {
	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	t := sqlschema.NewTable(name).
		AddPrimary(&sqlschema.Column{Name: "id", Type: field.TypeInt, Increment: true})
	for _, f := range fields {
		d := f.Descriptor()
		col := &sqlschema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional || d.Nillable,
		}
		if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
			col.Default = d.Default
		}
		t.AddColumn(col)
	}
	for _, idx := range indexes {
		d := idx.Descriptor()
		t.AddIndex(name+"_"+strings.Join(d.Fields, "_"), d.Unique, d.Fields)
	}
	return t
}
