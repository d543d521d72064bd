package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records the start and end of a world run.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "session_events"}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.Int("world_id"),
		field.String("action").
			NotEmpty().
			Comment("start or end"),
		field.String("outcome").
			Default("").
			Comment("completed or abandoned (on end only)"),
		field.Int("questions_served").
			Default(0),
		field.Int("correct_answers").
			Default(0),
		field.Int("gems_earned").
			Default(0).
			Comment("Payout committed on completion"),
		field.Int("duration_secs").
			Default(0),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
