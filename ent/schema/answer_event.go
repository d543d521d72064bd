package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records one answered or timed-out question.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "answer_events"}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty(),
		field.Int("world_id"),
		field.Int("question_id"),
		field.Int("choice").
			Comment("Chosen option index, -1 on timeout"),
		field.Bool("correct"),
		field.Bool("timed_out").
			Default(false),
		field.Bool("hint_used").
			Default(false),
		field.Int64("time_ms").
			Default(0),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
