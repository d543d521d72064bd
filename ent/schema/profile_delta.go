package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ProfileDelta is one committed change to the player profile. Resource
// fields are relative.
type ProfileDelta struct {
	ent.Schema
}

func (ProfileDelta) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (ProfileDelta) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "profile_deltas"}}
}

func (ProfileDelta) Fields() []ent.Field {
	return []ent.Field{
		field.String("reason"),
		field.String("session_id").
			Default(""),
		field.Int("gems").Default(0),
		field.Int("hearts").Default(0),
		field.Int("levels").Default(0),
		field.Int("streak").Default(0),
		field.Int("complete_world").
			Default(0).
			Comment("World marked completed, 0 for none"),
		field.Int("unlock_world").
			Default(0).
			Comment("World unlocked, 0 for none"),
	}
}

func (ProfileDelta) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("reason"),
		index.Fields("session_id"),
	}
}
