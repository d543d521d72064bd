package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ProfileSnapshot captures the whole profile after a delta, enabling fast
// restore without replaying the delta log.
type ProfileSnapshot struct {
	ent.Schema
}

func (ProfileSnapshot) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "profile_snapshots"}}
}

func (ProfileSnapshot) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Comment("Delta sequence number included in the snapshot"),
		field.Time("timestamp").
			Default(time.Now),
		field.Text("data").
			Comment("Profile as JSON"),
	}
}

func (ProfileSnapshot) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("sequence"),
	}
}
