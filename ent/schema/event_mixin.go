// Package schema declares the store's tables as ent schemas. Nothing is
// generated from them: the store writes SQL with ent's dialect builder and
// goose applies the hand-written migration. store's schema test keeps the
// two in step.
package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/mixin"
)

// EventMixin adds the sequence and timestamp columns every log table
// carries. The sequence is shared across tables, so it orders a heart loss
// against the answer that caused it.
type EventMixin struct {
	mixin.Schema
}

func (EventMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Global order across all event tables"),
		field.Time("timestamp").
			Default(func() time.Time { return time.Now().UTC() }).
			Immutable().
			Comment("Stored in UTC so text comparison orders correctly"),
	}
}
