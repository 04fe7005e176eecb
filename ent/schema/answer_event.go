package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records every evaluated answer, including timeouts and retries.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Comment("Session that produced this answer"),
		field.Int("day"),
		field.String("encounter_id"),
		field.Int("mask").
			Comment("Chosen mask index; ignored for timeouts"),
		field.String("outcome").
			Comment("correct, wrong or timeout"),
		field.Bool("retry").
			Default(false).
			Comment("Whether the answer was replaced by a retry"),
		field.Int("health").
			Comment("Health before the answer took effect"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("outcome"),
	}
}
