package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SkillEvent records a skill picked at day end.
type SkillEvent struct {
	ent.Schema
}

func (SkillEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SkillEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id"),
		field.Int("day"),
		field.String("skill_type"),
		field.Int("stacks").
			Comment("Stack count after the pick"),
	}
}

func (SkillEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("skill_type"),
	}
}
