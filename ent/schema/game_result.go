package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// GameResult records one finished game.
type GameResult struct {
	ent.Schema
}

func (GameResult) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (GameResult) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Unique().
			Comment("Session the result belongs to"),
		field.Uint32("seed").
			Comment("Seed the game was played with"),
		field.Bool("won"),
		field.Int("day").
			Comment("Day reached when the game ended"),
		field.Int("health").
			Comment("Health left at game end"),
		field.Int("total_answers").
			Default(0),
		field.Int("correct_answers").
			Default(0),
		field.Strings("skills").
			Optional().
			Comment("Acquired skills as display lines, e.g. \"Battery x2\""),
	}
}

func (GameResult) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("won"),
	}
}
