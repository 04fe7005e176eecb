package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Stat is a key/value summary block, overwritten in place.
type Stat struct {
	ent.Schema
}

func (Stat) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			Unique(),
		field.Text("data").
			Comment("JSON-encoded block"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}
