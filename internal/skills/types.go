package skills

import "fmt"

// Type identifies a skill in the catalog.
type Type string

const (
	// Battery extends the decision time by EffectValue percent per stack.
	Battery Type = "battery"

	// Meditation restores EffectValue health the moment it is acquired.
	Meditation Type = "meditation"

	// Eloquence grants one retry per encounter instead of a penalty.
	Eloquence Type = "eloquence"

	// InnerDeduction lets the player reveal the wrong options once per encounter.
	InnerDeduction Type = "inner_deduction"

	// QuickThinking shows keyword cues under the dialogue.
	QuickThinking Type = "quick_thinking"
)

// AllTypes returns every known skill type.
func AllTypes() []Type {
	return []Type{Battery, Meditation, Eloquence, InnerDeduction, QuickThinking}
}

// Valid reports whether t is a known skill type.
func (t Type) Valid() bool {
	for _, k := range AllTypes() {
		if k == t {
			return true
		}
	}
	return false
}

// Definition is a catalog entry. Name and Description are display text.
type Definition struct {
	Type        Type    `json:"type"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Stackable   bool    `json:"stackable"`
	MaxStacks   int     `json:"max_stacks"`
	EffectValue float64 `json:"effect_value"`
}

// Cap returns the effective stack limit: MaxStacks for stackable skills
// (at least 1), otherwise 1.
func (d Definition) Cap() int {
	if !d.Stackable || d.MaxStacks < 1 {
		return 1
	}
	return d.MaxStacks
}

// Label renders the name with a stack suffix when more than one is held.
func (d Definition) Label(stacks int) string {
	if d.Stackable && stacks > 1 {
		return fmt.Sprintf("%s x%d", d.Name, stacks)
	}
	return d.Name
}
