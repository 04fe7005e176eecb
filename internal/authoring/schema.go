package authoring

import (
	"github.com/abhisek/masquerade/internal/content"
	"github.com/abhisek/masquerade/internal/llm"
)

// DraftSchema is the structured output requested from the model: a batch
// of encounters in content-pack form.
var DraftSchema = &llm.Schema{
	Name:        "encounter-draft",
	Description: "A batch of social encounters, each with four masked replies and feedback",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"encounters"},
		"properties": map[string]any{
			"encounters": map[string]any{
				"type":     "array",
				"items":    content.EncounterSchema(),
				"minItems": 1,
			},
		},
		"additionalProperties": false,
	},
}
