package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var maskEnum = []any{"mask1", "mask2", "mask3", "mask4", "1", "2", "3", "4"}

// EncounterSchema returns the JSON Schema for a single encounter record.
// Authoring reuses it as the structured-output schema sent to the LLM.
func EncounterSchema() map[string]any {
	fourStrings := map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "string", "minLength": 1},
		"minItems": 4,
		"maxItems": 4,
	}
	return map[string]any{
		"type":     "object",
		"required": []any{"id", "dialogue", "options", "feedback", "correct"},
		"properties": map[string]any{
			"id":           map[string]any{"type": "string", "pattern": "^[a-z0-9][a-z0-9_-]*$"},
			"dialogue":     map[string]any{"type": "string", "minLength": 1},
			"options":      fourStrings,
			"feedback":     fourStrings,
			"friend_group": map[string]any{"type": "string"},
			"day":          map[string]any{"type": "integer", "minimum": 0},
			"correct":      map[string]any{"type": "string", "enum": maskEnum},
			"neutral": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string", "enum": maskEnum},
				"uniqueItems": true,
				"maxItems":    3,
			},
			"keywords": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"additionalProperties": false,
	}
}

func skillSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"type", "name"},
		"properties": map[string]any{
			"type": map[string]any{
				"type": "string",
				"enum": []any{"battery", "meditation", "eloquence", "inner_deduction", "quick_thinking"},
			},
			"name":         map[string]any{"type": "string", "minLength": 1},
			"description":  map[string]any{"type": "string"},
			"stackable":    map[string]any{"type": "boolean"},
			"max_stacks":   map[string]any{"type": "integer", "minimum": 0},
			"effect_value": map[string]any{"type": "number"},
		},
		"additionalProperties": false,
	}
}

// PackSchema returns the JSON Schema for a whole content pack file.
func PackSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"version"},
		"properties": map[string]any{
			"version":    map[string]any{"type": "string"},
			"encounters": map[string]any{"type": "array", "items": EncounterSchema()},
			"skills":     map[string]any{"type": "array", "items": skillSchema()},
		},
		"additionalProperties": false,
	}
}

var (
	packSchemaOnce sync.Once
	packSchema     *jsonschema.Schema
	packSchemaErr  error
)

func compiledPackSchema() (*jsonschema.Schema, error) {
	packSchemaOnce.Do(func() {
		packSchema, packSchemaErr = compile("schema://content-pack.json", PackSchema())
	})
	return packSchema, packSchemaErr
}

func compile(url string, def map[string]any) (*jsonschema.Schema, error) {
	// Round-trip so the compiler sees plain JSON values.
	b, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(url)
}

// validateSchema checks raw pack JSON against PackSchema.
func validateSchema(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	s, err := compiledPackSchema()
	if err != nil {
		return fmt.Errorf("compile pack schema: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
