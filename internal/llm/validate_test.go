package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

var replySchema = &Schema{
	Name: "test-reply",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"line", "mask"},
		"properties": map[string]any{
			"line": map[string]any{"type": "string", "minLength": 1},
			"mask": map[string]any{"type": "string", "enum": []any{"mask1", "mask2"}},
		},
		"additionalProperties": false,
	},
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		schema  *Schema
		raw     string
		wantErr bool
	}{
		{"nil schema accepts text", nil, `not json`, false},
		{"valid", replySchema, `{"line":"hey","mask":"mask2"}`, false},
		{"not json", replySchema, `{"line":`, true},
		{"missing field", replySchema, `{"line":"hey"}`, true},
		{"bad enum", replySchema, `{"line":"hey","mask":"mask9"}`, true},
		{"extra field", replySchema, `{"line":"hey","mask":"mask1","x":1}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(tt.schema, json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			var invalid *ErrInvalidResponse
			if err != nil && !errors.As(err, &invalid) {
				t.Fatalf("err %T is not ErrInvalidResponse", err)
			}
		})
	}
}

func TestFinish_Truncated(t *testing.T) {
	_, err := finish(Request{}, &Response{Content: json.RawMessage(`{"li`), StopReason: StopMaxTokens})
	var truncated *ErrMaxTokensExceeded
	if !errors.As(err, &truncated) {
		t.Fatalf("err = %v, want ErrMaxTokensExceeded", err)
	}
}
