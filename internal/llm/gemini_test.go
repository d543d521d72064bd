package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt":        map[string]any{"type": "string"},
			"correct_index": map[string]any{"type": "integer"},
			"strain":        map[string]any{"type": "string", "enum": []any{"C", "D", "H"}},
			"options": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "integer"},
				"minItems": 2,
				"maxItems": 6.0,
			},
		},
		"required": []any{"prompt", "correct_index"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["prompt"].Type != "STRING" {
		t.Fatalf("expected STRING for prompt, got %s", schema.Properties["prompt"].Type)
	}
	if schema.Properties["correct_index"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for correct_index, got %s", schema.Properties["correct_index"].Type)
	}
	if len(schema.Properties["strain"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["strain"].Enum))
	}
	if schema.Properties["options"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for options, got %s", schema.Properties["options"].Type)
	}
	if schema.Properties["options"].Items.Type != "INTEGER" {
		t.Fatalf("expected INTEGER for options items, got %s", schema.Properties["options"].Items.Type)
	}
	opts := schema.Properties["options"]
	if opts.MinItems == nil || *opts.MinItems != 2 {
		t.Fatalf("expected minItems 2, got %v", opts.MinItems)
	}
	if opts.MaxItems == nil || *opts.MaxItems != 6 {
		t.Fatalf("expected maxItems 6, got %v", opts.MaxItems)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}
