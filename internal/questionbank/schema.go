package questionbank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const packSchemaURL = "schema://bridgewise-pack.json"

// packSchema describes the JSON layout of a world pack.
var packSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"format_version": map[string]any{
			"type":    "string",
			"pattern": "^v[0-9]+(\\.[0-9]+){0,2}$",
		},
		"worlds": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":          map[string]any{"type": "integer", "minimum": 1},
					"name":        map[string]any{"type": "string", "minLength": 1},
					"description": map[string]any{"type": "string"},
					"topics": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"questions": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id":     map[string]any{"type": "integer", "minimum": 1},
								"prompt": map[string]any{"type": "string", "minLength": 1},
								"options": map[string]any{
									"type":     "array",
									"minItems": 2,
									"items":    map[string]any{"type": "string", "minLength": 1},
								},
								"correct_index": map[string]any{"type": "integer", "minimum": 0},
								"explanation":   map[string]any{"type": "string"},
							},
							"required":             []any{"id", "prompt", "options", "correct_index", "explanation"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []any{"id", "name", "questions"},
				"additionalProperties": false,
			},
		},
	},
	"required": []any{"format_version", "worlds"},
}

var compilePackSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler wants plain decoded JSON, not Go ints.
	raw, err := json.Marshal(packSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal pack schema: %w", err)
	}
	var def any
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parse pack schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(packSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(packSchemaURL)
})
