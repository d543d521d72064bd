package worldgen

import "github.com/abhisek/bridgewise/internal/llm"

// WorldSchema is the response shape requested from the model. World
// identity comes from the request, so only questions are generated.
var WorldSchema = &llm.Schema{
	Name:        "bridge-world",
	Description: "A themed set of multiple-choice contract bridge questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt": map[string]any{
							"type":        "string",
							"description": "The question shown to the player, one or two sentences",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    2,
							"maxItems":    6,
							"description": "Answer options; exactly one is correct",
						},
						"correct_index": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"description": "Zero-based index of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct option is right, shown after answering and as the hint",
						},
					},
					"required":             []any{"prompt", "options", "correct_index", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

type worldOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}
