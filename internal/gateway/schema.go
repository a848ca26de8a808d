package gateway

import "github.com/zoomerslab/hsclab/internal/llm"

// BatchSchema is the structured output shape for a quiz batch. Providers
// without top-level array support need the object wrapper.
var BatchSchema = &llm.Schema{
	Name:        "quiz-batch",
	Description: "A batch of HSC multiple-choice questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "The question stem",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 answer options",
						},
						"correctAnswer": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the correct option (0-3)",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct option is right",
						},
					},
					"required":             []any{"text", "options", "correctAnswer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
