package mcqgen

import "github.com/omerk/quizforge/internal/llm"

// BatchSchema defines the JSON schema for a batch generation response.
var BatchSchema = &llm.Schema{
	Name:        "mcq-batch",
	Description: "A batch of multiple-choice practice questions grounded in the provided material",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"description": "The generated questions, one entry per question",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"stem": map[string]any{
							"type":        "string",
							"description": "The question text, in the same language as the source material",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 answer options, exactly one of which is correct",
						},
						"correct_index": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"maximum":     3,
							"description": "Zero-based index of the correct option",
						},
						"topic": map[string]any{
							"type":        "string",
							"description": "The topic label this question belongs to, from the requested topics when given",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "A short explanation of why the correct answer is right",
						},
					},
					"required":             []any{"stem", "options", "correct_index", "topic", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
