package tutor

import "github.com/Natnat0905/GeoChat/internal/llm"

// AnswerSchema defines the JSON schema for tutor responses.
var AnswerSchema = &llm.Schema{
	Name:        "geometry-answer",
	Description: "A geometry tutoring answer with optional shape parameters for visualization",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"shape": map[string]any{
				"type":        "string",
				"description": "The shape family the question is about, or an empty string when the question has no drawable shape",
			},
			"parameters": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type": []any{"number", "string", "array"},
				},
				"description": "Named measurements for the shape. Numbers preferred; short arithmetic expressions allowed. Empty object when shape is empty.",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Step-by-step worked solution with units",
			},
		},
		"required":             []any{"shape", "parameters", "explanation"},
		"additionalProperties": false,
	},
}
