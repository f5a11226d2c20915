package questions

import "github.com/abhisek/mathquiz/internal/llm"

var optionText = map[string]any{"type": "string"}

// ListSchema is the JSON schema a generated question list must satisfy.
// Extra properties are tolerated; models like to add explanations.
var ListSchema = &llm.Schema{
	Name:        "math-question-list",
	Description: "A list of four-option multiple choice math questions",
	Definition: map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":      "string",
					"minLength": 1,
				},
				"options": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"A": optionText,
						"B": optionText,
						"C": optionText,
						"D": optionText,
					},
					"required": []any{"A", "B", "C", "D"},
				},
				"correctAnswer": map[string]any{
					"type": "string",
					"enum": []any{"A", "B", "C", "D", "a", "b", "c", "d"},
				},
				"difficulty": map[string]any{"type": "string"},
				"topic":      map[string]any{"type": "string"},
			},
			"required": []any{"question", "options", "correctAnswer"},
		},
	},
}
