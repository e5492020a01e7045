package coach

import "github.com/abhisek/recallkit/internal/llm"

// AdviceSchema is the JSON schema coaching responses must satisfy.
var AdviceSchema = &llm.Schema{
	Name:        "coach-advice",
	Description: "Coaching feedback on a learner's free-text answer to a comprehension question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"feedback": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Two or three sentences of feedback addressed to the learner, in the language of the question",
			},
			"follow_up": map[string]any{
				"type":        "string",
				"description": "One follow-up question that targets the weakest part of the answer",
			},
			"missing_points": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"maxItems":    5,
				"description": "Key ideas from the source passage the answer leaves out",
			},
		},
		"required":             []any{"feedback", "follow_up", "missing_points"},
		"additionalProperties": false,
	},
}
