package pipeline

// JSON schemas for the six enrichment responses. Each task's model output is
// validated against its schema before the payload is assembled, so a single
// malformed response fails the whole job instead of storing partial content.

func taskSchema(task Task) map[string]any {
	switch task {
	case TaskSummary:
		return localizedTextProp()
	case TaskTerms:
		return envelopeSchema("terms", map[string]any{
			"type":     "array",
			"maxItems": 8,
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"term":       map[string]any{"type": "string", "minLength": 1},
					"definition": localizedTextProp(),
					"context":    localizedTextProp(),
				},
				"required": []string{"term", "definition", "context"},
			},
		})
	case TaskBackground:
		return envelopeSchema("knowledge", map[string]any{
			"type":     "array",
			"maxItems": 4,
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"title":   localizedTextProp(),
					"content": localizedTextProp(),
				},
				"required": []string{"title", "content"},
			},
		})
	case TaskQuiz:
		return envelopeSchema("quiz", map[string]any{
			"type":     "array",
			"minItems": 5,
			"maxItems": 5,
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"question": localizedTextProp(),
					"options":  localizedListProp(4, 4),
					"correct": map[string]any{
						"type":    "integer",
						"minimum": 0,
						"maximum": 3,
					},
					"explanation": localizedTextProp(),
				},
				"required": []string{"question", "options", "correct", "explanation"},
			},
		})
	case TaskObjectives:
		return localizedListProp(1, 5)
	case TaskKeywords:
		return localizedListProp(1, 8)
	default:
		return map[string]any{}
	}
}

func envelopeSchema(key string, inner map[string]any) map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           map[string]any{key: inner},
		"required":             []string{key},
	}
}

func localizedTextProp() map[string]any {
	lang := map[string]any{"type": "string", "minLength": 1}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"ko": lang,
			"en": lang,
			"zh": lang,
		},
		"required": []string{"ko", "en", "zh"},
	}
}

func localizedListProp(minItems, maxItems int) map[string]any {
	lang := map[string]any{
		"type":     "array",
		"minItems": minItems,
		"maxItems": maxItems,
		"items":    map[string]any{"type": "string", "minLength": 1},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"ko": lang,
			"en": lang,
			"zh": lang,
		},
		"required": []string{"ko", "en", "zh"},
	}
}
