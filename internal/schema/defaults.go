package schema

// DefaultDoc returns the schema document written by "taxstud new": a minimal
// hierarchy and one facet dimension, plus enough JSON-Schema keywords for
// the conformance pass to enforce the data document shape.
func DefaultDoc() map[string]any {
	return map[string]any{
		"$schema":     "http://json-schema.org/draft-07/schema#",
		"$id":         "default",
		"title":       "Default Schema",
		"description": "Default taxonomy schema",
		"type":        "object",
		"required":    []any{"schema", "items"},
		"properties": map[string]any{
			"schema": map[string]any{"type": "string"},
			"items": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"name", "classical_path", "facets"},
					"properties": map[string]any{
						"name": map[string]any{"type": "string"},
						"classical_path": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 1,
						},
						"facets": map[string]any{"type": "object"},
					},
				},
			},
		},
		"classical_hierarchy": map[string]any{
			"root": "Root",
		},
		"faceted_dimensions": map[string]any{
			"category": []any{"uncategorized"},
		},
	}
}
