package correction

// SchemaName is the property an object-rooted response wraps the items in.
const SchemaName = "corrections"

// ResponseSchema describes the expected reply: an array of correction items.
func ResponseSchema() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"sequenceNumber": map[string]any{
					"type":        "integer",
					"description": "The subtitle block number shown in brackets.",
				},
				"fixedText": map[string]any{
					"type":        "string",
					"description": "The corrected subtitle text.",
				},
				"reason": map[string]any{
					"type":        "string",
					"description": "A short explanation of the change.",
				},
			},
			"required": []string{"sequenceNumber", "fixedText", "reason"},
		},
	}
}
