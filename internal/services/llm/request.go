package llm

import "strings"

// Request is a single JSON-mode completion request. Schema is an optional JSON
// Schema for the response; providers that require an object root receive it
// wrapped under SchemaName (see ObjectRootSchema).
type Request struct {
	System     string
	User       string
	Schema     map[string]any
	SchemaName string
}

func (r Request) normalized() Request {
	r.System = strings.TrimSpace(r.System)
	r.User = strings.TrimSpace(r.User)
	r.SchemaName = strings.TrimSpace(r.SchemaName)
	if r.SchemaName == "" {
		r.SchemaName = "result"
	}
	return r
}

// ObjectRootSchema returns schema unchanged when its root is an object and
// otherwise wraps it as the single required property name.
func ObjectRootSchema(name string, schema map[string]any) map[string]any {
	if schema == nil {
		return nil
	}
	if t, _ := schema["type"].(string); strings.EqualFold(t, "object") {
		return schema
	}
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{name: schema},
		"required":   []string{name},
	}
}
