package logging

import (
	"log/slog"
	"strings"
)

type infoField struct {
	label string
	value string
}

// highlightKeys are rendered first, in this order, when present.
var highlightKeys = []string{
	FieldEventType,
	"file",
	"records",
	"batch_count",
	"batch_size",
	FieldProgressPercent,
	"corrections",
	"corrected_total",
	"unmatched",
	"language",
	"output",
	FieldErrorHint,
	FieldImpact,
	"error",
}

// selectFields orders attributes for console output. Header fields are
// skipped; debug-only keys appear only on debug records.
func selectFields(attrs []kv, debug bool) []infoField {
	if len(attrs) == 0 {
		return nil
	}
	used := make([]bool, len(attrs))
	result := make([]infoField, 0, len(attrs))
	add := func(idx int) {
		used[idx] = true
		attr := attrs[idx]
		if skipHeaderKey(attr.key) || (!debug && isDebugOnlyKey(attr.key)) {
			return
		}
		result = append(result, infoField{label: displayLabel(attr.key), value: formatValueForKey(attr.key, attr.value)})
	}
	for _, key := range highlightKeys {
		for idx, attr := range attrs {
			if !used[idx] && attr.key == key {
				add(idx)
				break
			}
		}
	}
	for idx := range attrs {
		if !used[idx] {
			add(idx)
		}
	}
	return result
}

func formatValueForKey(key string, v slog.Value) string {
	v = v.Resolve()
	if key == FieldProgressPercent && v.Kind() == slog.KindFloat64 {
		return formatPercent(v.Float64())
	}
	if v.Kind() == slog.KindBool {
		if v.Bool() {
			return "yes"
		}
		return "no"
	}
	value := formatValue(v)
	if key == "error" {
		value = truncateErrorValue(value)
	}
	return value
}

func truncateErrorValue(value string) string {
	value = strings.TrimSpace(value)
	const maxLen = 200
	if len(value) > maxLen {
		value = value[:maxLen] + "…"
	}
	return value
}

func skipHeaderKey(key string) bool {
	switch key {
	case "", FieldComponent, FieldStage, FieldBatch:
		return true
	default:
		return false
	}
}

func isDebugOnlyKey(key string) bool {
	switch key {
	case FieldRunID, FieldRequestID, "model", "endpoint", "prompt_bytes", "response_bytes":
		return true
	}
	return strings.HasSuffix(key, "_path") || strings.HasSuffix(key, "_dir")
}

func displayLabel(key string) string {
	switch key {
	case FieldEventType:
		return "Event"
	case FieldErrorHint:
		return "Hint"
	case FieldRunID:
		return "Run"
	case FieldRequestID:
		return "Request"
	case FieldProgressPercent:
		return "Progress"
	case "batch_count":
		return "Batches"
	case "corrected_total":
		return "Corrected"
	default:
		return titleizeKey(key)
	}
}

func titleizeKey(key string) string {
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
	}
	return strings.Join(parts, " ")
}
