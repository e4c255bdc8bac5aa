package correction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"subfix/internal/services/llm"
)

// Item is one correction returned by the service.
type Item struct {
	SequenceNumber int
	FixedText      string
	Reason         string
}

type wireItem struct {
	SequenceNumber *float64 `json:"sequenceNumber"`
	// Index is accepted as an alias for SequenceNumber.
	Index     *float64 `json:"index"`
	FixedText *string  `json:"fixedText"`
	Reason    *string  `json:"reason"`
}

// DecodeItems parses a service reply. The reply is either an array of items
// or an object holding that array under "corrections". Every item must carry
// an integral sequence number, fixedText, and reason.
func DecodeItems(content string) ([]Item, error) {
	var raw json.RawMessage
	if err := llm.DecodeLLMJSON(content, &raw); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	raw = bytes.TrimSpace(raw)

	var wire []wireItem
	switch {
	case len(raw) > 0 && raw[0] == '[':
		if err := json.Unmarshal(raw, &wire); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
	case len(raw) > 0 && raw[0] == '{':
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("decode reply object: %w", err)
		}
		list, ok := wrapped[SchemaName]
		if !ok {
			return nil, fmt.Errorf("reply object has no %q array", SchemaName)
		}
		if err := json.Unmarshal(list, &wire); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
	default:
		return nil, fmt.Errorf("reply is not a JSON array: %s", llm.SummarizePayload(string(raw)))
	}

	items := make([]Item, 0, len(wire))
	for i, w := range wire {
		item, err := w.validate()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (w wireItem) validate() (Item, error) {
	number := w.SequenceNumber
	if number == nil {
		number = w.Index
	}
	if number == nil {
		return Item{}, errors.New("missing sequenceNumber")
	}
	if *number != math.Trunc(*number) {
		return Item{}, fmt.Errorf("sequenceNumber %v is not an integer", *number)
	}
	if *number < math.MinInt || *number >= math.MaxInt {
		return Item{}, fmt.Errorf("sequenceNumber %v is out of range", *number)
	}
	if w.FixedText == nil {
		return Item{}, errors.New("missing fixedText")
	}
	if w.Reason == nil {
		return Item{}, errors.New("missing reason")
	}
	return Item{SequenceNumber: int(*number), FixedText: *w.FixedText, Reason: *w.Reason}, nil
}
