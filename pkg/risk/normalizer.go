// Package risk turns untrusted model output into validated risk items.
// The model is instructed to return a JSON array but routinely wraps it in
// code fences or prose, so parsing is defensive and never fails outright.
package risk

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Item is one risky clause identified in a document.
type Item struct {
	Clause    string `json:"clause"`
	RiskLevel string `json:"risk_level"`
	Reason    string `json:"reason"`
}

const (
	LevelLow    = "LOW"
	LevelMedium = "MEDIUM"
	LevelHigh   = "HIGH"
)

// maxItems caps how many array elements are considered per response.
const maxItems = 100

var fencePattern = regexp.MustCompile("(?is)^```(?:json)?\\s*|\\s*```$")

// CleanJSONArray strips optional code fences and slices the text to the span
// between the first '[' and the last ']' when such a span exists.
func CleanJSONArray(s string) string {
	s = strings.TrimSpace(s)
	s = fencePattern.ReplaceAllString(s, "")
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start != -1 && end != -1 && end > start {
		return s[start : end+1]
	}
	return s
}

// Normalize parses raw model output into risk items. It always returns at
// least one item: unparseable output degrades to a "Parsing error" entry and
// a parsed-but-empty result to a "No risks found" entry. Individual invalid
// elements are dropped, never patched.
func Normalize(raw string) []Item {
	var elements []json.RawMessage
	// A JSON null decodes into a nil slice without error; it is not an array,
	// so it takes the parse-failure branch like any other non-array document.
	if err := json.Unmarshal([]byte(CleanJSONArray(raw)), &elements); err != nil || elements == nil {
		return []Item{{
			Clause:    "Parsing error",
			RiskLevel: LevelLow,
			Reason:    "Could not parse AI output",
		}}
	}
	if len(elements) > maxItems {
		elements = elements[:maxItems]
	}

	items := make([]Item, 0, len(elements))
	for _, el := range elements {
		var fields map[string]any
		if err := json.Unmarshal(el, &fields); err != nil {
			continue // non-object element
		}
		if item, ok := coerce(fields); ok {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return []Item{{
			Clause:    "No risks found or parsing failed",
			RiskLevel: LevelLow,
			Reason:    "Fallback result",
		}}
	}
	return items
}

func coerce(fields map[string]any) (Item, bool) {
	clause, ok := fields["clause"].(string)
	if !ok {
		return Item{}, false
	}
	reason, ok := fields["reason"].(string)
	if !ok {
		return Item{}, false
	}
	level, ok := fields["risk_level"].(string)
	if !ok {
		return Item{}, false
	}
	level = strings.ToUpper(level)
	switch level {
	case LevelLow, LevelMedium, LevelHigh:
	default:
		return Item{}, false
	}
	return Item{Clause: clause, RiskLevel: level, Reason: reason}, true
}
