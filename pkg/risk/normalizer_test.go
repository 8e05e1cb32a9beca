package risk

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestCleanJSONArray(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"bare array", `[{"a":1}]`, `[{"a":1}]`},
		{"fenced", "```\n[1,2]\n```", "[1,2]"},
		{"fenced with tag", "```json\n[1,2]\n```", "[1,2]"},
		{"fenced upper tag", "```JSON\n[1]\n```", "[1]"},
		{"leading prose", "Here are the risks: [1,2] thanks", "[1,2]"},
		{"no brackets", "nothing here", "nothing here"},
		{"closing before opening", "] oops [", "] oops ["},
		{"surrounding whitespace", "  [1]  ", "[1]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanJSONArray(tc.input); got != tc.want {
				t.Fatalf("CleanJSONArray(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeValidArray(t *testing.T) {
	raw := `[
		{"clause": "Auto-renewal", "risk_level": "HIGH", "reason": "Renews silently"},
		{"clause": "Late fees", "risk_level": "MEDIUM", "reason": "Compounding"},
		{"clause": "Notices", "risk_level": "LOW", "reason": "Email allowed"}
	]`
	items := Normalize(raw)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Clause != "Auto-renewal" || items[1].Clause != "Late fees" || items[2].Clause != "Notices" {
		t.Fatalf("order not preserved: %+v", items)
	}
}

func TestNormalizeMalformedJSON(t *testing.T) {
	for _, raw := range []string{"not json at all", "{\"clause\": \"obj not array\"}", "[{unterminated", "null", "  null  "} {
		items := Normalize(raw)
		if len(items) != 1 {
			t.Fatalf("Normalize(%q): expected single fallback, got %d items", raw, len(items))
		}
		if items[0].Clause != "Parsing error" || items[0].RiskLevel != LevelLow {
			t.Fatalf("Normalize(%q): unexpected fallback %+v", raw, items[0])
		}
	}
}

func TestNormalizeModelErrorString(t *testing.T) {
	// A failed model call surfaces as prose, which must degrade to the
	// parse fallback rather than abort the request.
	items := Normalize("Error generating content: connection refused")
	if len(items) != 1 || items[0].Clause != "Parsing error" {
		t.Fatalf("unexpected result: %+v", items)
	}
}

func TestNormalizeAllInvalidItems(t *testing.T) {
	raw := `[{"clause": "x"}, {"risk_level": "HIGH"}, 42, "text", null]`
	items := Normalize(raw)
	if len(items) != 1 {
		t.Fatalf("expected single fallback, got %d items", len(items))
	}
	if items[0].Clause != "No risks found or parsing failed" || items[0].Reason != "Fallback result" {
		t.Fatalf("unexpected fallback: %+v", items[0])
	}
}

func TestNormalizeEmptyArray(t *testing.T) {
	items := Normalize("[]")
	if len(items) != 1 || items[0].Clause != "No risks found or parsing failed" {
		t.Fatalf("unexpected result: %+v", items)
	}
}

func TestNormalizeUppercasesRiskLevel(t *testing.T) {
	raw := `[{"clause": "c", "risk_level": "low", "reason": "r"},
		{"clause": "c2", "risk_level": "High", "reason": "r2"}]`
	items := Normalize(raw)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].RiskLevel != LevelLow || items[1].RiskLevel != LevelHigh {
		t.Fatalf("levels not upper-cased: %+v", items)
	}
}

func TestNormalizeRejectsUnknownLevel(t *testing.T) {
	raw := `[{"clause": "c", "risk_level": "SEVERE", "reason": "r"},
		{"clause": "ok", "risk_level": "HIGH", "reason": "fine"}]`
	items := Normalize(raw)
	if len(items) != 1 || items[0].Clause != "ok" {
		t.Fatalf("expected only the valid item, got %+v", items)
	}
}

func TestNormalizeSkipsNonStringLevel(t *testing.T) {
	raw := `[{"clause": "c", "risk_level": 3, "reason": "r"}]`
	items := Normalize(raw)
	if len(items) != 1 || items[0].Clause != "No risks found or parsing failed" {
		t.Fatalf("expected fallback, got %+v", items)
	}
}

func TestNormalizeCapsAt100Items(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < 150; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"clause": "c%d", "risk_level": "LOW", "reason": "r"}`, i)
	}
	sb.WriteString("]")
	items := Normalize(sb.String())
	if len(items) != 100 {
		t.Fatalf("expected 100 items, got %d", len(items))
	}
}

func TestNormalizeItemsMarshalShape(t *testing.T) {
	b, err := json.Marshal(Item{Clause: "c", RiskLevel: LevelHigh, Reason: "r"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"clause":"c","risk_level":"HIGH","reason":"r"}`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}
}
