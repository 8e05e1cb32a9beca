package retrieval

import (
	"regexp"
	"sort"
	"strings"
)

// Letters, digits and underscore across all scripts; Go's \w is ASCII-only
// and would drop accented or non-Latin question words.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Context is a retrieved chunk reference used both to ground the QA prompt
// and as a citation in the response.
type Context struct {
	Chunk   int    `json:"chunk"`
	Snippet string `json:"snippet"`
}

// Score counts occurrences of the question's words inside the chunk,
// case-insensitively. A word repeated in the question contributes once per
// repetition, so the sum is intentionally not deduplicated.
func Score(chunkText, question string) int {
	lowered := strings.ToLower(chunkText)
	total := 0
	for _, w := range wordPattern.FindAllString(strings.ToLower(question), -1) {
		total += strings.Count(lowered, w)
	}
	return total
}

// LexicalSelector ranks chunks against a question by keyword overlap and
// keeps the TopN best as QA context, each truncated to Budget runes.
// Equal-score chunks keep their original order.
type LexicalSelector struct {
	TopN   int
	Budget int
}

func (s LexicalSelector) Select(chunks []string, question string) []Context {
	type ranked struct {
		index int
		score int
	}
	order := make([]ranked, len(chunks))
	for i, c := range chunks {
		order[i] = ranked{index: i, score: Score(c, question)}
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i].score > order[j].score })

	n := s.TopN
	if n > len(order) {
		n = len(order)
	}
	out := make([]Context, 0, n)
	for _, r := range order[:n] {
		out = append(out, Context{Chunk: r.index, Snippet: truncate(chunks[r.index], s.Budget)})
	}
	return out
}

func truncate(s string, budget int) string {
	if budget <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget])
}
