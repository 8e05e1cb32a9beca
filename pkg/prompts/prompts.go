// Package prompts builds the model prompts for each endpoint.
package prompts

import (
	"fmt"
	"strings"

	"github.com/legalease-ai/backend/pkg/retrieval"
)

// Summary asks for a lawyer-grade bullet summary plus a plain-language one.
func Summary(text string) string {
	return fmt.Sprintf(`Summarize the following legal document concisely:
1. 5-8 bullet points for a lawyer.
2. A simple explanation for a 15-year-old (3-5 sentences).
Be precise and avoid redundancy.

Text:
%s`, text)
}

// CombineSummaries merges per-chunk summaries into one overall summary.
func CombineSummaries(summaries []string) string {
	var b strings.Builder
	for _, s := range summaries {
		b.WriteString("- ")
		b.WriteString(s)
		b.WriteString("\n")
	}
	return fmt.Sprintf(`You are a legal summarization expert. Combine these section summaries into one concise overall summary with:
1) 5-8 bullet points for a lawyer
2) A simple ELI15 explanation (3-5 sentences)
Ensure no duplication and keep it faithful to the source.

Section summaries:
%s`, b.String())
}

// Risks instructs the model to emit a bare JSON array of risk objects.
func Risks(text string) string {
	return fmt.Sprintf(`Identify risky clauses in this legal text.
Output strictly as a JSON array of objects (no code fences, no extra text):
[
  {
    "clause": "...",
    "risk_level": "LOW" | "MEDIUM" | "HIGH",
    "reason": "..."
  }
]

Text:
%s`, text)
}

// QAWithContext grounds the answer in retrieved chunks, each labelled with
// its index so the model can cite [Chunk N] markers.
func QAWithContext(contexts []retrieval.Context, question string) string {
	parts := make([]string, 0, len(contexts))
	for _, c := range contexts {
		parts = append(parts, fmt.Sprintf("[Chunk %d]\n%s", c.Chunk, c.Snippet))
	}
	return fmt.Sprintf(`You are a helpful legal assistant. Use ONLY the provided context to answer the question.
- If the answer is not in the context, say you cannot find it.
- Cite evidence inline using [Chunk X] markers.

Context:
%s

Question: %s

Provide a concise answer with citations like [Chunk 0].`, strings.Join(parts, "\n\n"), question)
}
