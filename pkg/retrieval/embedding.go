package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// Embedder produces one vector per input text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbeddingSelector ranks chunks by cosine similarity between question and
// chunk embeddings. It is the semantic alternative to LexicalSelector and is
// only used when an embedding model is configured.
type EmbeddingSelector struct {
	Embedder Embedder
	TopN     int
	Budget   int
}

func (s EmbeddingSelector) Select(ctx context.Context, chunks []string, question string) ([]Context, error) {
	if len(chunks) == 0 {
		return nil, nil
	}
	vectors, err := s.Embedder.Embed(ctx, append([]string{question}, chunks...))
	if err != nil {
		return nil, fmt.Errorf("embed contexts: %w", err)
	}
	if len(vectors) != len(chunks)+1 {
		return nil, fmt.Errorf("embed contexts: got %d vectors for %d texts", len(vectors), len(chunks)+1)
	}
	queryVec := vectors[0]

	type ranked struct {
		index int
		score float64
	}
	order := make([]ranked, len(chunks))
	for i := range chunks {
		order[i] = ranked{index: i, score: cosineSimilarity(queryVec, vectors[i+1])}
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
	return out, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
