// Package server composes the upload pipeline behind the three document
// endpoints: validate, hash, cache-check, extract, chunk, model call(s),
// normalize, cache, respond.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/legalease-ai/backend/pkg/cache"
	"github.com/legalease-ai/backend/pkg/models"
	"github.com/legalease-ai/backend/pkg/ratelimit"
	"github.com/legalease-ai/backend/pkg/retrieval"
)

const (
	summaryChunkChars    = 3000
	qaChunkChars         = 1500
	qaTopChunks          = 5
	qaSnippetBudget      = 800
	maxParallelSummaries = 4
)

// TextExtractor is the document-to-text collaborator.
type TextExtractor interface {
	Text(ctx context.Context, data []byte) (string, error)
}

// ContextSelector picks QA context chunks for a question.
type ContextSelector interface {
	Select(ctx context.Context, chunks []string, question string) ([]retrieval.Context, error)
}

type lexicalSelector struct {
	inner retrieval.LexicalSelector
}

func (l lexicalSelector) Select(_ context.Context, chunks []string, question string) ([]retrieval.Context, error) {
	return l.inner.Select(chunks, question), nil
}

// NewLexicalSelector returns the default keyword-overlap selector.
func NewLexicalSelector() ContextSelector {
	return lexicalSelector{retrieval.LexicalSelector{TopN: qaTopChunks, Budget: qaSnippetBudget}}
}

// NewEmbeddingSelector returns the semantic selector with the same context
// limits as the lexical one.
func NewEmbeddingSelector(embedder retrieval.Embedder) ContextSelector {
	return &retrieval.EmbeddingSelector{Embedder: embedder, TopN: qaTopChunks, Budget: qaSnippetBudget}
}

type Server struct {
	llm            models.Agent
	extractor      TextExtractor
	store          cache.Store
	selector       ContextSelector
	limiter        *ratelimit.Limiter
	metrics        *Metrics
	maxUploadBytes int64

	flight singleflight.Group
}

// New wires the endpoint orchestrators. A nil selector falls back to lexical
// retrieval.
func New(llm models.Agent, extractor TextExtractor, store cache.Store, selector ContextSelector, maxUploadBytes int64, ratePerMin int) *Server {
	if selector == nil {
		selector = NewLexicalSelector()
	}
	return &Server{
		llm:            llm,
		extractor:      extractor,
		store:          store,
		selector:       selector,
		limiter:        ratelimit.New(ratePerMin, time.Minute),
		metrics:        NewMetrics(),
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes registers all endpoints on a fresh mux.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/favicon.ico", s.handleFavicon)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", s.metrics.Handler())
	mux.HandleFunc("/summarize", s.handleSummarize)
	mux.HandleFunc("/risks", s.handleRisks)
	mux.HandleFunc("/qa", s.handleQA)
	return mux
}

// memoized returns the cached payload for key, or computes, stores and
// returns it. Concurrent requests for the same key share one computation.
func (s *Server) memoized(ctx context.Context, key string, compute func() ([]byte, error)) (json.RawMessage, error) {
	if payload, ok, err := s.store.Get(ctx, key); err != nil {
		log.Printf("cache get: %v", err) // degraded: recompute below
	} else if ok {
		return json.RawMessage(payload), nil
	}

	v, err, _ := s.flight.Do(key, func() (any, error) {
		if payload, ok, err := s.store.Get(ctx, key); err == nil && ok {
			return payload, nil
		}
		payload, err := compute()
		if err != nil {
			return nil, err
		}
		if err := s.store.Put(ctx, key, payload); err != nil {
			log.Printf("cache put: %v", err)
		}
		return payload, nil
	})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(v.([]byte)), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func httpError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
