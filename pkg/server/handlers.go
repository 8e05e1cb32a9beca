package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/legalease-ai/backend/pkg/cache"
	"github.com/legalease-ai/backend/pkg/chunk"
	"github.com/legalease-ai/backend/pkg/extract"
	"github.com/legalease-ai/backend/pkg/prompts"
	"github.com/legalease-ai/backend/pkg/ratelimit"
	"github.com/legalease-ai/backend/pkg/retrieval"
	"github.com/legalease-ai/backend/pkg/risk"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		httpError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"name":   "LegalEase AI Backend",
		"docs":   "/metrics",
		"health": "/health",
	})
}

func (s *Server) handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, "summarize", s.summarize)
}

func (s *Server) handleRisks(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, "risks", s.risks)
}

func (s *Server) handleQA(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, "qa", s.qa)
}

// serve wraps an orchestrator with method check, rate limiting, metrics and
// error-to-status mapping.
func (s *Server) serve(w http.ResponseWriter, r *http.Request, endpoint string, fn func(*http.Request) (json.RawMessage, error)) {
	s.metrics.Requests.WithLabelValues(endpoint).Inc()
	timer := prometheus.NewTimer(s.metrics.Duration.WithLabelValues(endpoint))
	defer timer.ObserveDuration()

	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := s.limiter.Check(clientID(r)); err != nil {
		s.metrics.Errors.WithLabelValues(endpoint).Inc()
		httpError(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
		return
	}

	payload, err := fn(r)
	if err != nil {
		s.metrics.Errors.WithLabelValues(endpoint).Inc()
		status, detail := statusFor(err)
		httpError(w, status, detail)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType, err.Error()
	case errors.Is(err, ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ratelimit.ErrLimited):
		return http.StatusTooManyRequests, "Rate limit exceeded. Please try again later."
	case errors.Is(err, extract.ErrOCRUnavailable):
		return http.StatusInternalServerError, err.Error()
	case errors.Is(err, extract.ErrNoText), errors.Is(err, extract.ErrBadPDF):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrModelCall):
		return http.StatusBadGateway, err.Error()
	default:
		log.Printf("unexpected error: %v", err)
		return http.StatusInternalServerError, "internal error"
	}
}

func (s *Server) summarize(r *http.Request) (json.RawMessage, error) {
	ctx := r.Context()
	data, err := s.readUpload(r)
	if err != nil {
		return nil, err
	}
	key := cache.Key("summarize", cache.Digest(data))
	return s.memoized(ctx, key, func() ([]byte, error) {
		text, err := s.extractor.Text(ctx, data)
		if err != nil {
			return nil, err
		}
		chunks := chunk.Split(text, summaryChunkChars)

		var summary string
		if len(chunks) == 1 {
			summary, err = s.llm.Generate(ctx, prompts.Summary(chunks[0]), "")
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrModelCall, err)
			}
		} else {
			partials := make([]string, len(chunks))
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(maxParallelSummaries)
			for i, c := range chunks {
				g.Go(func() error {
					out, err := s.llm.Generate(gctx, prompts.Summary(c), "")
					if err != nil {
						return err
					}
					partials[i] = out
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrModelCall, err)
			}
			summary, err = s.llm.Generate(ctx, prompts.CombineSummaries(partials), "")
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrModelCall, err)
			}
		}
		return json.Marshal(SummaryResponse{Summary: summary})
	})
}

func (s *Server) risks(r *http.Request) (json.RawMessage, error) {
	ctx := r.Context()
	data, err := s.readUpload(r)
	if err != nil {
		return nil, err
	}
	key := cache.Key("risks", cache.Digest(data))
	return s.memoized(ctx, key, func() ([]byte, error) {
		text, err := s.extractor.Text(ctx, data)
		if err != nil {
			return nil, err
		}
		raw, err := s.llm.Generate(ctx, prompts.Risks(text), "Only output valid JSON.")
		if err != nil {
			// A failed model call degrades to the normalizer's parse
			// fallback instead of aborting the request.
			log.Printf("risks model call failed: %v", err)
			raw = "Error generating content: " + err.Error()
		}
		return json.Marshal(RisksResponse{Risks: risk.Normalize(raw)})
	})
}

func (s *Server) qa(r *http.Request) (json.RawMessage, error) {
	ctx := r.Context()
	data, err := s.readUpload(r)
	if err != nil {
		return nil, err
	}
	question := strings.TrimSpace(r.FormValue("question"))
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", ErrBadRequest)
	}
	key := cache.QAKey(cache.Digest(data), question)
	return s.memoized(ctx, key, func() ([]byte, error) {
		text, err := s.extractor.Text(ctx, data)
		if err != nil {
			return nil, err
		}
		chunks := chunk.Split(text, qaChunkChars)
		contexts, err := s.selector.Select(ctx, chunks, question)
		if err != nil {
			return nil, err
		}
		if contexts == nil {
			contexts = []retrieval.Context{}
		}
		answer, err := s.llm.Generate(ctx, prompts.QAWithContext(contexts, question), "")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrModelCall, err)
		}
		return json.Marshal(QAResponse{Answer: answer, Citations: contexts})
	})
}
