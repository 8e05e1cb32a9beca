package models

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	ollama "github.com/ollama/ollama/api"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
)

// Candidate pairs a ready-to-call agent with the model name it serves,
// kept for logging which fallback answered.
type Candidate struct {
	Name  string
	Agent Agent
}

// Chain tries candidates in rank order, short-circuiting on the first
// non-empty output. Errors the Retryable predicate accepts advance to the
// next candidate; any other error stops the chain.
type Chain struct {
	Candidates []Candidate
	Retryable  func(error) bool
}

func (c *Chain) retryable(err error) bool {
	if c.Retryable != nil {
		return c.Retryable(err)
	}
	return DefaultRetryable(err)
}

func (c *Chain) Generate(ctx context.Context, prompt, system string) (string, error) {
	if len(c.Candidates) == 0 {
		return "", errors.New("no candidate models configured")
	}
	var lastErr error
	for i, cand := range c.Candidates {
		out, err := cand.Agent.Generate(ctx, prompt, system)
		if err != nil {
			lastErr = err
			if c.retryable(err) {
				log.Printf("model %q unavailable (%v), trying next candidate", cand.Name, err)
				continue
			}
			break
		}
		if strings.TrimSpace(out) == "" {
			log.Printf("empty response from model %q, trying next candidate", cand.Name)
			continue
		}
		if i > 0 {
			log.Printf("used fallback model %q", cand.Name)
		}
		return out, nil
	}
	if lastErr != nil {
		return "", fmt.Errorf("generate: %w", lastErr)
	}
	return "", errors.New("no candidate model produced output")
}

// DefaultRetryable classifies provider errors by status code rather than by
// matching error text: missing/forbidden/unknown models and quota pressure
// are worth trying the next candidate for, anything else is fatal.
func DefaultRetryable(err error) bool {
	var openaiErr *openai.APIError
	if errors.As(err, &openaiErr) {
		return retryableStatus(openaiErr.HTTPStatusCode)
	}
	var googleErr *googleapi.Error
	if errors.As(err, &googleErr) {
		return retryableStatus(googleErr.Code)
	}
	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return retryableStatus(anthropicErr.StatusCode)
	}
	var ollamaErr ollama.StatusError
	if errors.As(err, &ollamaErr) {
		return retryableStatus(ollamaErr.StatusCode)
	}
	return false
}

func retryableStatus(code int) bool {
	switch code {
	case 401, 403, 404, 429:
		return true
	}
	return false
}
