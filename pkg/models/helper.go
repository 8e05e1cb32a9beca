package models

import (
	"context"
	"fmt"
)

// NewLLMProvider builds one agent for the named provider.
func NewLLMProvider(ctx context.Context, provider, model string) (Agent, error) {
	switch provider {
	case "openai":
		return NewOpenAILLM(model), nil
	case "gemini", "google":
		return NewGeminiLLM(ctx, model)
	case "ollama":
		return NewOllamaLLM(model)
	case "anthropic", "claude":
		return NewAnthropicLLM(model), nil
	case "dummy":
		return NewDummyLLM(""), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

// NewChain builds a fallback chain over the given model names, first name
// ranked first. Construction failures abort: a misconfigured provider is a
// startup error, not something to paper over at request time.
func NewChain(ctx context.Context, provider string, modelNames []string) (*Chain, error) {
	if len(modelNames) == 0 {
		return nil, fmt.Errorf("provider %s: no models configured", provider)
	}
	candidates := make([]Candidate, 0, len(modelNames))
	seen := make(map[string]bool, len(modelNames))
	for _, name := range modelNames {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		agent, err := NewLLMProvider(ctx, provider, name)
		if err != nil {
			return nil, fmt.Errorf("provider %s model %s: %w", provider, name, err)
		}
		candidates = append(candidates, Candidate{Name: name, Agent: agent})
	}
	return &Chain{Candidates: candidates}, nil
}

// NewEmbedder builds the embedding client for the named provider. Only
// providers with embedding endpoints are supported.
func NewEmbedder(ctx context.Context, provider, model string) (Embedder, error) {
	switch provider {
	case "openai":
		return NewOpenAIEmbedder(model), nil
	case "gemini", "google":
		return NewGeminiEmbedder(ctx, model)
	default:
		return nil, fmt.Errorf("provider %s has no embedding support", provider)
	}
}

// Embedder produces one vector per input text. It backs the optional
// semantic retrieval path and mirrors retrieval.Embedder.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
