// Command server runs the LegalEase AI backend: summarization, risk
// analysis and question answering over uploaded legal PDFs.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/legalease-ai/backend/pkg/cache"
	"github.com/legalease-ai/backend/pkg/config"
	"github.com/legalease-ai/backend/pkg/extract"
	"github.com/legalease-ai/backend/pkg/models"
	"github.com/legalease-ai/backend/pkg/server"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	llm, err := models.NewChain(ctx, cfg.Provider, cfg.Models())
	if err != nil {
		log.Fatalf("model setup: %v", err)
	}

	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatalf("cache setup: %v", err)
	}
	defer closeStore()

	var selector server.ContextSelector
	if cfg.QARetrieval == "embedding" {
		embedder, err := models.NewEmbedder(ctx, cfg.Provider, cfg.EmbedModel)
		if err != nil {
			log.Fatalf("embedding setup: %v", err)
		}
		selector = server.NewEmbeddingSelector(embedder)
	}

	srv := server.New(llm, extract.New(cfg.OCREnabled), store, selector, cfg.MaxPDFBytes(), cfg.RateLimitPerMin)
	handler := server.CORS(cfg.AllowedOrigins(), srv.Routes())

	addr := ":" + cfg.Port
	log.Printf("listening on %s (provider=%s model=%s cache=%s ocr=%t)",
		addr, cfg.Provider, cfg.Model, cfg.CacheBackend, cfg.OCREnabled)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func newStore(ctx context.Context, cfg config.Config) (cache.Store, func(), error) {
	switch cfg.CacheBackend {
	case "memory":
		return cache.NewMemoryStore(), func() {}, nil
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("CACHE_BACKEND=postgres requires DATABASE_URL")
		}
		st, err := cache.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return st, st.Close, nil
	case "sqlite":
		st, err := cache.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {
			if err := st.Close(); err != nil {
				log.Printf("close cache: %v", err)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}
