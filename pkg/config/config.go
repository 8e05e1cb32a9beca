// Package config reads service configuration from the environment, loading a
// local .env file first when present.
package config

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	MaxPDFMB        int
	OCREnabled      bool
	RateLimitPerMin int

	FrontendOrigin string
	ExtraOrigins   []string

	Provider       string
	Model          string
	FallbackModels []string
	EmbedModel     string
	QARetrieval    string // "lexical" (default) or "embedding"

	CacheBackend string // "memory" (default), "postgres" or "sqlite"
	DatabaseURL  string
	SQLitePath   string
}

// Load reads configuration with defaults for every value. A missing .env
// file is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            getString("PORT", "8000"),
		MaxPDFMB:        getInt("MAX_PDF_MB", 10),
		OCREnabled:      getBool("OCR_ENABLED", false),
		RateLimitPerMin: getInt("RATE_LIMIT_PER_MIN", 60),

		FrontendOrigin: getString("FRONTEND_ORIGIN", "http://localhost:3000"),
		ExtraOrigins:   getList("CORS_ORIGINS"),

		Provider:       getString("LLM_PROVIDER", "gemini"),
		Model:          getString("LLM_MODEL", "gemini-2.0-flash"),
		FallbackModels: getList("LLM_FALLBACK_MODELS"),
		EmbedModel:     getString("LLM_EMBED_MODEL", ""),
		QARetrieval:    getString("QA_RETRIEVAL", "lexical"),

		CacheBackend: getString("CACHE_BACKEND", "memory"),
		DatabaseURL:  getString("DATABASE_URL", ""),
		SQLitePath:   getString("CACHE_SQLITE_PATH", "legalease_cache.db"),
	}
}

// MaxPDFBytes is the upload size cap in bytes.
func (c Config) MaxPDFBytes() int64 {
	return int64(c.MaxPDFMB) << 20
}

// Models returns the ranked candidate list: configured model first, then
// fallbacks, duplicates removed downstream.
func (c Config) Models() []string {
	return append([]string{c.Model}, c.FallbackModels...)
}

// AllowedOrigins is the sorted CORS allow-list: frontend origin, local dev
// hosts and any configured extras.
func (c Config) AllowedOrigins() []string {
	set := map[string]bool{
		c.FrontendOrigin:        true,
		"http://localhost:3000": true,
		"http://127.0.0.1:3000": true,
	}
	for _, o := range c.ExtraOrigins {
		set[o] = true
	}
	out := make([]string, 0, len(set))
	for o := range set {
		if o != "" {
			out = append(out, o)
		}
	}
	sort.Strings(out)
	return out
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return strings.EqualFold(v, "true") || v == "1"
}

func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
