package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORSAllowsListedOrigin(t *testing.T) {
	var reached bool
	h := CORS([]string{"http://localhost:3000"}, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !reached {
		t.Fatal("handler not reached")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("Allow-Origin = %q", got)
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatal("credentials header missing")
	}
}

func TestCORSIgnoresUnlistedOrigin(t *testing.T) {
	h := CORS([]string{"http://localhost:3000"}, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("Allow-Origin = %q for unlisted origin", got)
	}
}

func TestCORSAnswersPreflightWithoutCallingNext(t *testing.T) {
	var reached bool
	h := CORS([]string{"http://localhost:3000"}, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/summarize", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if reached {
		t.Fatal("preflight reached the wrapped handler")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("preflight status %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatal("Allow-Methods missing on preflight")
	}
}

func TestClientIDFallsBackForUnparseableAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/summarize", nil)
	req.RemoteAddr = "not-an-addr"
	if got := clientID(req); got != "?" {
		t.Fatalf("clientID = %q, want ?", got)
	}

	req.RemoteAddr = "203.0.113.9:12345"
	if got := clientID(req); got != "203.0.113.9" {
		t.Fatalf("clientID = %q", got)
	}
}
