package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/wishlist-ai/pkg/config"
	"github.com/angelmondragon/wishlist-ai/pkg/logger"
)

func TestRequestIDGeneratesAndPropagates(t *testing.T) {
	handler := RequestID(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("expected propagated id, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); len(got) > maxRequestIDLength {
		t.Fatalf("expected oversized id to be replaced, got %d chars", len(got))
	}
}

func TestRecovererWritesInternalError(t *testing.T) {
	handler := Recoverer(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/apps/wishlist", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != false {
		t.Fatalf("expected success=false, got %v", body)
	}
}

func TestLoggingRecordsStatusAndAction(t *testing.T) {
	var buf bytes.Buffer
	logg := logger.New(logger.Options{ServiceName: "test", Output: &buf})
	handler := Logging(logg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/apps/wishlist?action=check", nil))

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if line["status"] != float64(http.StatusNotFound) || line["action"] != "check" {
		t.Fatalf("unexpected log line %v", line)
	}
}

func TestShopContextFallsBackToHeader(t *testing.T) {
	var seen string
	handler := ShopContext(logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ShopFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/apps/wishlist", nil)
	req.Header.Set(ShopDomainHeader, "demo.myshopify.com")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "demo.myshopify.com" {
		t.Fatalf("expected header shop, got %q", seen)
	}

	req = httptest.NewRequest(http.MethodGet, "/apps/wishlist?shop=query.myshopify.com", nil)
	req.Header.Set(ShopDomainHeader, "demo.myshopify.com")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "query.myshopify.com" {
		t.Fatalf("expected query shop to win, got %q", seen)
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	handler := CORS(config.CORSConfig{AllowedOrigins: []string{"https://demo.myshopify.com"}})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodOptions, "/apps/wishlist", nil)
	req.Header.Set("Origin", "https://demo.myshopify.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://demo.myshopify.com" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}
