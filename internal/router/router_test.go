// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the route table, the rate-limited group and
// the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"seowriter/internal/handlers"
	"seowriter/internal/middleware"
)

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	healthHandler(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestRoutesRegistered(t *testing.T) {
	r := New(handlers.New(handlers.Deps{}), nil)

	got := map[string]bool{}
	err := chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		got[method+" "+strings.TrimSuffix(route, "/")] = true
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	want := []string{
		"GET /health",
		"GET /api/stats",
		"GET /api/articles",
		"POST /api/articles/generate",
		"POST /api/articles/suggest-sources",
		"POST /api/articles/duplicate",
		"GET /api/articles/{id}",
		"GET /api/articles/{id}/logs",
		"PUT /api/articles/{id}",
		"DELETE /api/articles/{id}",
		"POST /api/articles/{id}/regenerate",
		"POST /api/articles/{id}/wordpress",
		"GET /api/categories",
		"POST /api/categories",
		"GET /api/categories/{id}",
		"PUT /api/categories/{id}",
		"DELETE /api/categories/{id}",
		"GET /api/topics",
		"POST /api/topics",
		"PUT /api/topics/{id}",
		"DELETE /api/topics/{id}",
		"GET /api/settings",
		"PUT /api/settings",
		"GET /api/settings/wp-status",
		"PUT /api/settings/ai-provider",
	}
	for _, route := range want {
		if !got[route] {
			t.Errorf("route %q not registered", route)
		}
	}
}

func TestModelRoutesAreRateLimited(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	r := New(handlers.New(handlers.Deps{}), limiter)

	post := func(path string) int {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
		req.RemoteAddr = "10.1.1.1:5555"
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr.Code
	}

	// Empty bodies fail validation before any model call.
	if code := post("/api/articles/suggest-sources"); code != http.StatusBadRequest {
		t.Fatalf("first call: got %d, want 400", code)
	}
	if code := post("/api/articles/suggest-sources"); code != http.StatusTooManyRequests {
		t.Errorf("second call: got %d, want 429", code)
	}
	if code := post("/api/articles/duplicate"); code != http.StatusBadRequest {
		t.Errorf("duplicate is not limited: got %d, want 400", code)
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	r := New(handlers.New(handlers.Deps{}), nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
}
