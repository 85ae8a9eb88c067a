// Copyright (c) 2026 DXA Info <dev@dxag.info>
// All rights reserved. See LICENSE for details.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/session"
)

// newBareRouter builds the route tree with just enough wiring for routes
// that never reach a handler body (health, auth gating).
func newBareRouter() http.Handler {
	return New(Handlers{
		Sessions: session.NewStore(nil, false),
	})
}

func TestHealthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newBareRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body: %q", rec.Body.String())
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r := newBareRouter()

	paths := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/ideas"},
		{http.MethodPost, "/api/ideas"},
		{http.MethodPost, "/api/ideas/generate"},
		{http.MethodGet, "/api/calendar"},
		{http.MethodGet, "/api/calendar/today"},
		{http.MethodPut, "/api/calendar/batch"},
		{http.MethodGet, "/api/auth/me"},
	}
	for _, p := range paths {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(p.method, p.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: got %d, want 401", p.method, p.path, rec.Code)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newBareRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", rec.Code)
	}
}
