// Copyright (c) 2026 DXA Info <dev@dxag.info>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/session"
)

type contextKey string

// SessionKey is the context key under which LoadSession stores session
// data. Exported so tests can inject sessions directly.
const SessionKey contextKey = "session"

// LoadSession resolves the session cookie against Valkey and, when valid,
// attaches the session data to the request context. Requests without a
// session pass through untouched.
func LoadSession(sessions *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := sessions.Get(r.Context(), r)
			if err != nil {
				slog.Warn("session lookup failed", "error", err)
			}
			if data != nil {
				ctx := context.WithValue(r.Context(), SessionKey, data)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests that carry no authenticated session with a
// 401 JSON error. It must run after LoadSession.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFromCtx(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"authentication required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFromCtx returns the session data attached by LoadSession, or nil
// when the request is unauthenticated.
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}
