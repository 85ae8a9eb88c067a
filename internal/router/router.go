// Copyright (c) 2026 DXA Info <dev@dxag.info>
// All rights reserved. See LICENSE for details.

// Package router assembles the chi route tree and wires handlers to
// middleware.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/handlers"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/middleware"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/session"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Ideas    *handlers.IdeaHandler
	Generate *handlers.GenerateHandler
	Calendar *handlers.CalendarHandler
	Sessions *session.Store
}

// New builds the application's route tree.
func New(h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadSession(h.Sessions))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Generation calls paid AI APIs; keep the per-user budget tight.
	genLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/me", h.Auth.Me)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Route("/ideas", func(r chi.Router) {
				r.Get("/", h.Ideas.List)
				r.Post("/", h.Ideas.Create)

				r.With(genLimiter.Limit).Post("/generate", h.Generate.Generate)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Ideas.Get)
					r.Put("/", h.Ideas.Update)
					r.Delete("/", h.Ideas.Delete)
				})
			})

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/", h.Calendar.Events)
				r.Get("/today", h.Calendar.Today)
				r.Put("/batch", h.Calendar.Batch)
				r.Put("/{id}", h.Calendar.Schedule)
				r.Delete("/{id}", h.Calendar.Unschedule)
			})
		})
	})

	return r
}
