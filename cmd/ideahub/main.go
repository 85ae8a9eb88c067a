// Copyright (c) 2026 DXA Info <dev@dxag.info>
// All rights reserved. See LICENSE for details.

// ideahub is the content idea management server: AI-assisted idea
// generation, idea lifecycle management, and content calendar scheduling.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/ai"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/cache"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/config"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/database"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/generator"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/handlers"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/router"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/session"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/store"
)

func main() {
	logLevel := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}

	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			return err
		}
	}

	valkey, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		return err
	}
	defer valkey.Close()

	users := store.NewUserStore(db)
	ideas := store.NewIdeaStore(db)

	sessions := session.NewStore(valkey, !cfg.IsDev())

	registry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel},
		"gemini":  {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel},
		"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel},
	})
	slog.Info("ai providers configured",
		"active", registry.ActiveName(),
		"available", registry.Available(),
	)

	genCache := cache.NewGenerationCache(valkey, cache.DefaultGenerationTTL)
	gen := generator.New(registry, genCache)

	handler := router.New(router.Handlers{
		Auth:     handlers.NewAuthHandler(users, sessions),
		Ideas:    handlers.NewIdeaHandler(ideas),
		Generate: handlers.NewGenerateHandler(gen),
		Calendar: handlers.NewCalendarHandler(ideas),
		Sessions: sessions,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // generation responses wait on the LLM
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	slog.Info("server stopped")
	return nil
}
