// Copyright (c) 2026 DXA Info <dev@dxag.info>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable. The tests live in the external test package so they can
// route requests through the real route tree without an import cycle.
package handlers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/ai"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/database"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/generator"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/handlers"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/models"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/router"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/session"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/store"
)

// mockAIProvider implements ai.Provider for handler tests.
type mockAIProvider struct {
	response string
	err      error
}

func (m *mockAIProvider) Name() string { return "mock" }
func (m *mockAIProvider) Generate(_ context.Context, _ ai.Request) (string, error) {
	return m.response, m.err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "ideahub")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "ideahub")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client on DB 15, skipping when Valkey
// is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "gen:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB        *sql.DB
	Valkey    *redis.Client
	Sessions  *session.Store
	Users     *store.UserStore
	Ideas     *store.IdeaStore
	Provider  *mockAIProvider
	Handler   http.Handler
}

// newTestEnv creates a complete test environment routed through the real
// route tree, with the AI provider mocked out.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk, false)
	users := store.NewUserStore(db)
	ideas := store.NewIdeaStore(db)

	provider := &mockAIProvider{response: `[{"title": "Mock Idea", "description": "From the mock.", "keywords": ["mock"], "targetAudience": "testers", "estimatedEngagement": "high"}]`}
	gen := generator.New(provider, nil)

	handler := router.New(router.Handlers{
		Auth:     handlers.NewAuthHandler(users, sessions),
		Ideas:    handlers.NewIdeaHandler(ideas),
		Generate: handlers.NewGenerateHandler(gen),
		Calendar: handlers.NewCalendarHandler(ideas),
		Sessions: sessions,
	})

	return &testEnv{
		DB:       db,
		Valkey:   vk,
		Sessions: sessions,
		Users:    users,
		Ideas:    ideas,
		Provider: provider,
		Handler:  handler,
	}
}

// signup creates a user and returns their session cookie.
func (env *testEnv) signup(t *testing.T) (*models.User, *http.Cookie) {
	t.Helper()

	email := "h-" + uuid.NewString() + "@example.com"
	user, err := env.Users.Create(email, "password123", "Handler Test")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() { env.Users.Delete(user.ID) })

	rec := httptest.NewRecorder()
	if _, err := env.Sessions.Create(context.Background(), rec, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}); err != nil {
		t.Fatalf("create session: %v", err)
	}

	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return user, c
		}
	}
	t.Fatal("session cookie not set")
	return nil, nil
}

// do runs a request through the route tree and returns the recorder.
func (env *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	env.Handler.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a recorder's JSON body into dst.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}
