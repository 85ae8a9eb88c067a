// Copyright (c) 2026 DXA Info <dev@dxag.info>
// All rights reserved. See LICENSE for details.

// store_test.go provides shared test infrastructure for store integration
// tests. Tests are skipped when PostgreSQL is unavailable.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/database"
	"github.com/dxaginfo/content-idea-generator-ai-2025/internal/models"
)

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

// testUser creates a throwaway user and removes it (and its ideas, via the
// FK cascade) when the test finishes.
func testUser(t *testing.T, db *sql.DB) *models.User {
	t.Helper()

	users := NewUserStore(db)
	email := "test-" + uuid.NewString() + "@example.com"
	u, err := users.Create(email, "password123", "Test User")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() {
		users.Delete(u.ID)
	})
	return u
}

// testIdea inserts an idea for the given user with sensible defaults.
func testIdea(t *testing.T, db *sql.DB, userID uuid.UUID, title string) *models.Idea {
	t.Helper()

	ideas := NewIdeaStore(db)
	i, err := ideas.Create(&models.Idea{
		UserID:              userID,
		Title:               title,
		Description:         "a test idea",
		ContentType:         models.ContentTypeBlog,
		Keywords:            models.Keywords{"test"},
		TargetAudience:      "General audience",
		EstimatedEngagement: models.EngagementMedium,
		Status:              models.IdeaStatusDraft,
	})
	if err != nil {
		t.Fatalf("create test idea: %v", err)
	}
	return i
}
