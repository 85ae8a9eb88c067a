// Copyright (c) 2026 DXA Info <dev@dxag.info>
// All rights reserved. See LICENSE for details.

// Session tests are integration tests that require a running Valkey
// instance; they skip when it is unreachable.
package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
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
		keys, _ := client.Keys(ctx, keyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func TestSessionLifecycle(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)
	ctx := context.Background()

	userID := uuid.New()
	rec := httptest.NewRecorder()

	id, err := store.Create(ctx, rec, &Data{
		UserID:      userID,
		Email:       "test@example.com",
		DisplayName: "Tester",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatal("empty session ID")
	}

	// The cookie carries the session ID.
	cookies := rec.Result().Cookies()
	var found *http.Cookie
	for _, c := range cookies {
		if c.Name == CookieName {
			found = c
		}
	}
	if found == nil {
		t.Fatal("session cookie not set")
	}
	if found.Value != id {
		t.Errorf("cookie value: got %q, want %q", found.Value, id)
	}
	if !found.HttpOnly {
		t.Error("cookie must be HttpOnly")
	}

	// Get returns the stored data.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(found)

	data, err := store.Get(ctx, req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data == nil || data.UserID != userID || data.Email != "test@example.com" {
		t.Errorf("got %+v", data)
	}
	if data.CreatedAt.IsZero() {
		t.Error("CreatedAt should be stamped")
	}

	// Destroy removes it.
	rec2 := httptest.NewRecorder()
	if err := store.Destroy(ctx, rec2, req); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	gone, err := store.Get(ctx, req)
	if err != nil {
		t.Fatalf("Get after Destroy: %v", err)
	}
	if gone != nil {
		t.Errorf("session should be gone, got %+v", gone)
	}
}

func TestSessionGetNoCookie(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	data, err := store.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Errorf("no cookie should mean no session, got %+v", data)
	}
}

func TestSessionGetUnknownID(t *testing.T) {
	client := testValkeyClient(t)
	store := NewStore(client, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "does-not-exist"})

	data, err := store.Get(context.Background(), req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if data != nil {
		t.Errorf("unknown ID should mean no session, got %+v", data)
	}
}
