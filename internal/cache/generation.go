// Copyright (c) 2026 DXA Info <dev@dxag.info>
// All rights reserved. See LICENSE for details.

// generation.go provides a Valkey-backed cache for parsed generation
// results. Identical generation requests within the TTL window skip the
// LLM call entirely and get back the exact bytes that were stored.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// genKeyPrefix namespaces generation cache keys in Valkey.
	genKeyPrefix = "gen:"

	// DefaultGenerationTTL is how long a generation result stays cached.
	DefaultGenerationTTL = time.Hour
)

// GenerationCache stores serialized generation results in Valkey.
// Cache errors are logged and treated as misses; the cache is an
// optimization, never a dependency.
type GenerationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGenerationCache creates a generation cache backed by the given client.
func NewGenerationCache(client *redis.Client, ttl time.Duration) *GenerationCache {
	if ttl == 0 {
		ttl = DefaultGenerationTTL
	}
	return &GenerationCache{client: client, ttl: ttl}
}

// Get retrieves a cached result. Returns false on miss or error.
func (gc *GenerationCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := gc.client.Get(ctx, genKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("generation cache get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

// Set stores a result under the key with the configured TTL.
func (gc *GenerationCache) Set(ctx context.Context, key string, value []byte) {
	if err := gc.client.Set(ctx, genKeyPrefix+key, value, gc.ttl).Err(); err != nil {
		slog.Warn("generation cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a single cached result.
func (gc *GenerationCache) Invalidate(ctx context.Context, key string) {
	if err := gc.client.Del(ctx, genKeyPrefix+key).Err(); err != nil {
		slog.Warn("generation cache invalidate error", "key", key, "error", err)
	}
}
