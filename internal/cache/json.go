// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultJSONTTL is how long a cached value lives when no TTL is given.
const DefaultJSONTTL = 30 * time.Second

// JSONCache stores JSON-encoded values under a key prefix. All operations
// are best-effort: failures are logged and reported as a miss. A nil
// *JSONCache is valid and never hits.
type JSONCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewJSONCache creates a cache whose keys all start with prefix.
func NewJSONCache(client *redis.Client, prefix string, ttl time.Duration) *JSONCache {
	if ttl == 0 {
		ttl = DefaultJSONTTL
	}
	return &JSONCache{client: client, prefix: prefix, ttl: ttl}
}

// Get decodes the cached value for key into dst and reports whether it hit.
func (c *JSONCache) Get(ctx context.Context, key string, dst any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		slog.Warn("json cache get error", "key", c.prefix+key, "error", err)
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		slog.Warn("json cache decode error", "key", c.prefix+key, "error", err)
		return false
	}
	slog.Debug("json cache hit", "key", c.prefix+key)
	return true
}

// Set stores v under key with the configured TTL.
func (c *JSONCache) Set(ctx context.Context, key string, v any) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		slog.Warn("json cache encode error", "key", c.prefix+key, "error", err)
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, c.ttl).Err(); err != nil {
		slog.Warn("json cache set error", "key", c.prefix+key, "error", err)
	}
}

// Invalidate removes a single key.
func (c *JSONCache) Invalidate(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		slog.Warn("json cache invalidate error", "key", c.prefix+key, "error", err)
	}
}
