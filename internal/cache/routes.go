// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// routes.go provides a Valkey-backed response cache keyed by route.
// Public list and detail responses are stored as serialized JSON so
// repeat requests skip the database entirely. Mutations signal staleness
// by route name; a trailing "*" clears every key under that prefix.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// routeKeyPrefix is the Valkey key prefix for cached route payloads.
	routeKeyPrefix = "route:"

	// DefaultRouteTTL is how long a cached response stays fresh. The
	// invalidation signals after mutations make staleness rare; the TTL
	// is a backstop.
	DefaultRouteTTL = 5 * time.Minute
)

// RouteCache stores rendered API responses in Valkey by route name.
type RouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRouteCache creates a route cache backed by the given Valkey client.
func NewRouteCache(client *redis.Client, ttl time.Duration) *RouteCache {
	if ttl == 0 {
		ttl = DefaultRouteTTL
	}
	return &RouteCache{client: client, ttl: ttl}
}

// Get retrieves a cached response body for a route. Returns false on miss.
func (rc *RouteCache) Get(ctx context.Context, route string) ([]byte, bool) {
	val, err := rc.client.Get(ctx, routeKeyPrefix+route).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("route cache get error", "route", route, "error", err)
		return nil, false
	}
	slog.Debug("route cache hit", "route", route)
	return val, true
}

// Set stores a response body for a route with the configured TTL.
func (rc *RouteCache) Set(ctx context.Context, route string, body []byte) {
	if err := rc.client.Set(ctx, routeKeyPrefix+route, body, rc.ttl).Err(); err != nil {
		slog.Warn("route cache set error", "route", route, "error", err)
	}
}

// Invalidate removes cached responses for the given routes. A route
// ending in "*" is treated as a prefix and cleared with a scan; exact
// routes are deleted directly. Failures are logged and swallowed, since
// the TTL bounds how stale a missed invalidation can get.
func (rc *RouteCache) Invalidate(ctx context.Context, routes ...string) {
	for _, route := range routes {
		if n := len(route); n > 0 && route[n-1] == '*' {
			rc.invalidatePrefix(ctx, route[:n-1])
			continue
		}
		if err := rc.client.Del(ctx, routeKeyPrefix+route).Err(); err != nil {
			slog.Warn("route cache invalidate error", "route", route, "error", err)
		}
	}
}

// invalidatePrefix clears every cached route under a prefix by scanning.
func (rc *RouteCache) invalidatePrefix(ctx context.Context, prefix string) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, routeKeyPrefix+prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("route cache scan error", "prefix", prefix, "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("route cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("route cache prefix cleared", "prefix", prefix, "deleted", deleted)
	}
}
