package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pandal-planner/internal/ports"

	"github.com/redis/go-redis/v9"
)

// defaultRouteTTL bounds how long a shared deployment serves a memoized
// ordering. The in-memory cache is session-scoped and needs no TTL; a
// shared Redis is not, so entries expire.
const defaultRouteTTL = 24 * time.Hour

// RedisRouteCache is a Redis-backed RouteCache for deployments where
// planning requests should be shared across processes.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	if ttl <= 0 {
		ttl = defaultRouteTTL
	}
	return &RedisRouteCache{client: client, ttl: ttl}
}

func (c *RedisRouteCache) Get(ctx context.Context, key string) (ports.RouteCacheEntry, bool, error) {
	b, err := c.client.Get(ctx, routeKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.RouteCacheEntry{}, false, nil
	}
	if err != nil {
		return ports.RouteCacheEntry{}, false, fmt.Errorf("route cache: redis get: %w", err)
	}

	var entry ports.RouteCacheEntry
	if err := json.Unmarshal(b, &entry); err != nil {
		return ports.RouteCacheEntry{}, false, fmt.Errorf("route cache: decode entry: %w", err)
	}

	return entry, true, nil
}

func (c *RedisRouteCache) Put(ctx context.Context, key string, entry ports.RouteCacheEntry) error {
	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("route cache: encode entry: %w", err)
	}

	if err := c.client.Set(ctx, routeKeyPrefix+key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("route cache: redis set: %w", err)
	}
	return nil
}

const routeKeyPrefix = "route:"
