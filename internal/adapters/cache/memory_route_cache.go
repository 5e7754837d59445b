package cache

import (
	"context"
	"sync"

	"pandal-planner/internal/ports"
)

// MemoryRouteCache is the default process-local route cache: in-memory,
// unbounded for the session lifetime, no expiration. Entries accumulate
// only per distinct planning request, which is user-driven and small.
type MemoryRouteCache struct {
	mu      sync.RWMutex
	entries map[string]ports.RouteCacheEntry
}

func NewMemoryRouteCache() *MemoryRouteCache {
	return &MemoryRouteCache{entries: make(map[string]ports.RouteCacheEntry)}
}

func (c *MemoryRouteCache) Get(ctx context.Context, key string) (ports.RouteCacheEntry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	return entry, ok, nil
}

// Put stores entry under key, overwriting any existing entry.
func (c *MemoryRouteCache) Put(ctx context.Context, key string, entry ports.RouteCacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry
	return nil
}

// Len reports the number of cached planning requests.
func (c *MemoryRouteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
