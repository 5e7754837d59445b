package ports

import (
	"context"

	"pandal-planner/internal/domain"
)

// RouteCacheEntry memoizes the result of ordering one planning request:
// the visit order plus the raw closed-loop waypoints. Road geometry is
// cached separately per leg.
type RouteCacheEntry struct {
	Venues []domain.Venue
	Path   []domain.LatLng
}

// RouteCache memoizes (strategy, start cell, stop set) -> ordering results.
// Keys must be strategy-specific: identical inputs yield different orders
// under different strategies. Writing an existing key overwrites it.
type RouteCache interface {
	Get(ctx context.Context, key string) (RouteCacheEntry, bool, error)
	Put(ctx context.Context, key string, entry RouteCacheEntry) error
}
