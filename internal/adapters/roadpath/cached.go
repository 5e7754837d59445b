package roadpath

import (
	"context"
	"time"

	"pandal-planner/internal/domain"
	"pandal-planner/internal/ports"
)

// cacheWriteTimeout is the deadline for the async leg-geometry cache write.
const cacheWriteTimeout = 5 * time.Second

// Logger is a printf-style logging function injected into CachedRouter.
// A function type (rather than an interface) keeps the dependency minimal
// and makes test doubles trivial to write.
type Logger func(format string, args ...any)

// CachedRouter wraps another RoadRouter and transparently caches leg
// geometry. Cache reads are non-fatal; writes happen off the hot path.
type CachedRouter struct {
	inner      ports.RoadRouter
	store      ports.LegPathCache
	logger     Logger // called when async cache writes fail; nil = silent
	afterStore func() // hook called after every async store attempt; test synchronization only
}

// CachedRouterOption configures a CachedRouter.
type CachedRouterOption func(*CachedRouter)

// WithLogger sets a logger that is called when the async cache write fails.
// In production, pass a log.Printf-compatible function.
func WithLogger(l Logger) CachedRouterOption {
	return func(r *CachedRouter) { r.logger = l }
}

// withAfterStore sets a hook called after every async store attempt.
// Intended exclusively for test synchronization.
func withAfterStore(fn func()) CachedRouterOption {
	return func(r *CachedRouter) { r.afterStore = fn }
}

// NewCachedRouter wraps inner with a cache-aside layer backed by store.
func NewCachedRouter(inner ports.RoadRouter, store ports.LegPathCache, opts ...CachedRouterOption) *CachedRouter {
	r := &CachedRouter{inner: inner, store: store}
	for _, o := range opts {
		o(r)
	}
	return r
}

// RoutePath satisfies the RoadRouter port. It checks the cache first; on a
// miss it delegates to the inner router and persists the result.
func (r *CachedRouter) RoutePath(ctx context.Context, from, to domain.LatLng) ([]domain.LatLng, error) {
	path, ok, err := r.store.Get(ctx, from, to)
	if err != nil {
		// Cache read failures are non-fatal: fall through to the real router.
		_ = err
	}
	if ok {
		return path, nil
	}

	path, err = r.inner.RoutePath(ctx, from, to)
	if err != nil {
		return nil, err
	}

	// Persist asynchronously so the cache write never adds latency to the
	// leg-resolution hot path. A background context avoids cancellation if
	// the caller's context expires right after the API call returns.
	go func() {
		storeCtx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
		defer cancel()

		if err := r.store.Put(storeCtx, from, to, path); err != nil {
			if r.logger != nil {
				r.logger("roadpath: cache: async write failed (from=%.5f,%.5f to=%.5f,%.5f): %v",
					from.Lat, from.Lng, to.Lat, to.Lng, err)
			}
		}

		if r.afterStore != nil {
			r.afterStore()
		}
	}()

	return path, nil
}
