package roadpath

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pandal-planner/internal/domain"
)

// memoryLegStore is an in-memory LegPathCache for exercising the
// cache-aside wrapper.
type memoryLegStore struct {
	mu      sync.Mutex
	paths   map[string][]domain.LatLng
	putErr  error
	getErr  error
	puts    int
	gets    int
}

func newMemoryLegStore() *memoryLegStore {
	return &memoryLegStore{paths: map[string][]domain.LatLng{}}
}

func (s *memoryLegStore) Get(ctx context.Context, from, to domain.LatLng) ([]domain.LatLng, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	path, ok := s.paths[PairKey(from, to)]
	return path, ok, nil
}

func (s *memoryLegStore) Put(ctx context.Context, from, to domain.LatLng, path []domain.LatLng) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	if s.putErr != nil {
		return s.putErr
	}
	s.paths[PairKey(from, to)] = path
	return nil
}

func TestCachedRouterMissThenHit(t *testing.T) {
	inner := &MockRoadRouter{}
	store := newMemoryLegStore()

	stored := make(chan struct{}, 1)
	router := NewCachedRouter(inner, store, withAfterStore(func() { stored <- struct{}{} }))

	from := domain.LatLng{Lat: 22.5726, Lng: 88.3639}
	to := domain.LatLng{Lat: 22.6043, Lng: 88.3651}

	path, err := router.RoutePath(context.Background(), from, to)
	if err != nil {
		t.Fatalf("route path: %v", err)
	}
	if len(path) != 2 {
		t.Fatalf("unexpected path: %v", path)
	}
	if inner.Calls() != 1 {
		t.Fatalf("miss must hit the inner router, calls=%d", inner.Calls())
	}

	select {
	case <-stored:
	case <-time.After(time.Second):
		t.Fatal("async cache write did not complete")
	}

	if _, err := router.RoutePath(context.Background(), from, to); err != nil {
		t.Fatalf("route path: %v", err)
	}
	if inner.Calls() != 1 {
		t.Fatalf("hit must not call the inner router, calls=%d", inner.Calls())
	}
}

func TestCachedRouterReadFailureFallsThrough(t *testing.T) {
	inner := &MockRoadRouter{}
	store := newMemoryLegStore()
	store.getErr = errors.New("disk gone")

	stored := make(chan struct{}, 1)
	router := NewCachedRouter(inner, store, withAfterStore(func() { stored <- struct{}{} }))

	path, err := router.RoutePath(context.Background(), domain.LatLng{Lat: 22.5}, domain.LatLng{Lat: 22.6})
	if err != nil {
		t.Fatalf("cache read failure must not fail routing: %v", err)
	}
	if len(path) != 2 {
		t.Fatalf("unexpected path: %v", path)
	}
	<-stored
}

func TestCachedRouterWriteFailureIsLogged(t *testing.T) {
	inner := &MockRoadRouter{}
	store := newMemoryLegStore()
	store.putErr = errors.New("disk full")

	var mu sync.Mutex
	var logged []string
	stored := make(chan struct{}, 1)
	router := NewCachedRouter(inner, store,
		WithLogger(func(format string, args ...any) {
			mu.Lock()
			logged = append(logged, format)
			mu.Unlock()
		}),
		withAfterStore(func() { stored <- struct{}{} }),
	)

	if _, err := router.RoutePath(context.Background(), domain.LatLng{Lat: 22.5}, domain.LatLng{Lat: 22.6}); err != nil {
		t.Fatalf("write failure must not fail routing: %v", err)
	}

	select {
	case <-stored:
	case <-time.After(time.Second):
		t.Fatal("async cache write did not complete")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(logged) != 1 {
		t.Fatalf("expected one logged write failure, got %d", len(logged))
	}
}

func TestCachedRouterInnerFailurePropagates(t *testing.T) {
	from := domain.LatLng{Lat: 22.5}
	to := domain.LatLng{Lat: 22.6}
	inner := &MockRoadRouter{FailPairs: map[string]bool{PairKey(from, to): true}}
	router := NewCachedRouter(inner, newMemoryLegStore())

	if _, err := router.RoutePath(context.Background(), from, to); err == nil {
		t.Fatal("inner failure must propagate on a cache miss")
	}
}
