package roadpath

import (
	"context"
	"fmt"
	"sync"

	"pandal-planner/internal/domain"
)

// MockRoadRouter returns a straight two-point path for every pair, with an
// optional set of pairs scripted to fail. Keyed by %.5f-rounded endpoints.
// Safe for concurrent use (the leg resolver fans out).
type MockRoadRouter struct {
	FailPairs map[string]bool

	mu    sync.Mutex
	calls int
}

// PairKey identifies a from→to pair at the mock's precision.
func PairKey(from, to domain.LatLng) string {
	return fmt.Sprintf("%.5f,%.5f|%.5f,%.5f", from.Lat, from.Lng, to.Lat, to.Lng)
}

func (m *MockRoadRouter) RoutePath(ctx context.Context, from, to domain.LatLng) ([]domain.LatLng, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.FailPairs[PairKey(from, to)] {
		return nil, fmt.Errorf("mock road router: no route for %s", PairKey(from, to))
	}
	return []domain.LatLng{from, to}, nil
}

func (m *MockRoadRouter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
