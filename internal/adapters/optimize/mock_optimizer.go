package optimize

import (
	"context"

	"pandal-planner/internal/domain"
	"pandal-planner/internal/ports"
)

// MockOptimizer is a scripted RouteOptimizer/QuotaService for tests.
type MockOptimizer struct {
	Order      []domain.Venue
	Err        error
	Quota      ports.QuotaState
	QuotaErr   error
	Calls      int
	UsageCalls int
}

func (m *MockOptimizer) OptimizeOrder(ctx context.Context, start domain.LatLng, venues []domain.Venue, token string) ([]domain.Venue, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Order, nil
}

func (m *MockOptimizer) Usage(ctx context.Context, token string) (ports.QuotaState, error) {
	m.UsageCalls++
	if m.QuotaErr != nil {
		return ports.QuotaState{}, m.QuotaErr
	}
	return m.Quota, nil
}
