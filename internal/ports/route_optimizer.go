package ports

import (
	"context"
	"errors"

	"pandal-planner/internal/domain"
)

// Failure modes of the remote optimization service that callers must react
// to. Anything else is an ordinary error and the caller degrades to the
// nearest-neighbor ordering.
var (
	// ErrQuotaExceeded: the daily optimization allowance is used up. The
	// caller must keep the previous route and surface a notice.
	ErrQuotaExceeded = errors.New("optimizer: daily quota exceeded")

	// ErrUnauthorized: the session token was rejected. The caller must force
	// the local session to logged-out state.
	ErrUnauthorized = errors.New("unauthorized")
)

// RouteOptimizer is the boundary to the remote route-optimization service.
type RouteOptimizer interface {
	// OptimizeOrder returns the venues in the service's visit order.
	// Ids in the response with no matching input venue are dropped. An
	// empty slice with nil error means the service returned no routes.
	OptimizeOrder(ctx context.Context, start domain.LatLng, venues []domain.Venue, token string) ([]domain.Venue, error)
}

// QuotaState is the remaining daily allowance for remote optimization.
// Unknown until first fetched.
type QuotaState struct {
	Remaining int
}

// QuotaService reports the caller's remaining optimization allowance.
type QuotaService interface {
	Usage(ctx context.Context, token string) (QuotaState, error)
}
