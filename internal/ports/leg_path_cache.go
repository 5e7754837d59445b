package ports

import (
	"context"

	"pandal-planner/internal/domain"
)

// LegPathCache is a persistent cache for road geometry between two points.
// Endpoints are matched at ~1m precision (5 decimal places) by the adapters.
type LegPathCache interface {
	Get(ctx context.Context, from, to domain.LatLng) ([]domain.LatLng, bool, error)
	Put(ctx context.Context, from, to domain.LatLng, path []domain.LatLng) error
}
