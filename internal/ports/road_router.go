package ports

import (
	"context"

	"pandal-planner/internal/domain"
)

// RoadRouter retrieves a real-world road path between two points.
type RoadRouter interface {
	// RoutePath returns road-following waypoints from one point to the
	// next. An error means the leg could not be resolved; callers omit
	// that leg rather than abort.
	RoutePath(ctx context.Context, from, to domain.LatLng) ([]domain.LatLng, error)
}
