package ports

import (
	"context"

	"pandal-planner/internal/domain"
)

// Port: a boundary for retrieving Venue entities from a data source.
type VenueRepository interface {
	// Retrieve all venues available for planning.
	ListVenues(ctx context.Context) ([]domain.Venue, error)
}
