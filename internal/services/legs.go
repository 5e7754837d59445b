package services

import (
	"context"
	"log"

	"pandal-planner/internal/domain"
	"pandal-planner/internal/ports"

	"golang.org/x/sync/errgroup"
)

// legPalette assigns each leg a distinct render color, cycling by leg index
// when the route has more legs than colors.
var legPalette = []string{
	"#FF0000", "#00FF00", "#007BFF", "#FFA500", "#FF00FF",
	"#00FFFF", "#800080", "#FFFF00", "#FF1493", "#00CED1",
}

// maxConcurrentLegFetches bounds parallel road-routing requests per
// computation; the public OSRM instance rate-limits aggressively.
const maxConcurrentLegFetches = 4

// LegColor returns the palette color for a leg index.
func LegColor(index int) string {
	return legPalette[index%len(legPalette)]
}

// ResolveLegPaths retrieves road geometry for each consecutive pair of
// orderedStops ([start, stop1, ..., stopN, start]).
//
// Requests run concurrently but results land in fixed index slots, so legs
// are always positioned in stop order regardless of network completion
// order. A failed leg keeps its slot with Resolved=false and an empty Path;
// it never aborts resolution of the remaining legs.
func ResolveLegPaths(ctx context.Context, router ports.RoadRouter, orderedStops []domain.LatLng) []domain.Leg {
	if len(orderedStops) < 2 {
		return []domain.Leg{}
	}

	legs := make([]domain.Leg, len(orderedStops)-1)
	for i := range legs {
		legs[i] = domain.Leg{
			Index: i,
			From:  orderedStops[i],
			To:    orderedStops[i+1],
			Color: LegColor(i),
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLegFetches)

	for i := range legs {
		g.Go(func() error {
			path, err := router.RoutePath(ctx, legs[i].From, legs[i].To)
			if err != nil {
				// Partial-failure tolerance: omit this leg, keep going.
				log.Printf("resolve legs: leg=%d failed: %v", i, err)
				return nil
			}
			legs[i].Path = path
			legs[i].Resolved = true
			return nil
		})
	}

	// Goroutines never return errors; Wait is a join point.
	_ = g.Wait()

	return legs
}
