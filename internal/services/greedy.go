package services

import (
	"math"

	"pandal-planner/internal/domain"
	"pandal-planner/internal/geo"
)

// Build a visit order using a greedy nearest-neighbor algorithm.
//
// The algorithm minimizes immediate great-circle travel distance at each
// step. It does not attempt global route optimization (the remote service
// covers that). The design prioritizes determinism and simplicity over
// optimality: ties are broken by first-encountered input order, the output
// is a permutation of the input, and stop counts are small enough that the
// O(n²) scan is irrelevant.
func GreedyOrder(start domain.LatLng, stops []domain.Venue) []domain.Venue {
	if len(stops) == 0 {
		return []domain.Venue{}
	}

	remaining := make([]domain.Venue, len(stops))
	copy(remaining, stops)

	order := make([]domain.Venue, 0, len(stops))
	current := start

	for len(remaining) > 0 {
		nearest := 0
		minDist := math.Inf(1)

		// Strict < keeps the earliest candidate on equal distances.
		for i, v := range remaining {
			if d := geo.Haversine(current, v.Position); d < minDist {
				minDist = d
				nearest = i
			}
		}

		next := remaining[nearest]
		remaining = append(remaining[:nearest], remaining[nearest+1:]...)
		order = append(order, next)
		current = next.Position
	}

	return order
}

// ClosedLoop builds the raw route waypoints [start, v1, ..., vn, start]
// suitable for per-leg road resolution and polyline rendering.
func ClosedLoop(start domain.LatLng, ordered []domain.Venue) []domain.LatLng {
	path := make([]domain.LatLng, 0, len(ordered)+2)
	path = append(path, start)
	for _, v := range ordered {
		path = append(path, v.Position)
	}
	path = append(path, start)
	return path
}
