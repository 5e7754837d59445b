package services

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"pandal-planner/internal/domain"

	"github.com/mmcloughlin/geohash"
)

// startCellPrecision controls the spatial resolution of the start-point key
// component. Precision 7 ≈ ±76m latitude / ±152m longitude cell — small
// nudges of the home marker reuse the cached ordering, while a genuinely
// different start recomputes.
const startCellPrecision = 7

// RouteKey builds the deterministic cache key for one planning request.
// Venue ids are sorted ascending so the key is invariant to selection
// insertion order; the strategy prefix keeps results from different
// strategies apart.
func RouteKey(strategy domain.RouteStrategy, start domain.LatLng, venueIDs []int) string {
	ids := make([]int, len(venueIDs))
	copy(ids, venueIDs)
	slices.Sort(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}

	cell := geohash.EncodeWithPrecision(start.Lat, start.Lng, startCellPrecision)
	return fmt.Sprintf("%s_%s_%s", strategy, cell, strings.Join(parts, ","))
}
