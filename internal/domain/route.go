package domain

import "fmt"

// RouteStrategy selects how the visit order of selected venues is decided.
type RouteStrategy string

const (
	// StrategyGreedy orders stops with the nearest-neighbor heuristic.
	StrategyGreedy RouteStrategy = "greedy"
	// StrategyManual keeps the user's selection-insertion order verbatim.
	StrategyManual RouteStrategy = "manual"
	// StrategyOptimized delegates ordering to the remote optimization
	// service. Requires an authenticated session and is quota-limited.
	StrategyOptimized RouteStrategy = "optimized"
)

// ParseStrategy validates a wire-level strategy name.
func ParseStrategy(s string) (RouteStrategy, error) {
	switch RouteStrategy(s) {
	case StrategyGreedy, StrategyManual, StrategyOptimized:
		return RouteStrategy(s), nil
	}
	return "", fmt.Errorf("unknown route strategy %q", s)
}

// Leg is the path segment between two consecutive stops (or the start point
// and a stop). Legs keep their slot even when road resolution fails for them:
// an unresolved leg has an empty Path and Resolved=false, so positional
// indexing stays stable for highlighting.
type Leg struct {
	Index    int
	From     LatLng
	To       LatLng
	Path     []LatLng
	Color    string
	Resolved bool
}

// ComputedRoute is the output of running a strategy over the current start
// point and selection. It is immutable planning data: recomputation replaces
// it wholesale.
//
// Invariant: len(Legs) == len(Venues)+1 (home→v1, v1→v2, ..., vn→home).
type ComputedRoute struct {
	Strategy RouteStrategy
	Start    LatLng
	Venues   []Venue
	Path     []LatLng
	Legs     []Leg
}
