package services

import (
	"testing"

	"pandal-planner/internal/domain"
)

func venue(id int, name string, lat, lng float64) domain.Venue {
	return domain.Venue{ID: id, Name: name, Position: domain.LatLng{Lat: lat, Lng: lng}}
}

func orderedIDs(venues []domain.Venue) []int {
	ids := make([]int, len(venues))
	for i, v := range venues {
		ids[i] = v.ID
	}
	return ids
}

func TestGreedyOrderNearestFirst(t *testing.T) {
	start := domain.LatLng{Lat: 22.5726, Lng: 88.3639}
	stops := []domain.Venue{
		venue(1, "Bagbazar Sarbojanin", 22.6043, 88.3651),  // ~3.5km north
		venue(2, "Ekdalia Evergreen", 22.5180, 88.3642),    // ~6.1km south
		venue(3, "College Square", 22.5755, 88.3648),       // ~330m
	}

	got := orderedIDs(GreedyOrder(start, stops))
	want := []int{3, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected visit order: got %v want %v", got, want)
		}
	}
}

func TestGreedyOrderIsPermutation(t *testing.T) {
	start := domain.LatLng{Lat: 22.5726, Lng: 88.3639}
	stops := []domain.Venue{
		venue(1, "A", 22.60, 88.36),
		venue(2, "B", 22.52, 88.36),
		venue(3, "C", 22.57, 88.41),
		venue(4, "D", 22.50, 88.31),
	}

	got := GreedyOrder(start, stops)
	if len(got) != len(stops) {
		t.Fatalf("expected %d stops, got %d", len(stops), len(got))
	}

	seen := map[int]bool{}
	for _, v := range got {
		if seen[v.ID] {
			t.Fatalf("venue %d appears twice", v.ID)
		}
		seen[v.ID] = true
	}
	for _, v := range stops {
		if !seen[v.ID] {
			t.Fatalf("venue %d missing from order", v.ID)
		}
	}
}

func TestGreedyOrderTieKeepsInputOrder(t *testing.T) {
	start := domain.LatLng{Lat: 22.5726, Lng: 88.3639}
	// Two venues in the same park share coordinates, an exact tie.
	stops := []domain.Venue{
		venue(1, "Gate A", 22.5826, 88.3639),
		venue(2, "Gate B", 22.5826, 88.3639),
	}

	got := orderedIDs(GreedyOrder(start, stops))
	if got[0] != 1 {
		t.Fatalf("tie must keep the first-encountered venue, got %v", got)
	}

	// Swapped input: the other venue is now first-encountered.
	swapped := []domain.Venue{stops[1], stops[0]}
	got = orderedIDs(GreedyOrder(start, swapped))
	if got[0] != 2 {
		t.Fatalf("tie must follow input order, got %v", got)
	}
}

func TestGreedyOrderDoesNotMutateInput(t *testing.T) {
	start := domain.LatLng{Lat: 22.5726, Lng: 88.3639}
	stops := []domain.Venue{
		venue(1, "A", 22.60, 88.36),
		venue(2, "B", 22.52, 88.36),
	}

	GreedyOrder(start, stops)

	if stops[0].ID != 1 || stops[1].ID != 2 {
		t.Fatalf("input slice was reordered: %v", orderedIDs(stops))
	}
}

func TestGreedyOrderEmptyAndSingle(t *testing.T) {
	start := domain.LatLng{Lat: 22.5726, Lng: 88.3639}

	if got := GreedyOrder(start, nil); len(got) != 0 {
		t.Fatalf("expected empty order, got %v", got)
	}

	single := []domain.Venue{venue(1, "A", 22.60, 88.36)}
	if got := GreedyOrder(start, single); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected the single venue back, got %v", got)
	}
}

func TestClosedLoopReturnsToStart(t *testing.T) {
	start := domain.LatLng{Lat: 22.5726, Lng: 88.3639}
	ordered := []domain.Venue{
		venue(1, "A", 22.60, 88.36),
		venue(2, "B", 22.52, 88.36),
	}

	path := ClosedLoop(start, ordered)

	if len(path) != 4 {
		t.Fatalf("expected 4 waypoints, got %d", len(path))
	}
	if path[0] != start || path[len(path)-1] != start {
		t.Fatal("path must start and end at the start point")
	}
	if path[1] != ordered[0].Position || path[2] != ordered[1].Position {
		t.Fatal("waypoints must follow the visit order")
	}
}
