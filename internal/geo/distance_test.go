package geo

import (
	"testing"

	"pandal-planner/internal/domain"
)

func TestHaversineKnownDistance(t *testing.T) {
	esplanade := domain.LatLng{Lat: 22.5726, Lng: 88.3639}
	bagbazar := domain.LatLng{Lat: 22.6043, Lng: 88.3651}

	d := Haversine(esplanade, bagbazar)
	if d < 3400 || d > 3700 {
		t.Fatalf("expected roughly 3.5km, got %.0fm", d)
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := domain.LatLng{Lat: 22.5726, Lng: 88.3639}
	b := domain.LatLng{Lat: 22.5180, Lng: 88.3642}

	if Haversine(a, b) != Haversine(b, a) {
		t.Fatal("distance must be symmetric")
	}
}

func TestHaversineZero(t *testing.T) {
	p := domain.LatLng{Lat: 22.5726, Lng: 88.3639}
	if d := Haversine(p, p); d != 0 {
		t.Fatalf("expected zero distance, got %f", d)
	}
}
