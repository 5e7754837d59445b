package overlay

import (
	"github.com/paulmach/orb"

	"pandal-planner/internal/domain"
)

// LayerHandle identifies a drawn layer so it can be restyled or removed.
type LayerHandle int

// MarkerKind distinguishes the draggable start marker from venue stops.
type MarkerKind string

const (
	MarkerStart MarkerKind = "start"
	MarkerStop  MarkerKind = "stop"
)

// Marker describes a point layer on the map.
type Marker struct {
	Kind      MarkerKind
	Position  domain.LatLng
	Label     string
	Draggable bool
}

// PolylineStyle describes how a path layer is drawn.
type PolylineStyle struct {
	Color   string
	Weight  int
	Opacity float64
}

// MapSurface is the rendering port the overlay controller draws onto.
// Implementations wrap whatever map widget the host embeds; the
// controller only ever talks in layers and bounds.
type MapSurface interface {
	AddMarker(m Marker) LayerHandle
	AddPolyline(path []domain.LatLng, style PolylineStyle) LayerHandle
	SetPolylineStyle(h LayerHandle, style PolylineStyle)
	RemoveLayer(h LayerHandle)
	FitBounds(b orb.Bound, paddingPx int)
	OnMarkerDrag(fn func(h LayerHandle, pos domain.LatLng))
}

// BoundsOf computes the bounding box of a set of waypoints.
// The zero Bound is returned for an empty path.
func BoundsOf(paths ...[]domain.LatLng) orb.Bound {
	var b orb.Bound
	first := true
	for _, path := range paths {
		for _, p := range path {
			pt := orb.Point{p.Lng, p.Lat}
			if first {
				b = orb.Bound{Min: pt, Max: pt}
				first = false
				continue
			}
			b = b.Extend(pt)
		}
	}
	return b
}
