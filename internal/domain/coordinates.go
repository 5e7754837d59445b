package domain

// Immutable geographic coordinates in WGS84 degrees (latitude, longitude).
type LatLng struct {
	Lat float64
	Lng float64
}

// Return coordinates as [lat, lng] for external API compatibility.
func (c LatLng) CoordsToList() []float64 { return []float64{c.Lat, c.Lng} }

// StartPoint is the user's planning origin. Route computation refuses to run
// until the point has been confirmed (dragged into place or geolocated).
type StartPoint struct {
	Position  LatLng
	Confirmed bool
}
