package planner

import (
	"context"
	"errors"

	"pandal-planner/internal/domain"
)

// ErrGeolocationDenied reports that the host refused to share a device
// position. The planner keeps its fallback start point in that case.
var ErrGeolocationDenied = errors.New("geolocation: permission denied")

// Geolocator resolves the device position. Implementations wrap
// whatever positioning source the host platform offers.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (domain.LatLng, error)
}
