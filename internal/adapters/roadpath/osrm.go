package roadpath

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pandal-planner/internal/domain"
)

// OSRMRouter retrieves road-following paths from a public OSRM instance,
// one request per coordinate pair.
type OSRMRouter struct {
	baseURL    string
	httpClient *http.Client
}

// NewOSRMRouter creates a road router against baseURL (empty selects the
// public demo server).
func NewOSRMRouter(baseURL string) *OSRMRouter {
	if baseURL == "" {
		baseURL = "https://router.project-osrm.org"
	}
	return &OSRMRouter{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type osrmRouteResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// RoutePath fetches driving geometry from one point to the next.
// OSRM speaks lng,lat on both the URL and in GeoJSON geometry; the result
// is converted back to lat,lng waypoints.
func (c *OSRMRouter) RoutePath(ctx context.Context, from, to domain.LatLng) ([]domain.LatLng, error) {
	queryURL := fmt.Sprintf(
		"%s/route/v1/driving/%f,%f;%f,%f?overview=full&geometries=geojson",
		c.baseURL, from.Lng, from.Lat, to.Lng, to.Lat,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("route path: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("route path: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("route path: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var decoded osrmRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("route path: decode response: %w", err)
	}

	if decoded.Code != "Ok" {
		return nil, fmt.Errorf("route path: OSRM error: %s", decoded.Code)
	}
	if len(decoded.Routes) == 0 {
		return nil, fmt.Errorf("route path: no routes returned")
	}

	coords := decoded.Routes[0].Geometry.Coordinates
	path := make([]domain.LatLng, 0, len(coords))
	for _, c := range coords {
		if len(c) != 2 {
			return nil, fmt.Errorf("route path: invalid coordinate format")
		}
		path = append(path, domain.LatLng{Lat: c[1], Lng: c[0]})
	}

	return path, nil
}
