package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pandal-planner/internal/domain"
)

// HTTPVenueSource lists venues from the upstream catalog service instead
// of the local database. Used when VENUES_URL is configured.
type HTTPVenueSource struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPVenueSource(baseURL string) (*HTTPVenueSource, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("http venue source: base URL must not be empty")
	}
	return &HTTPVenueSource{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type venueRecord struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Town      string  `json:"town"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IsBig     bool    `json:"is_big"`
	MainPic   string  `json:"main_pic"`
	LikeCount int     `json:"like_count"`
}

// ListVenues satisfies the VenueRepository port against the remote catalog.
func (s *HTTPVenueSource) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/pandals/", nil)
	if err != nil {
		return nil, fmt.Errorf("list venues: create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("list venues: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var records []venueRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("list venues: decode response: %w", err)
	}

	venues := make([]domain.Venue, 0, len(records))
	for _, r := range records {
		venues = append(venues, domain.Venue{
			ID:        r.ID,
			Name:      r.Name,
			Region:    r.Region,
			Town:      r.Town,
			Position:  domain.LatLng{Lat: r.Latitude, Lng: r.Longitude},
			IsBig:     r.IsBig,
			MainPic:   r.MainPic,
			LikeCount: r.LikeCount,
		})
	}

	return venues, nil
}
