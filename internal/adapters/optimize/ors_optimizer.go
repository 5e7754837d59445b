package optimize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"pandal-planner/internal/domain"
	"pandal-planner/internal/platform/obs"
	"pandal-planner/internal/ports"
)

// ORSOptimizer implements RouteOptimizer and QuotaService against the
// ORS-proxy optimization service.
//
// It coordinates:
//   - Serializing the start point and venue list to the service
//   - Mapping returned step ids back to domain venues
//   - Translating quota/auth rejections into the port's sentinel errors
//   - External API calls with retry/backoff on transient failures
//
// The client is safe for concurrent use.
type ORSOptimizer struct {
	session *http.Client
	baseURL string
}

func NewORSOptimizer(baseURL string) (*ORSOptimizer, error) {
	if baseURL == "" {
		return nil, errors.New("optimizer base URL is empty")
	}

	return &ORSOptimizer{
		session: &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
	}, nil
}

type venuePayload struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IsBig     bool    `json:"is_big"`
}

type optimizeRequest struct {
	Start   []float64      `json:"start"`
	Pandals []venuePayload `json:"pandals"`
}

type optimizeResponse struct {
	Routes []struct {
		Steps []struct {
			Type string `json:"type"`
			ID   int    `json:"id"`
		} `json:"steps"`
	} `json:"routes"`
}

// OptimizeOrder asks the remote service for a visit order over venues from
// start. Only steps of type "job", in array order, denote the sequence; ids
// without a matching input venue are dropped (the service is authoritative
// for ordering, the input set for membership).
func (o *ORSOptimizer) OptimizeOrder(
	ctx context.Context,
	start domain.LatLng,
	venues []domain.Venue,
	token string,
) (_ []domain.Venue, err error) {
	defer obs.Time(ctx, "ors.OptimizeOrder")(&err)

	payload := optimizeRequest{
		Start:   start.CoordsToList(),
		Pandals: make([]venuePayload, 0, len(venues)),
	}
	for _, v := range venues {
		payload.Pandals = append(payload.Pandals, venuePayload{
			ID:        v.ID,
			Name:      v.Name,
			Region:    v.Region,
			Latitude:  v.Position.Lat,
			Longitude: v.Position.Lng,
			IsBig:     v.IsBig,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("optimize order: marshal request: %w", err)
	}

	endpoint := o.baseURL + "/api/ors-optimized-route/"
	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, token, bytes.NewReader(body))
	})
	if err != nil {
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case http.StatusTooManyRequests:
				return nil, ports.ErrQuotaExceeded
			case http.StatusUnauthorized:
				return nil, ports.ErrUnauthorized
			}
		}
		return nil, fmt.Errorf("optimize order: %w", err)
	}
	defer resp.Body.Close()

	var decoded optimizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("optimize order: decode response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		log.Printf("optimize order: no routes returned")
		return []domain.Venue{}, nil
	}

	byID := make(map[int]domain.Venue, len(venues))
	for _, v := range venues {
		byID[v.ID] = v
	}

	ordered := make([]domain.Venue, 0, len(venues))
	dropped := 0
	for _, step := range decoded.Routes[0].Steps {
		if step.Type != "job" {
			continue
		}
		v, ok := byID[step.ID]
		if !ok {
			dropped++
			continue
		}
		ordered = append(ordered, v)
	}

	if dropped > 0 {
		log.Printf("optimize order: dropped %d unmatched step ids", dropped)
	}

	return ordered, nil
}

type usageResponse struct {
	Remaining int `json:"remaining"`
}

// Usage queries the remaining daily optimization allowance for token.
func (o *ORSOptimizer) Usage(ctx context.Context, token string) (ports.QuotaState, error) {
	endpoint := o.baseURL + "/api/usage/"
	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodGet, endpoint, token, nil)
	})
	if err != nil {
		var he *httpStatusError
		if errors.As(err, &he) && he.Code == http.StatusUnauthorized {
			return ports.QuotaState{}, ports.ErrUnauthorized
		}
		return ports.QuotaState{}, fmt.Errorf("quota usage: %w", err)
	}
	defer resp.Body.Close()

	var decoded usageResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.QuotaState{}, fmt.Errorf("quota usage: decode response: %w", err)
	}

	return ports.QuotaState{Remaining: decoded.Remaining}, nil
}
