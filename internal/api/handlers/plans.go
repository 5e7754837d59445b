package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"pandal-planner/internal/api/dto"
	"pandal-planner/internal/domain"
	"pandal-planner/internal/geo"
	"pandal-planner/internal/ports"
	"pandal-planner/internal/services"
	"pandal-planner/internal/session"
)

type PlanHandler struct {
	Repo    ports.VenueRepository
	Planner *services.Planner
}

// bearerToken extracts the token from an Authorization header, empty
// when the request is anonymous.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// Plan computes a route over the requested venues: visit order per the
// requested strategy, closed-loop path, per-leg road geometry.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Start) != 2 {
		writeError(w, r, http.StatusBadRequest, "start must be a [lat, lng] pair")
		return
	}
	start := domain.LatLng{Lat: req.Start[0], Lng: req.Start[1]}
	if start.Lat < -90 || start.Lat > 90 || start.Lng < -180 || start.Lng > 180 {
		writeError(w, r, http.StatusBadRequest, "start coordinates out of range")
		return
	}

	if len(req.VenueIDs) == 0 {
		writeError(w, r, http.StatusBadRequest, "venue_ids must not be empty")
		return
	}

	strategyName := req.Strategy
	if strategyName == "" {
		strategyName = string(domain.StrategyGreedy)
	}
	strategy, err := domain.ParseStrategy(strategyName)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "strategy must be one of greedy, manual, optimized")
		return
	}

	selected, err := h.resolveVenues(r, req.VenueIDs)
	if err != nil {
		var unknown unknownVenueError
		if errors.As(err, &unknown) {
			writeError(w, r, http.StatusBadRequest, unknown.Error())
			return
		}
		log.Printf("resolve venues failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	sess := session.NewWithToken(bearerToken(r))

	route, err := h.Planner.PlanTrip(r.Context(), strategy, start, selected, sess)
	switch {
	case errors.Is(err, ports.ErrQuotaExceeded):
		writeError(w, r, http.StatusTooManyRequests, "optimization quota exceeded")
		return
	case errors.Is(err, ports.ErrUnauthorized):
		writeError(w, r, http.StatusUnauthorized, "invalid or expired token")
		return
	case err != nil:
		log.Printf("plan trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, planResponse(route, req.ReturnLegs))
}

// unknownVenueError reports a requested id absent from the listing.
type unknownVenueError struct{ id int }

func (e unknownVenueError) Error() string {
	return fmt.Sprintf("unknown venue id %d", e.id)
}

// resolveVenues maps requested ids onto stored venues, preserving the
// request order (it is the manual visit order).
func (h *PlanHandler) resolveVenues(r *http.Request, ids []int) ([]domain.Venue, error) {
	venues, err := h.Repo.ListVenues(r.Context())
	if err != nil {
		return nil, fmt.Errorf("resolve venues: %w", err)
	}

	byID := make(map[int]domain.Venue, len(venues))
	for _, v := range venues {
		byID[v.ID] = v
	}

	selected := make([]domain.Venue, 0, len(ids))
	for _, id := range ids {
		v, ok := byID[id]
		if !ok {
			return nil, unknownVenueError{id: id}
		}
		selected = append(selected, v)
	}

	return selected, nil
}

func planResponse(route *domain.ComputedRoute, withLegs bool) dto.PlanResponse {
	stops := make([]dto.VenueResponse, 0, len(route.Venues))
	for _, v := range route.Venues {
		stops = append(stops, venueResponse(v))
	}

	res := dto.PlanResponse{
		Strategy:            string(route.Strategy),
		Start:               route.Start.CoordsToList(),
		Stops:               stops,
		Path:                pathPairs(route.Path),
		TotalDistanceMeters: totalDistance(route.Path),
	}

	if withLegs {
		res.Legs = make([]dto.LegResponse, 0, len(route.Legs))
		for _, leg := range route.Legs {
			res.Legs = append(res.Legs, dto.LegResponse{
				Index:    leg.Index,
				From:     leg.From.CoordsToList(),
				To:       leg.To.CoordsToList(),
				Path:     pathPairs(leg.Path),
				Color:    leg.Color,
				Resolved: leg.Resolved,
			})
		}
	}

	return res
}

func pathPairs(path []domain.LatLng) [][]float64 {
	out := make([][]float64, 0, len(path))
	for _, p := range path {
		out = append(out, p.CoordsToList())
	}
	return out
}

// totalDistance sums great-circle meters over consecutive waypoints of
// the closed loop. Straight-line, not road distance.
func totalDistance(path []domain.LatLng) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += geo.Haversine(path[i-1], path[i])
	}
	return total
}
