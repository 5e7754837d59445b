package handlers

import (
	"log"
	"net/http"

	"pandal-planner/internal/api/dto"
	"pandal-planner/internal/domain"
	"pandal-planner/internal/ports"
)

// VenueHandler exposes read-only venue retrieval endpoints.
type VenueHandler struct {
	Repo ports.VenueRepository
}

func (h *VenueHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	venues, err := h.Repo.ListVenues(r.Context())
	if err != nil {
		log.Printf("list venues failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListVenuesResponse{
		Venues: make([]dto.VenueResponse, 0, len(venues)),
	}
	for _, v := range venues {
		res.Venues = append(res.Venues, venueResponse(v))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func venueResponse(v domain.Venue) dto.VenueResponse {
	return dto.VenueResponse{
		ID:        v.ID,
		Name:      v.Name,
		Region:    v.Region,
		Town:      v.Town,
		Latitude:  v.Position.Lat,
		Longitude: v.Position.Lng,
		IsBig:     v.IsBig,
		MainPic:   v.MainPic,
		LikeCount: v.LikeCount,
	}
}
