package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"pandal-planner/internal/adapters/likes"
	"pandal-planner/internal/api/dto"
	"pandal-planner/internal/ports"
)

// LikeHandler proxies venue like toggles to the upstream catalog.
type LikeHandler struct {
	Likes *likes.Client
}

func (h *LikeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "invalid venue id")
		return
	}

	token := bearerToken(r)
	if token == "" {
		writeError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	result, err := h.Likes.Toggle(r.Context(), id, token)
	switch {
	case errors.Is(err, ports.ErrUnauthorized):
		writeError(w, r, http.StatusUnauthorized, "invalid or expired token")
		return
	case err != nil:
		log.Printf("toggle like failed: venue=%d err=%v", id, err)
		writeError(w, r, http.StatusBadGateway, "catalog service unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LikeResponse{
		VenueID:   id,
		Liked:     result.Liked,
		LikeCount: result.LikeCount,
	})
}
