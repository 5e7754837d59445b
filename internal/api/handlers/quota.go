package handlers

import (
	"errors"
	"log"
	"net/http"

	"pandal-planner/internal/api/dto"
	"pandal-planner/internal/ports"
	"pandal-planner/internal/services"
)

// QuotaHandler reports the caller's remaining optimization allowance.
type QuotaHandler struct {
	Planner *services.Planner
}

func (h *QuotaHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	state, err := h.Planner.RefreshQuota(r.Context(), bearerToken(r))
	switch {
	case errors.Is(err, ports.ErrUnauthorized):
		writeError(w, r, http.StatusUnauthorized, "invalid or expired token")
		return
	case err != nil:
		log.Printf("quota refresh failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "optimization service unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.QuotaResponse{Remaining: state.Remaining})
}
