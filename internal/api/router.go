package api

import (
	"net/http"

	"pandal-planner/internal/adapters/likes"
	"pandal-planner/internal/api/handlers"
	"pandal-planner/internal/ports"
	"pandal-planner/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.VenueRepository, planner *services.Planner, likesClient *likes.Client) http.Handler {
	mux := http.NewServeMux()

	venueHandler := &handlers.VenueHandler{Repo: repo}
	planHandler := &handlers.PlanHandler{Repo: repo, Planner: planner}
	quotaHandler := &handlers.QuotaHandler{Planner: planner}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/venues", venueHandler.List)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.HandleFunc("/quota", quotaHandler.Get)

	if likesClient != nil {
		likeHandler := &handlers.LikeHandler{Likes: likesClient}
		mux.HandleFunc("/venues/{id}/like", likeHandler.Toggle)
	}

	return loggingMiddleware(mux)
}
