package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pandal-planner/internal/adapters/cache"
	"pandal-planner/internal/adapters/optimize"
	"pandal-planner/internal/adapters/roadpath"
	"pandal-planner/internal/api/dto"
	"pandal-planner/internal/domain"
	"pandal-planner/internal/ports"
	"pandal-planner/internal/services"
)

type stubRepo struct{ venues []domain.Venue }

func (s *stubRepo) ListVenues(ctx context.Context) ([]domain.Venue, error) {
	return s.venues, nil
}

func newPlanHandler(opt *optimize.MockOptimizer) *PlanHandler {
	repo := &stubRepo{venues: []domain.Venue{
		{ID: 1, Name: "Bagbazar Sarbojanin", Position: domain.LatLng{Lat: 22.6043, Lng: 88.3651}},
		{ID: 2, Name: "Ekdalia Evergreen", Position: domain.LatLng{Lat: 22.5180, Lng: 88.3642}},
		{ID: 3, Name: "College Square", Position: domain.LatLng{Lat: 22.5755, Lng: 88.3648}},
	}}
	return &PlanHandler{
		Repo: repo,
		Planner: &services.Planner{
			Optimizer: opt,
			Quota:     opt,
			Roads:     &roadpath.MockRoadRouter{},
			Cache:     cache.NewMemoryRouteCache(),
		},
	}
}

func postPlan(t *testing.T, h *PlanHandler, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.Plan(rec, req)
	return rec
}

func bearer(t *testing.T) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   "tester",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestPlanGreedyWithLegs(t *testing.T) {
	h := newPlanHandler(&optimize.MockOptimizer{})

	rec := postPlan(t, h, `{"start":[22.5726,88.3639],"venue_ids":[1,2,3],"strategy":"greedy","return_legs":true}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res dto.PlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if res.Strategy != "greedy" {
		t.Fatalf("unexpected strategy %s", res.Strategy)
	}
	if len(res.Stops) != 3 {
		t.Fatalf("expected 3 stops, got %d", len(res.Stops))
	}
	if len(res.Legs) != 4 {
		t.Fatalf("expected 4 legs, got %d", len(res.Legs))
	}
	if len(res.Path) < 2 || res.Path[0][0] != 22.5726 || res.Path[0][1] != 88.3639 {
		t.Fatalf("path must open at the start as [lat, lng]: %v", res.Path)
	}
	if res.TotalDistanceMeters <= 0 {
		t.Fatalf("expected positive total distance, got %f", res.TotalDistanceMeters)
	}
}

func TestPlanDefaultsToGreedyWithoutLegs(t *testing.T) {
	h := newPlanHandler(&optimize.MockOptimizer{})

	rec := postPlan(t, h, `{"start":[22.5726,88.3639],"venue_ids":[1]}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res dto.PlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Legs != nil {
		t.Fatalf("legs must be omitted unless requested, got %d", len(res.Legs))
	}
}

func TestPlanValidation(t *testing.T) {
	h := newPlanHandler(&optimize.MockOptimizer{})

	cases := map[string]string{
		"missing start":   `{"venue_ids":[1]}`,
		"short start":     `{"start":[22.5],"venue_ids":[1]}`,
		"start range":     `{"start":[122.5,88.3],"venue_ids":[1]}`,
		"empty venues":    `{"start":[22.5,88.3],"venue_ids":[]}`,
		"unknown venue":   `{"start":[22.5,88.3],"venue_ids":[1,42]}`,
		"bad strategy":    `{"start":[22.5,88.3],"venue_ids":[1],"strategy":"fastest"}`,
		"unknown field":   `{"start":[22.5,88.3],"venue_ids":[1],"mode":"x"}`,
		"trailing object": `{"start":[22.5,88.3],"venue_ids":[1]}{}`,
	}
	for name, body := range cases {
		if rec := postPlan(t, h, body, ""); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", name, rec.Code)
		}
	}
}

func TestPlanMethodNotAllowed(t *testing.T) {
	h := newPlanHandler(&optimize.MockOptimizer{})

	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	rec := httptest.NewRecorder()
	h.Plan(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestPlanQuotaExceeded(t *testing.T) {
	h := newPlanHandler(&optimize.MockOptimizer{Err: ports.ErrQuotaExceeded})

	body := `{"start":[22.5726,88.3639],"venue_ids":[1,2],"strategy":"optimized"}`
	rec := postPlan(t, h, body, bearer(t))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPlanUnauthorizedToken(t *testing.T) {
	h := newPlanHandler(&optimize.MockOptimizer{Err: ports.ErrUnauthorized})

	body := `{"start":[22.5726,88.3639],"venue_ids":[1,2],"strategy":"optimized"}`
	rec := postPlan(t, h, body, bearer(t))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPlanOptimizedAnonymousFallsBackToGreedy(t *testing.T) {
	opt := &optimize.MockOptimizer{}
	h := newPlanHandler(opt)

	body := `{"start":[22.5726,88.3639],"venue_ids":[1,2],"strategy":"optimized"}`
	rec := postPlan(t, h, body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res dto.PlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Strategy != "greedy" {
		t.Fatalf("anonymous optimized request must degrade to greedy, got %s", res.Strategy)
	}
	if opt.Calls != 0 {
		t.Fatalf("anonymous request must not call the optimizer, calls=%d", opt.Calls)
	}
}
