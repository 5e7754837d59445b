package planner

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"

	"pandal-planner/internal/domain"
	"pandal-planner/internal/overlay"
	"pandal-planner/internal/services"
	"pandal-planner/internal/session"
)

// Fallback start point in central Kolkata, used until the device
// position is known or the user drops the marker themselves.
var defaultStart = domain.LatLng{Lat: 22.5726, Lng: 88.3639}

// startJitterDeg spreads fallback starts so two users on the default
// never look identical.
const startJitterDeg = 0.05

// Facade ties the planning pipeline, the session, and the map overlay
// together behind the operations the host UI calls. All methods are
// safe for concurrent use.
type Facade struct {
	engine  *services.Planner
	overlay *overlay.Controller
	sess    *session.Session
	locator Geolocator // optional

	mu        sync.Mutex
	start     domain.StartPoint
	selection *domain.VenueSelection
	strategy  domain.RouteStrategy
	route     *domain.ComputedRoute
}

func NewFacade(engine *services.Planner, ctrl *overlay.Controller, sess *session.Session, locator Geolocator) *Facade {
	f := &Facade{
		engine:  engine,
		overlay: ctrl,
		sess:    sess,
		locator: locator,
		start: domain.StartPoint{
			Position: jitteredDefault(),
		},
		selection: &domain.VenueSelection{},
		strategy:  domain.StrategyGreedy,
	}

	// A logout invalidates the remote strategy immediately, not on the
	// next plan attempt.
	sess.OnChange(func(authenticated bool) {
		if authenticated {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.strategy == domain.StrategyOptimized {
			log.Printf("planner: session ended, strategy %s -> %s", f.strategy, domain.StrategyGreedy)
			f.strategy = domain.StrategyGreedy
		}
	})

	return f
}

func jitteredDefault() domain.LatLng {
	return domain.LatLng{
		Lat: defaultStart.Lat + (rand.Float64()*2-1)*startJitterDeg,
		Lng: defaultStart.Lng + (rand.Float64()*2-1)*startJitterDeg,
	}
}

// Start returns the current start point.
func (f *Facade) Start() domain.StartPoint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.start
}

// SetStart moves the start marker to pos and confirms it.
func (f *Facade) SetStart(pos domain.LatLng) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.start = domain.StartPoint{Position: pos, Confirmed: true}
}

// ConfirmStart locks in the current marker position as-is.
func (f *Facade) ConfirmStart() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.start.Confirmed = true
}

// Geolocate moves the start marker to the device position. A denied or
// failed lookup keeps the current marker and reports the error; the
// marker stays unconfirmed so the user still has to place it.
func (f *Facade) Geolocate(ctx context.Context) error {
	if f.locator == nil {
		return errors.New("geolocate: no locator configured")
	}

	pos, err := f.locator.CurrentPosition(ctx)
	if err != nil {
		log.Printf("planner: geolocation unavailable: %v", err)
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.start = domain.StartPoint{Position: pos}
	return nil
}

// ToggleVenue adds or removes v from the trip. Selection is gated on a
// confirmed start point; toggles before that are ignored.
func (f *Facade) ToggleVenue(v domain.Venue) (selected bool, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.start.Confirmed {
		log.Printf("planner: venue toggle ignored, start point not confirmed")
		return false, false
	}
	return f.selection.Toggle(v), true
}

// Selection returns the selected venues in insertion order.
func (f *Facade) Selection() []domain.Venue {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selection.Venues()
}

// Strategy returns the active route strategy.
func (f *Facade) Strategy() domain.RouteStrategy {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.strategy
}

// SetStrategy switches the active strategy. Selecting the remote
// strategy while signed out falls back to greedy; selecting it while
// signed in refreshes the quota display in the background.
func (f *Facade) SetStrategy(ctx context.Context, s domain.RouteStrategy) domain.RouteStrategy {
	effective := f.engine.EffectiveStrategy(s, f.sess)

	f.mu.Lock()
	f.strategy = effective
	f.mu.Unlock()

	if effective == domain.StrategyOptimized {
		if _, err := f.engine.RefreshQuota(ctx, f.sess.Token()); err != nil {
			log.Printf("planner: quota refresh failed: %v", err)
		}
	}

	return effective
}

// Route returns the last computed route, or nil.
func (f *Facade) Route() *domain.ComputedRoute {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.route
}

// ComputeRoute runs the planning pipeline for the current start,
// selection, and strategy, then renders the result. With nothing
// selected or the start unconfirmed it is a silent no-op. On failure
// the previous route stays rendered and the error is returned so the
// caller can surface quota or auth problems.
func (f *Facade) ComputeRoute(ctx context.Context) error {
	f.mu.Lock()
	start := f.start
	selected := f.selection.Venues()
	strategy := f.strategy
	f.mu.Unlock()

	if !start.Confirmed || len(selected) == 0 {
		log.Printf("planner: compute skipped, confirmed=%v selected=%d", start.Confirmed, len(selected))
		return nil
	}

	gen := f.overlay.StartComputation()

	route, err := f.engine.PlanTrip(ctx, strategy, start.Position, selected, f.sess)
	if err != nil {
		f.overlay.Fail(gen)
		return err
	}

	if !f.overlay.Render(gen, route) {
		return nil
	}

	f.mu.Lock()
	f.route = route
	f.mu.Unlock()
	return nil
}

// HighlightLeg emphasizes one leg on the overlay.
func (f *Facade) HighlightLeg(index int) {
	f.overlay.Highlight(index)
}

// ClearHighlight restores the full route view.
func (f *Facade) ClearHighlight() {
	f.overlay.Highlight(overlay.HighlightNone)
}

// Reset clears the selection and the rendered route. The start point
// and strategy survive so the user can plan again right away.
func (f *Facade) Reset() {
	f.mu.Lock()
	f.selection.Clear()
	f.route = nil
	f.mu.Unlock()

	f.overlay.Reset()
}
