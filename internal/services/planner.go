package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"pandal-planner/internal/domain"
	"pandal-planner/internal/ports"
	"pandal-planner/internal/session"
)

// Planner resolves a visit order for the selected venues under the active
// strategy and assembles the full computed route (order, raw path, road
// legs), consulting the route cache before any remote work.
//
// Failure policy mirrors the service boundary contracts: quota exhaustion
// and auth rejection propagate to the caller; any other remote-optimizer
// failure transparently degrades to the nearest-neighbor ordering so
// planning stays available while the optimization service is down.
type Planner struct {
	Optimizer ports.RouteOptimizer
	Quota     ports.QuotaService
	Roads     ports.RoadRouter
	Cache     ports.RouteCache

	mu         sync.Mutex
	quota      ports.QuotaState
	quotaKnown bool
}

// EffectiveStrategy applies the session rule: the remote-optimized strategy
// requires an authenticated session, otherwise planning force-falls to
// greedy and no optimization request is ever issued.
func (p *Planner) EffectiveStrategy(strategy domain.RouteStrategy, sess *session.Session) domain.RouteStrategy {
	if strategy == domain.StrategyOptimized && !sess.IsAuthenticated() {
		log.Printf("planner: strategy=%s requires auth, falling back to %s", strategy, domain.StrategyGreedy)
		return domain.StrategyGreedy
	}
	return strategy
}

// ResolveOrder returns the visit order for selected under strategy.
// Idempotent for identical inputs (subject to the remote service's own
// determinism).
func (p *Planner) ResolveOrder(
	ctx context.Context,
	strategy domain.RouteStrategy,
	start domain.LatLng,
	selected []domain.Venue,
	sess *session.Session,
) ([]domain.Venue, error) {
	return p.dispatchOrder(ctx, p.EffectiveStrategy(strategy, sess), start, selected, sess)
}

// dispatchOrder assumes the auth downgrade has already been applied.
func (p *Planner) dispatchOrder(
	ctx context.Context,
	strategy domain.RouteStrategy,
	start domain.LatLng,
	selected []domain.Venue,
	sess *session.Session,
) ([]domain.Venue, error) {
	switch strategy {
	case domain.StrategyGreedy:
		return GreedyOrder(start, selected), nil

	case domain.StrategyManual:
		order := make([]domain.Venue, len(selected))
		copy(order, selected)
		return order, nil

	case domain.StrategyOptimized:
		return p.remoteOrder(ctx, start, selected, sess)
	}

	return nil, fmt.Errorf("resolve order: unknown strategy %q", strategy)
}

func (p *Planner) remoteOrder(
	ctx context.Context,
	start domain.LatLng,
	selected []domain.Venue,
	sess *session.Session,
) ([]domain.Venue, error) {
	token := sess.Token()
	order, err := p.Optimizer.OptimizeOrder(ctx, start, selected, token)

	// The usage counter moves on every counted attempt; refresh it so the
	// UI reflects the current allowance. A rejected token is the one case
	// where the usage query would fail the same way.
	if !errors.Is(err, ports.ErrUnauthorized) {
		if _, qerr := p.RefreshQuota(ctx, token); qerr != nil {
			log.Printf("planner: quota refresh failed: %v", qerr)
		}
	}

	switch {
	case errors.Is(err, ports.ErrQuotaExceeded):
		return nil, err

	case errors.Is(err, ports.ErrUnauthorized):
		sess.ForceLogout()
		return nil, err

	case err != nil:
		// Degraded remote: planning continues on the heuristic.
		log.Printf("planner: remote optimization failed, using greedy order: %v", err)
		return GreedyOrder(start, selected), nil
	}

	if len(order) == 0 && len(selected) > 0 {
		log.Printf("planner: remote optimization returned no routes, using greedy order")
		return GreedyOrder(start, selected), nil
	}

	return order, nil
}

// PlanTrip runs the full pipeline: cache check, order resolution, closed-loop
// path construction, per-leg road geometry. The returned route replaces any
// previous one wholesale.
func (p *Planner) PlanTrip(
	ctx context.Context,
	strategy domain.RouteStrategy,
	start domain.LatLng,
	selected []domain.Venue,
	sess *session.Session,
) (*domain.ComputedRoute, error) {
	if len(selected) == 0 {
		log.Printf("planner: plan trip skipped, empty selection")
		return nil, nil
	}

	effective := p.EffectiveStrategy(strategy, sess)

	ids := make([]int, len(selected))
	for i, v := range selected {
		ids[i] = v.ID
	}
	key := RouteKey(effective, start, ids)

	var (
		order []domain.Venue
		path  []domain.LatLng
	)

	if p.Cache != nil {
		entry, ok, err := p.Cache.Get(ctx, key)
		if err != nil {
			log.Printf("planner: route cache read failed: %v", err)
		} else if ok {
			log.Printf("planner: route cache hit key=%s", key)
			order, path = entry.Venues, entry.Path
		}
	}

	if order == nil {
		var err error
		order, err = p.dispatchOrder(ctx, effective, start, selected, sess)
		if err != nil {
			return nil, err
		}
		path = ClosedLoop(start, order)

		if p.Cache != nil {
			if err := p.Cache.Put(ctx, key, ports.RouteCacheEntry{Venues: order, Path: path}); err != nil {
				log.Printf("planner: route cache write failed: %v", err)
			}
		}
	}

	legs := ResolveLegPaths(ctx, p.Roads, path)

	return &domain.ComputedRoute{
		Strategy: effective,
		Start:    start,
		Venues:   order,
		Path:     path,
		Legs:     legs,
	}, nil
}

// RefreshQuota queries the usage endpoint and records the remaining
// allowance.
func (p *Planner) RefreshQuota(ctx context.Context, token string) (ports.QuotaState, error) {
	if p.Quota == nil {
		return ports.QuotaState{}, errors.New("refresh quota: no quota service configured")
	}

	state, err := p.Quota.Usage(ctx, token)
	if err != nil {
		return ports.QuotaState{}, fmt.Errorf("refresh quota: %w", err)
	}

	p.mu.Lock()
	p.quota = state
	p.quotaKnown = true
	p.mu.Unlock()

	return state, nil
}

// QuotaState returns the last fetched allowance; ok is false until the
// first successful refresh.
func (p *Planner) QuotaState() (state ports.QuotaState, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.quota, p.quotaKnown
}
