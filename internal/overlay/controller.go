package overlay

import (
	"log"
	"sync"

	"pandal-planner/internal/domain"
)

// State is the overlay lifecycle phase.
type State string

const (
	StateIdle        State = "idle"
	StateComputing   State = "computing"
	StateRendered    State = "rendered"
	StateHighlighted State = "highlighted"
)

// HighlightNone clears any active leg highlight.
const HighlightNone = -1

const (
	routeWeight  = 5
	routeOpacity = 0.85

	dimColor   = "#9ca3af"
	dimWeight  = 3
	dimOpacity = 0.6

	highlightColor   = "#f97316"
	highlightWeight  = 6
	highlightOpacity = 0.9

	fitPaddingPx = 40
)

// Controller owns everything drawn for the current route and enforces
// last-writer-wins across overlapping computations. Each computation
// takes a generation number; only results carrying the latest
// generation may touch the surface.
type Controller struct {
	surface MapSurface

	mu         sync.Mutex
	state      State
	generation uint64
	route      *domain.ComputedRoute

	startMarker   LayerHandle
	stopMarkers   []LayerHandle
	legLines      map[int]LayerHandle // leg index -> polyline, resolved legs only
	highlightedAt int
}

func NewController(surface MapSurface) *Controller {
	return &Controller{
		surface:       surface,
		state:         StateIdle,
		legLines:      map[int]LayerHandle{},
		highlightedAt: HighlightNone,
	}
}

// State reports the current lifecycle phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Route returns the currently rendered route, or nil.
func (c *Controller) Route() *domain.ComputedRoute {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.route
}

// StartComputation marks the overlay as computing and returns the
// generation the eventual Render or Fail call must present.
func (c *Controller) StartComputation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.state = StateComputing
	return c.generation
}

// Render draws route on the surface, replacing whatever was drawn
// before. It reports false without touching the surface when gen is
// stale, meaning a newer computation has started since.
func (c *Controller) Render(gen uint64, route *domain.ComputedRoute) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		log.Printf("overlay: drop stale render gen=%d current=%d", gen, c.generation)
		return false
	}

	c.clearLayersLocked()
	c.route = route
	c.highlightedAt = HighlightNone

	c.startMarker = c.surface.AddMarker(Marker{
		Kind:      MarkerStart,
		Position:  route.Start,
		Label:     "Start",
		Draggable: true,
	})
	for _, v := range route.Venues {
		h := c.surface.AddMarker(Marker{
			Kind:     MarkerStop,
			Position: v.Position,
			Label:    v.Name,
		})
		c.stopMarkers = append(c.stopMarkers, h)
	}

	for _, leg := range route.Legs {
		if !leg.Resolved {
			continue
		}
		h := c.surface.AddPolyline(leg.Path, PolylineStyle{
			Color:   leg.Color,
			Weight:  routeWeight,
			Opacity: routeOpacity,
		})
		c.legLines[leg.Index] = h
	}

	c.surface.FitBounds(BoundsOf(c.routePointsLocked()...), fitPaddingPx)
	c.state = StateRendered
	return true
}

// Fail abandons the computation carrying gen. A stale gen is ignored.
// The previously rendered route, if any, stays on the surface.
func (c *Controller) Fail(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return
	}
	if c.route != nil {
		c.state = StateRendered
		return
	}
	c.state = StateIdle
}

// Highlight emphasizes one leg by index, dimming the rest and framing
// the highlighted leg. Pass HighlightNone to restore the full route
// view. Unresolved legs have no geometry and cannot be highlighted.
func (c *Controller) Highlight(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.route == nil {
		return
	}

	if index == HighlightNone {
		for _, leg := range c.route.Legs {
			h, ok := c.legLines[leg.Index]
			if !ok {
				continue
			}
			c.surface.SetPolylineStyle(h, PolylineStyle{
				Color:   leg.Color,
				Weight:  routeWeight,
				Opacity: routeOpacity,
			})
		}
		c.surface.FitBounds(BoundsOf(c.routePointsLocked()...), fitPaddingPx)
		c.highlightedAt = HighlightNone
		c.state = StateRendered
		return
	}

	target, ok := c.legLines[index]
	if !ok {
		return
	}

	for i, h := range c.legLines {
		if i == index {
			continue
		}
		c.surface.SetPolylineStyle(h, PolylineStyle{
			Color:   dimColor,
			Weight:  dimWeight,
			Opacity: dimOpacity,
		})
	}
	c.surface.SetPolylineStyle(target, PolylineStyle{
		Color:   highlightColor,
		Weight:  highlightWeight,
		Opacity: highlightOpacity,
	})

	for _, leg := range c.route.Legs {
		if leg.Index == index {
			c.surface.FitBounds(BoundsOf(leg.Path), fitPaddingPx)
			break
		}
	}

	c.highlightedAt = index
	c.state = StateHighlighted
}

// HighlightHomeStart frames the opening leg out of the start point.
func (c *Controller) HighlightHomeStart() {
	c.Highlight(0)
}

// HighlightHomeEnd frames the closing leg back to the start point.
func (c *Controller) HighlightHomeEnd() {
	c.mu.Lock()
	var last int
	if c.route != nil {
		last = len(c.route.Legs) - 1
	}
	c.mu.Unlock()

	if last > 0 {
		c.Highlight(last)
	}
}

// Highlighted reports the active leg index, or HighlightNone.
func (c *Controller) Highlighted() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.highlightedAt
}

// Reset clears all drawn layers and returns to Idle. The generation
// counter keeps advancing so in-flight computations stay stale.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.clearLayersLocked()
	c.route = nil
	c.highlightedAt = HighlightNone
	c.state = StateIdle
}

func (c *Controller) clearLayersLocked() {
	if len(c.stopMarkers) > 0 || len(c.legLines) > 0 || c.route != nil {
		c.surface.RemoveLayer(c.startMarker)
	}
	for _, h := range c.stopMarkers {
		c.surface.RemoveLayer(h)
	}
	for _, h := range c.legLines {
		c.surface.RemoveLayer(h)
	}
	c.stopMarkers = nil
	c.legLines = map[int]LayerHandle{}
}

func (c *Controller) routePointsLocked() [][]domain.LatLng {
	if c.route == nil {
		return nil
	}
	if len(c.route.Path) > 0 {
		return [][]domain.LatLng{c.route.Path}
	}
	paths := make([][]domain.LatLng, 0, len(c.route.Legs))
	for _, leg := range c.route.Legs {
		if leg.Resolved {
			paths = append(paths, leg.Path)
		}
	}
	return paths
}
