package aggregator

import (
	"sync"

	"github.com/TavernSpace/nestwallet-frontend-sub008/internal/swap"
)

// Selector tracks which route the user has pinned. The pin is sticky:
// it keeps winning as long as the pinned route id appears in the latest
// result set, and falls back to the first route otherwise.
type Selector struct {
	mu     sync.Mutex
	pinned string
}

func NewSelector() *Selector {
	return &Selector{}
}

func (s *Selector) Pin(routeID string) {
	s.mu.Lock()
	s.pinned = routeID
	s.mu.Unlock()
}

func (s *Selector) Unpin() {
	s.mu.Lock()
	s.pinned = ""
	s.mu.Unlock()
}

func (s *Selector) Pinned() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pinned
}

// Select picks the active route from routes. Returns nil for an empty
// set.
func (s *Selector) Select(routes []swap.Route) swap.Route {
	if len(routes) == 0 {
		return nil
	}
	s.mu.Lock()
	pinned := s.pinned
	s.mu.Unlock()
	if pinned != "" {
		for _, route := range routes {
			if route.RouteData().ID == pinned {
				return route
			}
		}
	}
	return routes[0]
}
