package domain

// A fixed bus route administered outside the optimizer.
// The optimizer treats routes as read-only: it derives passenger loads
// from bookings but never edits the route itself.
type Route struct {
	RouteID      string
	Number       string
	Name         string
	Active       bool
	SeatCapacity int // 0 means "use the configured default"
	Stops        []Stop
}

// A boarding point on a route. Stops are route-scoped records; there is
// no cross-route stop identity, so feasibility matching works on the
// free-text name (see services.StopMatcher).
type Stop struct {
	Name     string
	Sequence int
}

// Capacity resolves the route's seat capacity against a configured fallback.
func (r *Route) Capacity(defaultCapacity int) int {
	if r.SeatCapacity > 0 {
		return r.SeatCapacity
	}
	return defaultCapacity
}

// StopNames returns the route's stop names in sequence order.
// Stops are assumed to be stored pre-sorted by sequence.
func (r *Route) StopNames() []string {
	names := make([]string, 0, len(r.Stops))
	for _, s := range r.Stops {
		names = append(names, s.Name)
	}
	return names
}
