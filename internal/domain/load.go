package domain

// LoadCategory classifies a route's passenger load for one date.
type LoadCategory string

const (
	// No confirmed bookings at all; the bus is trivially cancellable.
	LoadNoBookings LoadCategory = "no_bookings"
	// 1..threshold passengers; a consolidation candidate.
	LoadLow LoadCategory = "low_crowd"
	// Above threshold; never optimized away, only receives transfers.
	LoadNormal LoadCategory = "normal"
)

// ClassifyLoad buckets a confirmed-passenger count against the low-load threshold.
func ClassifyLoad(count, lowLoadThreshold int) LoadCategory {
	switch {
	case count == 0:
		return LoadNoBookings
	case count <= lowLoadThreshold:
		return LoadLow
	default:
		return LoadNormal
	}
}

// RouteLoad is the Capacity Tracker's per-route view for one date.
type RouteLoad struct {
	Route          *Route
	Date           string
	Passengers     []Passenger
	Capacity       int
	RemainingSeats int
	Category       LoadCategory
}

func (l *RouteLoad) PassengerCount() int { return len(l.Passengers) }
