package services

import (
	"context"
	"fmt"
	"log"
	"slices"

	"transport-optimizer-service/internal/config"
	"transport-optimizer-service/internal/domain"
	"transport-optimizer-service/internal/ports"
)

// LoadsForDate computes the Capacity Tracker view: for every active route,
// its confirmed passengers, remaining seats against the route's capacity,
// and its load classification for the date.
//
// Read-only. A failed structural query (routes or bookings) aborts the whole
// computation; there are no partial route lists.
func LoadsForDate(
	ctx context.Context,
	date string,
	routeRepo ports.RouteRepository,
	bookingRepo ports.BookingRepository,
	cfg config.Optimizer,
) ([]*domain.RouteLoad, error) {
	routes, err := routeRepo.ListActiveRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("loads for date %s: list active routes: %w", date, err)
	}

	bookings, err := bookingRepo.ListConfirmedBookings(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("loads for date %s: list confirmed bookings: %w", date, err)
	}

	byRoute := make(map[string][]domain.Passenger, len(routes))
	known := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		known[r.RouteID] = struct{}{}
	}

	for _, b := range bookings {
		if _, ok := known[b.RouteID]; !ok {
			// Booking on an inactive or deleted route; not this run's problem.
			log.Printf("op=capacity.loads date=%s skip booking_id=%s route_id=%s reason=route_not_active", date, b.BookingID, b.RouteID)
			continue
		}
		byRoute[b.RouteID] = append(byRoute[b.RouteID], b.AsPassenger())
	}

	loads := make([]*domain.RouteLoad, 0, len(routes))
	for _, r := range routes {
		passengers := byRoute[r.RouteID]
		capacity := r.Capacity(cfg.DefaultSeatCapacity)
		loads = append(loads, &domain.RouteLoad{
			Route:          r,
			Date:           date,
			Passengers:     passengers,
			Capacity:       capacity,
			RemainingSeats: capacity - len(passengers),
			Category:       domain.ClassifyLoad(len(passengers), cfg.LowLoadThreshold),
		})
	}

	// Stable route order keeps plans reproducible across runs.
	slices.SortFunc(loads, func(a, b *domain.RouteLoad) int {
		if a.Route.RouteID < b.Route.RouteID {
			return -1
		}
		if a.Route.RouteID > b.Route.RouteID {
			return 1
		}
		return 0
	})

	return loads, nil
}
