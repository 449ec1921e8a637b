package ports

import (
	"context"
	"transport-optimizer-service/internal/domain"
)

// Port: boundary for reading and moving confirmed bookings.
type BookingRepository interface {
	// Return all confirmed bookings for a travel date.
	ListConfirmedBookings(ctx context.Context, date string) ([]*domain.Booking, error)

	// Return the live confirmed-passenger count for one route and date.
	CountConfirmed(ctx context.Context, routeID, date string) (int, error)

	// Reassign a student's booking from one route to another, conditionally:
	// the update must apply only while the booking is still on fromRouteID.
	// Returns false (no error) when zero rows matched, which callers must
	// treat as a feasibility failure, not success.
	MoveBooking(ctx context.Context, studentID, fromRouteID, date, toRouteID string) (bool, error)
}
