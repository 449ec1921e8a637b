package services

import (
	"context"
	"fmt"

	"transport-optimizer-service/internal/domain"
)

// In-memory store implementing the repository ports for service tests.
type fakeStore struct {
	routes     []*domain.Route
	bookings   []*domain.Booking
	records    []*domain.TransferRecord
	runs       []*domain.OptimizationRun
	saveRunErr error
}

func (f *fakeStore) ListActiveRoutes(ctx context.Context) ([]*domain.Route, error) {
	out := make([]*domain.Route, 0, len(f.routes))
	for _, r := range f.routes {
		if r.Active {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListConfirmedBookings(ctx context.Context, date string) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) CountConfirmed(ctx context.Context, routeID, date string) (int, error) {
	n := 0
	for _, b := range f.bookings {
		if b.RouteID == routeID && b.Date == date {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) MoveBooking(ctx context.Context, studentID, fromRouteID, date, toRouteID string) (bool, error) {
	for _, b := range f.bookings {
		if b.Student.StudentID == studentID && b.Date == date && b.RouteID == fromRouteID {
			b.RouteID = toRouteID
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Append(ctx context.Context, rec *domain.TransferRecord) error {
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeStore) ListByDate(ctx context.Context, date string) ([]*domain.TransferRecord, error) {
	out := make([]*domain.TransferRecord, 0, len(f.records))
	for _, r := range f.records {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) SaveRun(ctx context.Context, run *domain.OptimizationRun) error {
	if f.saveRunErr != nil {
		return f.saveRunErr
	}
	f.runs = append(f.runs, run)
	return nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (n *fakeNotifier) Notify(ctx context.Context, studentID, message string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, studentID+": "+message)
	return nil
}

type noopLocker struct{}

func (noopLocker) Acquire(ctx context.Context, date string) (func(), error) {
	return func() {}, nil
}

func testRoute(id, name string, capacity int, stops ...string) *domain.Route {
	r := &domain.Route{RouteID: id, Number: id, Name: name, Active: true, SeatCapacity: capacity}
	for i, s := range stops {
		r.Stops = append(r.Stops, domain.Stop{Name: s, Sequence: i + 1})
	}
	return r
}

func testBooking(studentID, routeID, date, stop string) *domain.Booking {
	return &domain.Booking{
		BookingID:    "bk-" + studentID + "-" + date,
		RouteID:      routeID,
		Date:         date,
		BoardingStop: stop,
		Student:      domain.Student{StudentID: studentID, Name: "Student " + studentID},
	}
}

// fillRoute adds n synthetic bookings so a route reaches a target load.
func fillRoute(f *fakeStore, routeID, date string, n int) {
	for i := 0; i < n; i++ {
		sid := fmt.Sprintf("%s-filler-%d", routeID, i)
		f.bookings = append(f.bookings, testBooking(sid, routeID, date, "Filler Stop"))
	}
}
