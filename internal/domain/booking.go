package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date key format used throughout the optimizer.
const DateLayout = "2006-01-02"

// ParseDate validates a travel-date key.
func ParseDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("parse date %q: want YYYY-MM-DD: %w", date, err)
	}
	return nil
}

// Student identity attached to a booking. Sourced from the enrollment
// subsystem; the optimizer only carries it through to logs and messages.
type Student struct {
	StudentID  string
	Name       string
	RollNumber string
	Phone      string
}

// A confirmed reservation binding a student to a route for one travel date.
// The set of confirmed bookings for (route, date) defines that route's load.
type Booking struct {
	BookingID    string
	RouteID      string
	Date         string
	BoardingStop string
	SeatNumber   int
	Student      Student
}

// Passenger is a transient projection of a booking used inside a single
// optimization run. It is never persisted on its own.
type Passenger struct {
	Student      Student
	BoardingStop string
	SeatNumber   int
}

// AsPassenger projects the booking for planning.
func (b *Booking) AsPassenger() Passenger {
	return Passenger{
		Student:      b.Student,
		BoardingStop: b.BoardingStop,
		SeatNumber:   b.SeatNumber,
	}
}
