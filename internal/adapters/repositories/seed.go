package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type RouteSeed struct {
	RouteID      string   `json:"route_id"`
	Number       string   `json:"number"`
	Name         string   `json:"name"`
	SeatCapacity int      `json:"seat_capacity"`
	Stops        []string `json:"stops"`
}

type StudentSeed struct {
	StudentID  string `json:"student_id"`
	Name       string `json:"name"`
	RollNumber string `json:"roll_number"`
	Phone      string `json:"phone"`
}

type BookingSeed struct {
	StudentID    string `json:"student_id"`
	RouteID      string `json:"route_id"`
	Date         string `json:"date"`
	BoardingStop string `json:"boarding_stop"`
	SeatNumber   int    `json:"seat_number"`
}

type SeedData struct {
	Routes   []RouteSeed   `json:"routes"`
	Students []StudentSeed `json:"students"`
	Bookings []BookingSeed `json:"bookings"`
}

// SeedFromJSON populates routes, students, and bookings for local demo
// runs. The statements use `?` placeholders; seeding targets the SQLite
// store only.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed data: read %q: %w", jsonPath, err)
	}

	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed data: parse json: %w", err)
	}

	for i, r := range data.Routes {
		if strings.TrimSpace(r.RouteID) == "" {
			return fmt.Errorf("seed data: route at index %d has empty route_id", i)
		}
	}
	for i, b := range data.Bookings {
		if strings.TrimSpace(b.StudentID) == "" || strings.TrimSpace(b.RouteID) == "" || strings.TrimSpace(b.Date) == "" {
			return fmt.Errorf("seed data: booking at index %d is missing student_id, route_id, or date", i)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed data: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range data.Routes {
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO routes (route_id, route_number, route_name, active, seat_capacity)
			 VALUES (?, ?, ?, 1, ?);`,
			r.RouteID, r.Number, r.Name, r.SeatCapacity,
		)
		if err != nil {
			return fmt.Errorf("seed data: insert route %s: %w", r.RouteID, err)
		}

		if _, err := tx.Exec(`DELETE FROM stops WHERE route_id = ?;`, r.RouteID); err != nil {
			return fmt.Errorf("seed data: clear stops for %s: %w", r.RouteID, err)
		}
		for i, stop := range r.Stops {
			_, err := tx.Exec(
				`INSERT INTO stops (route_id, stop_name, sequence) VALUES (?, ?, ?);`,
				r.RouteID, stop, i+1,
			)
			if err != nil {
				return fmt.Errorf("seed data: insert stop %q on %s: %w", stop, r.RouteID, err)
			}
		}
	}

	for _, s := range data.Students {
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO students (student_id, name, roll_number, phone)
			 VALUES (?, ?, ?, ?);`,
			s.StudentID, s.Name, s.RollNumber, s.Phone,
		)
		if err != nil {
			return fmt.Errorf("seed data: insert student %s: %w", s.StudentID, err)
		}
	}

	for _, b := range data.Bookings {
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO bookings (booking_id, student_id, route_id, travel_date, boarding_stop, seat_number, status)
			 VALUES (?, ?, ?, ?, ?, ?, 'confirmed');`,
			b.StudentID+"@"+b.Date, b.StudentID, b.RouteID, b.Date, b.BoardingStop, b.SeatNumber,
		)
		if err != nil {
			return fmt.Errorf("seed data: insert booking for %s on %s: %w", b.StudentID, b.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed data: commit tx: %w", err)
	}

	return nil
}
