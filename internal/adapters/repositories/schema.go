package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the optimizer tables. The DDL sticks to types both
// Postgres and SQLite accept, so one schema serves either store.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS routes (
			route_id      TEXT PRIMARY KEY,
			route_number  TEXT NOT NULL,
			route_name    TEXT NOT NULL,
			active        INTEGER NOT NULL DEFAULT 1,
			seat_capacity INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS stops (
			route_id  TEXT NOT NULL,
			stop_name TEXT NOT NULL,
			sequence  INTEGER NOT NULL,
			PRIMARY KEY (route_id, sequence)
		);`,
		`CREATE TABLE IF NOT EXISTS students (
			student_id  TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			roll_number TEXT NOT NULL DEFAULT '',
			phone       TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE TABLE IF NOT EXISTS bookings (
			booking_id    TEXT PRIMARY KEY,
			student_id    TEXT NOT NULL,
			route_id      TEXT NOT NULL,
			travel_date   TEXT NOT NULL,
			boarding_stop TEXT NOT NULL DEFAULT '',
			seat_number   INTEGER NOT NULL DEFAULT 0,
			status        TEXT NOT NULL DEFAULT 'confirmed',
			UNIQUE (student_id, travel_date)
		);`,
		`CREATE TABLE IF NOT EXISTS transfer_records (
			record_id     TEXT PRIMARY KEY,
			travel_date   TEXT NOT NULL,
			student_id    TEXT NOT NULL,
			student_name  TEXT NOT NULL DEFAULT '',
			from_route_id TEXT NOT NULL,
			to_route_id   TEXT NOT NULL,
			boarding_stop TEXT NOT NULL DEFAULT '',
			status        TEXT NOT NULL,
			reason        TEXT NOT NULL DEFAULT '',
			admin_id      TEXT NOT NULL,
			executed_at   TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS optimization_runs (
			run_id              TEXT PRIMARY KEY,
			travel_date         TEXT NOT NULL UNIQUE,
			admin_id            TEXT NOT NULL,
			created_at          TEXT NOT NULL,
			low_load_routes     INTEGER NOT NULL DEFAULT 0,
			no_booking_routes   INTEGER NOT NULL DEFAULT 0,
			affected_passengers INTEGER NOT NULL DEFAULT 0,
			full_transfers      INTEGER NOT NULL DEFAULT 0,
			partial_transfers   INTEGER NOT NULL DEFAULT 0,
			no_transfers        INTEGER NOT NULL DEFAULT 0,
			estimated_savings   INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_route_date
			ON bookings (route_id, travel_date);`,
		`CREATE INDEX IF NOT EXISTS idx_transfer_records_date
			ON transfer_records (travel_date);`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
