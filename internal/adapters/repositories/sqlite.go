package repositories

import "database/sql"

// SqliteStore implements the repository ports on a local SQLite database.
// Same statements as the postgres store, with `?` placeholders.
type SqliteStore struct{ sqlStore }

func NewSqliteStore(db *sql.DB) *SqliteStore {
	return &SqliteStore{sqlStore{db: db, q: queries{
		listConfirmedBookings: `
			SELECT b.booking_id, b.route_id, b.travel_date, b.boarding_stop, b.seat_number,
			       s.student_id, s.name, s.roll_number, s.phone
			FROM bookings b
			JOIN students s ON s.student_id = b.student_id
			WHERE b.travel_date = ? AND b.status = 'confirmed'
			ORDER BY b.booking_id;
		`,
		countConfirmed: `
			SELECT COUNT(*) FROM bookings
			WHERE route_id = ? AND travel_date = ? AND status = 'confirmed';
		`,
		moveBooking: `
			UPDATE bookings SET route_id = ?
			WHERE student_id = ? AND travel_date = ? AND route_id = ? AND status = 'confirmed';
		`,
		appendTransfer: `
			INSERT INTO transfer_records (
				record_id, travel_date, student_id, student_name,
				from_route_id, to_route_id, boarding_stop,
				status, reason, admin_id, executed_at
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
		`,
		listTransfersByDate: `
			SELECT record_id, travel_date, student_id, student_name,
			       from_route_id, to_route_id, boarding_stop,
			       status, reason, admin_id, executed_at
			FROM transfer_records
			WHERE travel_date = ?
			ORDER BY executed_at, record_id;
		`,
		saveRun: `
			INSERT INTO optimization_runs (
				run_id, travel_date, admin_id, created_at,
				low_load_routes, no_booking_routes, affected_passengers,
				full_transfers, partial_transfers, no_transfers, estimated_savings
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (travel_date) DO UPDATE SET
				run_id = excluded.run_id,
				admin_id = excluded.admin_id,
				created_at = excluded.created_at,
				low_load_routes = excluded.low_load_routes,
				no_booking_routes = excluded.no_booking_routes,
				affected_passengers = excluded.affected_passengers,
				full_transfers = excluded.full_transfers,
				partial_transfers = excluded.partial_transfers,
				no_transfers = excluded.no_transfers,
				estimated_savings = excluded.estimated_savings;
		`,
	}}}
}
