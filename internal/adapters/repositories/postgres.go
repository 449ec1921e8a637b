package repositories

import "database/sql"

// PostgresStore implements the repository ports on Postgres (pgx stdlib driver).
type PostgresStore struct{ sqlStore }

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{sqlStore{db: db, q: queries{
		listConfirmedBookings: `
			SELECT b.booking_id, b.route_id, b.travel_date, b.boarding_stop, b.seat_number,
			       s.student_id, s.name, s.roll_number, s.phone
			FROM bookings b
			JOIN students s ON s.student_id = b.student_id
			WHERE b.travel_date = $1 AND b.status = 'confirmed'
			ORDER BY b.booking_id;
		`,
		countConfirmed: `
			SELECT COUNT(*) FROM bookings
			WHERE route_id = $1 AND travel_date = $2 AND status = 'confirmed';
		`,
		moveBooking: `
			UPDATE bookings SET route_id = $1
			WHERE student_id = $2 AND travel_date = $3 AND route_id = $4 AND status = 'confirmed';
		`,
		appendTransfer: `
			INSERT INTO transfer_records (
				record_id, travel_date, student_id, student_name,
				from_route_id, to_route_id, boarding_stop,
				status, reason, admin_id, executed_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
		`,
		listTransfersByDate: `
			SELECT record_id, travel_date, student_id, student_name,
			       from_route_id, to_route_id, boarding_stop,
			       status, reason, admin_id, executed_at
			FROM transfer_records
			WHERE travel_date = $1
			ORDER BY executed_at, record_id;
		`,
		saveRun: `
			INSERT INTO optimization_runs (
				run_id, travel_date, admin_id, created_at,
				low_load_routes, no_booking_routes, affected_passengers,
				full_transfers, partial_transfers, no_transfers, estimated_savings
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
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
