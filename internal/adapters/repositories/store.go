package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"transport-optimizer-service/internal/domain"
	"transport-optimizer-service/internal/platform/obs"
)

// queries holds the dialect-specific SQL (postgres uses $N placeholders,
// sqlite uses ?). Statements without parameters are shared below.
type queries struct {
	listConfirmedBookings string
	countConfirmed        string
	moveBooking           string
	appendTransfer        string
	listTransfersByDate   string
	saveRun               string
}

// sqlStore implements the repository ports on database/sql. Embedded by the
// dialect-specific constructors.
type sqlStore struct {
	db *sql.DB
	q  queries
}

const listActiveRoutesSQL = `
	SELECT route_id, route_number, route_name, seat_capacity
	FROM routes
	WHERE active = 1
	ORDER BY route_id;
`

const listStopsSQL = `
	SELECT route_id, stop_name, sequence
	FROM stops
	ORDER BY route_id, sequence;
`

func (s *sqlStore) ListActiveRoutes(ctx context.Context) (_ []*domain.Route, err error) {
	defer obs.Time(ctx, "store.list_active_routes")(&err)

	if s.db == nil {
		return nil, errors.New("store: db is nil")
	}

	rows, err := s.db.QueryContext(ctx, listActiveRoutesSQL)
	if err != nil {
		return nil, fmt.Errorf("list active routes: query routes table: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]*domain.Route)
	routes := make([]*domain.Route, 0, 32)
	for rows.Next() {
		r := &domain.Route{Active: true}
		if err := rows.Scan(&r.RouteID, &r.Number, &r.Name, &r.SeatCapacity); err != nil {
			return nil, fmt.Errorf("list active routes: scan row: %w", err)
		}
		byID[r.RouteID] = r
		routes = append(routes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active routes: row iteration: %w", err)
	}

	stopRows, err := s.db.QueryContext(ctx, listStopsSQL)
	if err != nil {
		return nil, fmt.Errorf("list active routes: query stops table: %w", err)
	}
	defer stopRows.Close()

	for stopRows.Next() {
		var routeID string
		var stop domain.Stop
		if err := stopRows.Scan(&routeID, &stop.Name, &stop.Sequence); err != nil {
			return nil, fmt.Errorf("list active routes: scan stop row: %w", err)
		}
		if r, ok := byID[routeID]; ok {
			r.Stops = append(r.Stops, stop)
		}
	}
	if err := stopRows.Err(); err != nil {
		return nil, fmt.Errorf("list active routes: stop row iteration: %w", err)
	}

	return routes, nil
}

func (s *sqlStore) ListConfirmedBookings(ctx context.Context, date string) (_ []*domain.Booking, err error) {
	defer obs.Time(ctx, "store.list_confirmed_bookings")(&err)

	rows, err := s.db.QueryContext(ctx, s.q.listConfirmedBookings, date)
	if err != nil {
		return nil, fmt.Errorf("list confirmed bookings: query for %s: %w", date, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0, 64)
	for rows.Next() {
		b := &domain.Booking{}
		err := rows.Scan(
			&b.BookingID, &b.RouteID, &b.Date, &b.BoardingStop, &b.SeatNumber,
			&b.Student.StudentID, &b.Student.Name, &b.Student.RollNumber, &b.Student.Phone,
		)
		if err != nil {
			return nil, fmt.Errorf("list confirmed bookings: scan row: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list confirmed bookings: row iteration: %w", err)
	}

	return bookings, nil
}

func (s *sqlStore) CountConfirmed(ctx context.Context, routeID, date string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, s.q.countConfirmed, routeID, date).Scan(&n); err != nil {
		return 0, fmt.Errorf("count confirmed: route %s date %s: %w", routeID, date, err)
	}
	return n, nil
}

// MoveBooking is the conditional write at the heart of the overbooking
// guard: the UPDATE matches only while the booking still sits on
// fromRouteID, and zero affected rows is reported as moved=false.
func (s *sqlStore) MoveBooking(ctx context.Context, studentID, fromRouteID, date, toRouteID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.q.moveBooking, toRouteID, studentID, date, fromRouteID)
	if err != nil {
		return false, fmt.Errorf("move booking: student %s %s -> %s: %w", studentID, fromRouteID, toRouteID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("move booking: rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *sqlStore) Append(ctx context.Context, rec *domain.TransferRecord) error {
	_, err := s.db.ExecContext(ctx, s.q.appendTransfer,
		rec.RecordID, rec.Date, rec.StudentID, rec.StudentName,
		rec.FromRouteID, rec.ToRouteID, rec.BoardingStop,
		string(rec.Status), rec.Reason, rec.AdminID,
		rec.ExecutedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append transfer record %s: %w", rec.RecordID, err)
	}
	return nil
}

func (s *sqlStore) ListByDate(ctx context.Context, date string) ([]*domain.TransferRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.q.listTransfersByDate, date)
	if err != nil {
		return nil, fmt.Errorf("list transfer records: query for %s: %w", date, err)
	}
	defer rows.Close()

	records := make([]*domain.TransferRecord, 0, 32)
	for rows.Next() {
		rec := &domain.TransferRecord{}
		var status, executedAt string
		err := rows.Scan(
			&rec.RecordID, &rec.Date, &rec.StudentID, &rec.StudentName,
			&rec.FromRouteID, &rec.ToRouteID, &rec.BoardingStop,
			&status, &rec.Reason, &rec.AdminID, &executedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list transfer records: scan row: %w", err)
		}
		rec.Status = domain.TransferStatus(status)
		if ts, err := time.Parse(time.RFC3339Nano, executedAt); err == nil {
			rec.ExecutedAt = ts
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transfer records: row iteration: %w", err)
	}

	return records, nil
}

func (s *sqlStore) SaveRun(ctx context.Context, run *domain.OptimizationRun) error {
	_, err := s.db.ExecContext(ctx, s.q.saveRun,
		run.RunID, run.Date, run.AdminID,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.LowLoadRoutes, run.NoBookingRoutes, run.AffectedPassengers,
		run.FullTransfers, run.PartialTransfers, run.NoTransfers,
		run.EstimatedSavings,
	)
	if err != nil {
		return fmt.Errorf("save optimization run %s: %w", run.RunID, err)
	}
	return nil
}
