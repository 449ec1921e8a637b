package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"transport-optimizer-service/internal/domain"
)

func newTestStore(t *testing.T) *SqliteStore {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// One connection keeps the in-memory database shared across queries.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return NewSqliteStore(db)
}

func seedTestData(t *testing.T, store *SqliteStore) {
	t.Helper()

	seed := `{
		"routes": [
			{"route_id": "route-a", "number": "12", "name": "Route A", "seat_capacity": 60,
			 "stops": ["School", "Main Stop", "Bus Stand"]},
			{"route_id": "route-b", "number": "14", "name": "Route B", "seat_capacity": 2,
			 "stops": ["Main", "Office"]}
		],
		"students": [
			{"student_id": "s1", "name": "First Student", "roll_number": "R1"},
			{"student_id": "s2", "name": "Second Student", "roll_number": "R2"}
		],
		"bookings": [
			{"student_id": "s1", "route_id": "route-a", "date": "2026-09-01", "boarding_stop": "Main Stop", "seat_number": 4},
			{"student_id": "s2", "route_id": "route-b", "date": "2026-09-01", "boarding_stop": "Main", "seat_number": 1}
		]
	}`

	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(seed), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if err := SeedFromJSON(store.db, path); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestSqliteStoreRoutesAndBookings(t *testing.T) {
	store := newTestStore(t)
	seedTestData(t, store)
	ctx := context.Background()

	routes, err := store.ListActiveRoutes(ctx)
	if err != nil {
		t.Fatalf("list routes: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("routes = %d, want 2", len(routes))
	}
	if routes[0].RouteID != "route-a" || len(routes[0].Stops) != 3 {
		t.Fatalf("route-a = %+v, want 3 stops", routes[0])
	}
	if routes[0].Stops[1].Name != "Main Stop" {
		t.Errorf("stop order wrong: %+v", routes[0].Stops)
	}

	bookings, err := store.ListConfirmedBookings(ctx, "2026-09-01")
	if err != nil {
		t.Fatalf("list bookings: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("bookings = %d, want 2", len(bookings))
	}
	if bookings[0].Student.Name == "" {
		t.Error("student join missing")
	}

	n, err := store.CountConfirmed(ctx, "route-b", "2026-09-01")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("route-b count = %d, want 1", n)
	}
}

func TestSqliteStoreMoveBookingIsConditional(t *testing.T) {
	store := newTestStore(t)
	seedTestData(t, store)
	ctx := context.Background()

	moved, err := store.MoveBooking(ctx, "s1", "route-a", "2026-09-01", "route-b")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if !moved {
		t.Fatal("expected first move to apply")
	}

	// Same move again: the booking is on route-b now, so nothing matches.
	moved, err = store.MoveBooking(ctx, "s1", "route-a", "2026-09-01", "route-b")
	if err != nil {
		t.Fatalf("second move: %v", err)
	}
	if moved {
		t.Fatal("conditional update must not match an already-moved booking")
	}

	n, _ := store.CountConfirmed(ctx, "route-b", "2026-09-01")
	if n != 2 {
		t.Fatalf("route-b count = %d, want 2", n)
	}
}

func TestSqliteStoreTransferLog(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := &domain.TransferRecord{
		RecordID:     "rec-1",
		Date:         "2026-09-01",
		StudentID:    "s1",
		StudentName:  "First Student",
		FromRouteID:  "route-a",
		ToRouteID:    "route-b",
		BoardingStop: "Main Stop",
		Status:       domain.TransferCompleted,
		AdminID:      "admin-1",
		ExecutedAt:   time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := store.Append(ctx, rec); err != nil {
		t.Fatalf("append: %v", err)
	}

	records, err := store.ListByDate(ctx, "2026-09-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	got := records[0]
	if got.Status != domain.TransferCompleted || got.FromRouteID != "route-a" {
		t.Fatalf("record = %+v", got)
	}
	if !got.ExecutedAt.Equal(rec.ExecutedAt) {
		t.Errorf("executed_at = %v, want %v", got.ExecutedAt, rec.ExecutedAt)
	}

	if records, _ := store.ListByDate(ctx, "2026-09-02"); len(records) != 0 {
		t.Fatalf("unexpected records for other date: %d", len(records))
	}
}

func TestSqliteStoreSaveRunUpserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	run := &domain.OptimizationRun{
		RunID:         "run-1",
		Date:          "2026-09-01",
		AdminID:       "admin-1",
		CreatedAt:     time.Now().UTC(),
		LowLoadRoutes: 2,
	}
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("first save: %v", err)
	}

	// Re-optimizing the same date replaces the summary, keyed by date.
	run.RunID = "run-2"
	run.LowLoadRoutes = 3
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("second save: %v", err)
	}

	var count int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM optimization_runs;`).Scan(&count); err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if count != 1 {
		t.Fatalf("run rows = %d, want 1 (upsert by date)", count)
	}
}
