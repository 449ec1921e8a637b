package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/google/uuid"

	"transport-optimizer-service/internal/config"
	"transport-optimizer-service/internal/domain"
	"transport-optimizer-service/internal/platform/obs"
	"transport-optimizer-service/internal/ports"
)

// TransferRequest is one approved passenger move from a reviewed plan.
type TransferRequest struct {
	StudentID    string
	StudentName  string
	FromRouteID  string
	ToRouteID    string
	BoardingStop string
}

// Executor applies an approved transfer plan against live booking state.
//
// Transfers run grouped by source route, sequentially against a shared
// live-capacity view, so two moves in one execution cannot jointly overbook
// a target. Individual failures (target full, booking already moved) are
// recorded and reported; they never abort the rest of the batch.
type Executor struct {
	Routes    ports.RouteRepository
	Bookings  ports.BookingRepository
	Transfers ports.TransferLog
	Notifier  ports.Notifier
	Locker    ports.RunLocker
	Cfg       config.Optimizer
}

// Execute applies the transfer list for one date.
//
// optimizationID ties the execution back to the reviewed plan; it is carried
// for traceability only. Capacity is re-checked live at execution time, not
// taken from the planning snapshot, and each booking move is a conditional
// write: a booking no longer on its expected source route fails that single
// transfer, which makes re-running the same list safe.
func (e *Executor) Execute(
	ctx context.Context,
	date, adminID, optimizationID string,
	transfers []TransferRequest,
) (_ *domain.ExecutionSummary, err error) {
	defer obs.Time(ctx, "executor.execute")(&err)

	if err := domain.ParseDate(date); err != nil {
		return nil, fmt.Errorf("execute transfers: %w", err)
	}
	if adminID == "" {
		return nil, errors.New("execute transfers: adminID must be non-empty")
	}
	if len(transfers) == 0 {
		return nil, errors.New("execute transfers: transfer list must be non-empty")
	}

	release, err := e.Locker.Acquire(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("execute transfers date %s: %w", date, err)
	}
	defer release()

	routes, err := e.Routes.ListActiveRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("execute transfers date %s: list active routes: %w", date, err)
	}
	routeByID := make(map[string]*domain.Route, len(routes))
	for _, r := range routes {
		routeByID[r.RouteID] = r
	}

	log.Printf("op=executor.execute date=%s admin_id=%s optimization_id=%s transfers=%d", date, adminID, optimizationID, len(transfers))

	summary := &domain.ExecutionSummary{Date: date}

	// Live remaining seats per target route, fetched lazily and decremented
	// on every success so it stays authoritative across groups.
	remaining := make(map[string]int)

	groups := make(map[string][]TransferRequest)
	for _, t := range transfers {
		groups[t.FromRouteID] = append(groups[t.FromRouteID], t)
	}
	sourceIDs := make([]string, 0, len(groups))
	for id := range groups {
		sourceIDs = append(sourceIDs, id)
	}
	slices.Sort(sourceIDs)

	for _, sourceID := range sourceIDs {
		detail := domain.RouteExecutionDetail{RouteID: sourceID}

		for _, t := range groups[sourceID] {
			detail.Attempted++
			summary.Attempted++

			if failReason := e.executeOne(ctx, date, t, routeByID, remaining); failReason != "" {
				detail.Failed++
				summary.Failed++
				summary.Errors = append(summary.Errors, failReason)
				e.appendRecord(ctx, date, adminID, t, domain.TransferFailed, failReason)
				continue
			}

			detail.Succeeded++
			summary.Succeeded++
			e.appendRecord(ctx, date, adminID, t, domain.TransferCompleted, "")
			e.notifyStudent(ctx, date, t, routeByID)
		}

		// A source route is only advisory-cancellable once it is fully
		// vacated and this execution actually moved somebody off it.
		if detail.Succeeded > 0 {
			left, err := e.Bookings.CountConfirmed(ctx, sourceID, date)
			if err != nil {
				log.Printf("op=executor.execute date=%s route_id=%s recount failed: %v", date, sourceID, err)
			} else if left == 0 {
				detail.Cancellable = true
				summary.CancelledBuses = append(summary.CancelledBuses, sourceID)
			}
		}

		summary.RouteDetails = append(summary.RouteDetails, detail)
	}

	log.Printf(
		"op=executor.execute date=%s attempted=%d succeeded=%d failed=%d cancellable=%d",
		date, summary.Attempted, summary.Succeeded, summary.Failed, len(summary.CancelledBuses),
	)

	return summary, nil
}

// executeOne performs a single transfer and returns a human-readable failure
// reason, or "" on success.
func (e *Executor) executeOne(
	ctx context.Context,
	date string,
	t TransferRequest,
	routeByID map[string]*domain.Route,
	remaining map[string]int,
) string {
	target, ok := routeByID[t.ToRouteID]
	if !ok {
		return fmt.Sprintf("target route %s not found or inactive", t.ToRouteID)
	}

	if _, ok := remaining[t.ToRouteID]; !ok {
		count, err := e.Bookings.CountConfirmed(ctx, t.ToRouteID, date)
		if err != nil {
			return fmt.Sprintf("could not verify capacity of route %s: %v", t.ToRouteID, err)
		}
		remaining[t.ToRouteID] = target.Capacity(e.Cfg.DefaultSeatCapacity) - count
	}

	if remaining[t.ToRouteID] <= 0 {
		return fmt.Sprintf("target route %s (%s) is at full capacity", target.Number, target.Name)
	}

	moved, err := e.Bookings.MoveBooking(ctx, t.StudentID, t.FromRouteID, date, t.ToRouteID)
	if err != nil {
		return fmt.Sprintf("move booking for student %s: %v", t.StudentID, err)
	}
	if !moved {
		// Conditional write matched nothing: the booking was already moved
		// or never belonged to the expected source route.
		return fmt.Sprintf("booking for student %s is no longer on route %s", t.StudentID, t.FromRouteID)
	}

	remaining[t.ToRouteID]--
	return ""
}

// appendRecord writes one audit row. Audit append failures are logged and
// surfaced, never swallowed, but they do not flip the transfer's outcome.
func (e *Executor) appendRecord(ctx context.Context, date, adminID string, t TransferRequest, status domain.TransferStatus, reason string) {
	rec := &domain.TransferRecord{
		RecordID:     uuid.NewString(),
		Date:         date,
		StudentID:    t.StudentID,
		StudentName:  t.StudentName,
		FromRouteID:  t.FromRouteID,
		ToRouteID:    t.ToRouteID,
		BoardingStop: t.BoardingStop,
		Status:       status,
		Reason:       reason,
		AdminID:      adminID,
		ExecutedAt:   time.Now().UTC(),
	}

	if err := e.Transfers.Append(ctx, rec); err != nil {
		log.Printf("op=executor.audit date=%s student_id=%s append failed: %v", date, t.StudentID, err)
	}
}

// notifyStudent sends a best-effort push message about the changed route.
// Notification failures never fail the transfer.
func (e *Executor) notifyStudent(ctx context.Context, date string, t TransferRequest, routeByID map[string]*domain.Route) {
	from, to := t.FromRouteID, t.ToRouteID
	if r, ok := routeByID[t.FromRouteID]; ok {
		from = r.Name
	}
	if r, ok := routeByID[t.ToRouteID]; ok {
		to = r.Name
	}

	msg := fmt.Sprintf("Your bus for %s has changed from %s to %s. Boarding stop: %s.", date, from, to, t.BoardingStop)
	if err := e.Notifier.Notify(ctx, t.StudentID, msg); err != nil {
		log.Printf("op=executor.notify student_id=%s send failed: %v", t.StudentID, err)
	}
}
