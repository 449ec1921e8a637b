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

// Optimizer coordinates a per-date optimization run: load capacity view,
// plan transfers for every low-crowd and no-booking route, persist the run
// summary, and return the structured plan for admin review.
type Optimizer struct {
	Routes    ports.RouteRepository
	Bookings  ports.BookingRepository
	Transfers ports.TransferLog
	Runs      ports.OptimizationRepository
	Locker    ports.RunLocker
	Matcher   *StopMatcher
	Cfg       config.Optimizer
}

// Run computes an optimization plan for the date.
//
// Re-entrancy guard: if transfers have already been executed for this date,
// the prior transfers are returned grouped by source route instead of a
// fresh plan; the caller must invoke ReOptimize to override explicitly.
// Planning itself mutates nothing except the upserted summary row, so
// repeated calls without execution return identical plans.
func (o *Optimizer) Run(ctx context.Context, date, adminID string) (_ *domain.OptimizationOutcome, err error) {
	defer obs.Time(ctx, "optimizer.run")(&err)
	return o.run(ctx, date, adminID, false)
}

// ReOptimize bypasses the existing-transfer guard and computes a fresh plan.
// Prior audit records are kept untouched.
func (o *Optimizer) ReOptimize(ctx context.Context, date, adminID string) (_ *domain.OptimizationOutcome, err error) {
	defer obs.Time(ctx, "optimizer.reoptimize")(&err)
	out, err := o.run(ctx, date, adminID, true)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (o *Optimizer) run(ctx context.Context, date, adminID string, skipGuard bool) (*domain.OptimizationOutcome, error) {
	if err := domain.ParseDate(date); err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}
	if adminID == "" {
		return nil, errors.New("optimize: adminID must be non-empty")
	}

	release, err := o.Locker.Acquire(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("optimize date %s: %w", date, err)
	}
	defer release()

	if !skipGuard {
		prior, err := o.Transfers.ListByDate(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("optimize date %s: list prior transfers: %w", date, err)
		}
		if len(prior) > 0 {
			return &domain.OptimizationOutcome{
				ExistingTransfers: o.groupPriorTransfers(ctx, prior),
			}, nil
		}
	}

	loads, err := LoadsForDate(ctx, date, o.Routes, o.Bookings, o.Cfg)
	if err != nil {
		return nil, fmt.Errorf("optimize date %s: %w", date, err)
	}

	// Run-wide tentative seat pool; the planner consumes it as it assigns.
	seats := make(map[string]int, len(loads))
	for _, l := range loads {
		seats[l.Route.RouteID] = l.RemainingSeats
	}

	plan := &domain.OptimizationPlan{
		OptimizationID: uuid.NewString(),
		Date:           date,
	}

	for _, l := range loads {
		if l.Category == domain.LoadNormal {
			continue
		}
		plan.Results = append(plan.Results, PlanRouteTransfers(l, loads, seats, o.Matcher, o.Cfg))
	}

	plan.Summary = summarize(plan, adminID, time.Now().UTC())

	// Availability over strict bookkeeping: a failed summary write is logged
	// and the computed plan is still returned. The admin can execute the
	// plan even when the summary row never made it to the store.
	if err := o.Runs.SaveRun(ctx, &plan.Summary); err != nil {
		log.Printf("op=optimizer.run date=%s run_id=%s summary persistence failed: %v", date, plan.Summary.RunID, err)
	}

	log.Printf(
		"op=optimizer.run date=%s run_id=%s low_load=%d no_bookings=%d affected=%d savings=%d",
		date, plan.Summary.RunID, plan.Summary.LowLoadRoutes, plan.Summary.NoBookingRoutes,
		plan.Summary.AffectedPassengers, plan.Summary.EstimatedSavings,
	)

	return &domain.OptimizationOutcome{Plan: plan}, nil
}

func summarize(plan *domain.OptimizationPlan, adminID string, now time.Time) domain.OptimizationRun {
	run := domain.OptimizationRun{
		RunID:     plan.OptimizationID,
		Date:      plan.Date,
		AdminID:   adminID,
		CreatedAt: now,
	}

	for _, r := range plan.Results {
		run.AffectedPassengers += r.PassengerCount
		run.EstimatedSavings += r.EstimatedSavings

		switch r.TransferType {
		case domain.TransferNoBookings:
			run.NoBookingRoutes++
		case domain.TransferFull:
			run.LowLoadRoutes++
			run.FullTransfers++
		case domain.TransferPartial:
			run.LowLoadRoutes++
			run.PartialTransfers++
		case domain.TransferNone:
			run.LowLoadRoutes++
			run.NoTransfers++
		}
	}

	return run
}

// groupPriorTransfers arranges existing audit records by source route for
// the guard response. Route names are best-effort; a failed route lookup
// degrades to IDs only rather than failing the guard.
func (o *Optimizer) groupPriorTransfers(ctx context.Context, records []*domain.TransferRecord) []domain.RouteTransferGroup {
	names := make(map[string]string)
	if routes, err := o.Routes.ListActiveRoutes(ctx); err != nil {
		log.Printf("op=optimizer.guard route name lookup failed: %v", err)
	} else {
		for _, r := range routes {
			names[r.RouteID] = r.Name
		}
	}

	byRoute := make(map[string][]*domain.TransferRecord)
	for _, rec := range records {
		byRoute[rec.FromRouteID] = append(byRoute[rec.FromRouteID], rec)
	}

	ids := make([]string, 0, len(byRoute))
	for id := range byRoute {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	groups := make([]domain.RouteTransferGroup, 0, len(ids))
	for _, id := range ids {
		groups = append(groups, domain.RouteTransferGroup{
			RouteID:   id,
			RouteName: names[id],
			Transfers: byRoute[id],
		})
	}
	return groups
}
