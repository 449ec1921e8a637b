package services

import (
	"log"
	"strings"

	"transport-optimizer-service/internal/config"
	"transport-optimizer-service/internal/domain"
)

// PlanRouteTransfers evaluates one source route and produces a
// TransferCandidate per passenger.
//
// targets are the other active routes for the date; seats is the run-wide
// tentative remaining-seat pool, keyed by route ID. The planner consumes
// seats as it assigns passengers so two passengers in the same run cannot
// both be planned onto the last seat of a target.
//
// Target selection is greedy load-balancing: the matching route with the
// most remaining seats wins, with route ID ascending as the tie-break so
// the choice is total and reproducible.
func PlanRouteTransfers(
	source *domain.RouteLoad,
	targets []*domain.RouteLoad,
	seats map[string]int,
	matcher *StopMatcher,
	cfg config.Optimizer,
) domain.OptimizationResult {
	result := domain.OptimizationResult{
		RouteID:        source.Route.RouteID,
		RouteName:      source.Route.Name,
		PassengerCount: source.PassengerCount(),
	}

	if source.PassengerCount() == 0 {
		result.TransferType = domain.TransferNoBookings
		result.CanCancelBus = true
		return result
	}

	for _, p := range source.Passengers {
		result.Candidates = append(result.Candidates, planPassenger(p, source, targets, seats, matcher))
	}

	feasible := 0
	for _, c := range result.Candidates {
		if c.Feasible {
			feasible++
		}
	}
	result.TransferablePassengers = feasible

	switch {
	case feasible == len(result.Candidates):
		result.TransferType = domain.TransferFull
		result.EstimatedSavings = cfg.FullTransferSavings
		// A bus may only be cancelled when no passenger would be stranded.
		result.CanCancelBus = true
	case feasible > 0:
		result.TransferType = domain.TransferPartial
		result.EstimatedSavings = cfg.PartialTransferSavings
	default:
		result.TransferType = domain.TransferNone
	}

	return result
}

func planPassenger(
	p domain.Passenger,
	source *domain.RouteLoad,
	targets []*domain.RouteLoad,
	seats map[string]int,
	matcher *StopMatcher,
) domain.TransferCandidate {
	cand := domain.TransferCandidate{Passenger: p}

	// A booking without a boarding stop cannot be matched anywhere; degrade
	// this passenger to infeasible rather than aborting the run.
	if strings.TrimSpace(p.BoardingStop) == "" {
		log.Printf("op=planner.plan route_id=%s student_id=%s reason=missing_boarding_stop", source.Route.RouteID, p.Student.StudentID)
		cand.Reason = domain.ReasonNoAlternative
		return cand
	}

	var best *domain.RouteLoad
	for _, t := range targets {
		if t.Route.RouteID == source.Route.RouteID {
			continue
		}
		if seats[t.Route.RouteID] <= 0 {
			continue
		}
		if !matcher.Matches(p.BoardingStop, t.Route.StopNames()) {
			continue
		}

		if best == nil {
			best = t
			continue
		}
		bestSeats := seats[best.Route.RouteID]
		tSeats := seats[t.Route.RouteID]
		if tSeats > bestSeats || (tSeats == bestSeats && t.Route.RouteID < best.Route.RouteID) {
			best = t
		}
	}

	if best == nil {
		cand.Reason = domain.ReasonNoAlternative
		return cand
	}

	seats[best.Route.RouteID]--
	cand.Feasible = true
	cand.TargetRouteID = best.Route.RouteID
	cand.TargetRouteName = best.Route.Name
	return cand
}
