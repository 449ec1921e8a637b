package services

import (
	"testing"

	"transport-optimizer-service/internal/config"
	"transport-optimizer-service/internal/domain"
)

func loadFor(r *domain.Route, remaining int, passengers ...domain.Passenger) *domain.RouteLoad {
	return &domain.RouteLoad{
		Route:          r,
		Date:           "2026-09-01",
		Passengers:     passengers,
		Capacity:       r.SeatCapacity,
		RemainingSeats: remaining,
		Category:       domain.ClassifyLoad(len(passengers), 30),
	}
}

func passenger(id, stop string) domain.Passenger {
	return domain.Passenger{Student: domain.Student{StudentID: id, Name: "Student " + id}, BoardingStop: stop}
}

func seatsFromLoads(loads ...*domain.RouteLoad) map[string]int {
	seats := make(map[string]int, len(loads))
	for _, l := range loads {
		seats[l.Route.RouteID] = l.RemainingSeats
	}
	return seats
}

func TestPlannerPartialTransfer(t *testing.T) {
	cfg := config.DefaultOptimizer()
	matcher := NewStopMatcher(cfg.StopAliasGroups)

	source := loadFor(
		testRoute("route-a", "Route A", 60),
		57,
		passenger("s1", "Main Stop"),
		passenger("s2", "Secondary Stop"),
		passenger("s3", "Unmatched Stop"),
	)
	targetB := loadFor(testRoute("route-b", "Route B", 60, "Main", "Office"), 5)
	targetC := loadFor(testRoute("route-c", "Route C", 60, "Third Pirivu"), 0)

	loads := []*domain.RouteLoad{source, targetB, targetC}
	seats := seatsFromLoads(loads...)

	res := PlanRouteTransfers(source, loads, seats, matcher, cfg)

	if res.TransferType != domain.TransferPartial {
		t.Fatalf("transfer type = %q, want partial_transfer", res.TransferType)
	}
	if res.TransferablePassengers != 2 {
		t.Fatalf("transferable = %d, want 2", res.TransferablePassengers)
	}
	if res.EstimatedSavings != cfg.PartialTransferSavings {
		t.Errorf("savings = %d, want %d", res.EstimatedSavings, cfg.PartialTransferSavings)
	}
	if res.CanCancelBus {
		t.Error("partial transfer must never allow bus cancellation")
	}

	c := res.Candidates
	if len(c) != 3 {
		t.Fatalf("candidates = %d, want 3", len(c))
	}
	if !c[0].Feasible || c[0].TargetRouteID != "route-b" {
		t.Errorf("Main Stop passenger: feasible=%v target=%q, want route-b", c[0].Feasible, c[0].TargetRouteID)
	}
	if !c[1].Feasible || c[1].TargetRouteID != "route-b" {
		t.Errorf("Secondary Stop passenger: feasible=%v target=%q, want route-b", c[1].Feasible, c[1].TargetRouteID)
	}
	if c[2].Feasible {
		t.Error("Unmatched Stop passenger must be infeasible")
	}
	if c[2].Reason != domain.ReasonNoAlternative {
		t.Errorf("infeasible reason = %q, want %q", c[2].Reason, domain.ReasonNoAlternative)
	}

	// The planner consumed two of route-b's five tentative seats.
	if seats["route-b"] != 3 {
		t.Errorf("route-b tentative seats = %d, want 3", seats["route-b"])
	}
}

func TestPlannerFullTransfer(t *testing.T) {
	cfg := config.DefaultOptimizer()
	matcher := NewStopMatcher(cfg.StopAliasGroups)

	source := loadFor(
		testRoute("route-a", "Route A", 60),
		58,
		passenger("s1", "Main Stop"),
		passenger("s2", "Main Gate"),
	)
	target := loadFor(testRoute("route-b", "Route B", 60, "Main"), 10)

	loads := []*domain.RouteLoad{source, target}
	seats := seatsFromLoads(loads...)

	res := PlanRouteTransfers(source, loads, seats, matcher, cfg)

	if res.TransferType != domain.TransferFull {
		t.Fatalf("transfer type = %q, want full_transfer", res.TransferType)
	}
	if !res.CanCancelBus {
		t.Error("full transfer must mark the bus cancellable")
	}
	if res.EstimatedSavings != cfg.FullTransferSavings {
		t.Errorf("savings = %d, want %d", res.EstimatedSavings, cfg.FullTransferSavings)
	}
}

func TestPlannerNoBookings(t *testing.T) {
	cfg := config.DefaultOptimizer()
	matcher := NewStopMatcher(cfg.StopAliasGroups)

	source := loadFor(testRoute("route-d", "Route D", 60, "Main"), 60)
	seats := seatsFromLoads(source)

	res := PlanRouteTransfers(source, []*domain.RouteLoad{source}, seats, matcher, cfg)

	if res.TransferType != domain.TransferNoBookings {
		t.Fatalf("transfer type = %q, want no_bookings", res.TransferType)
	}
	if !res.CanCancelBus {
		t.Error("empty bus must be cancellable")
	}
	if res.EstimatedSavings != 0 {
		t.Errorf("savings = %d, want 0", res.EstimatedSavings)
	}
	if res.TransferablePassengers != 0 {
		t.Errorf("transferable = %d, want 0", res.TransferablePassengers)
	}
}

func TestPlannerTargetTieBreak(t *testing.T) {
	cfg := config.DefaultOptimizer()
	matcher := NewStopMatcher(cfg.StopAliasGroups)

	source := loadFor(testRoute("route-a", "Route A", 60), 59, passenger("s1", "Main Stop"))
	big := loadFor(testRoute("route-c", "Route C", 60, "Main"), 8)
	small := loadFor(testRoute("route-b", "Route B", 60, "Main"), 3)

	loads := []*domain.RouteLoad{source, big, small}
	res := PlanRouteTransfers(source, loads, seatsFromLoads(loads...), matcher, cfg)

	if got := res.Candidates[0].TargetRouteID; got != "route-c" {
		t.Fatalf("target = %q, want route-c (most remaining seats)", got)
	}

	// Equal seats: lexicographically smaller route ID wins.
	big.RemainingSeats = 3
	res = PlanRouteTransfers(source, loads, seatsFromLoads(loads...), matcher, cfg)
	if got := res.Candidates[0].TargetRouteID; got != "route-b" {
		t.Fatalf("target = %q, want route-b (tie broken by route ID)", got)
	}
}

func TestPlannerSeatExhaustion(t *testing.T) {
	cfg := config.DefaultOptimizer()
	matcher := NewStopMatcher(cfg.StopAliasGroups)

	source := loadFor(
		testRoute("route-a", "Route A", 60),
		58,
		passenger("s1", "Main Stop"),
		passenger("s2", "Main Gate"),
	)
	target := loadFor(testRoute("route-b", "Route B", 60, "Main"), 1)

	loads := []*domain.RouteLoad{source, target}
	res := PlanRouteTransfers(source, loads, seatsFromLoads(loads...), matcher, cfg)

	if !res.Candidates[0].Feasible {
		t.Fatal("first passenger should take the last seat")
	}
	if res.Candidates[1].Feasible {
		t.Fatal("second passenger must be infeasible once seats are exhausted")
	}
	if res.TransferType != domain.TransferPartial {
		t.Fatalf("transfer type = %q, want partial_transfer", res.TransferType)
	}
}
