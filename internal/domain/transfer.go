package domain

import "time"

// TransferType classifies how much of a route's load can be moved elsewhere.
type TransferType string

const (
	TransferFull       TransferType = "full_transfer"
	TransferPartial    TransferType = "partial_transfer"
	TransferNone       TransferType = "no_transfer"
	TransferNoBookings TransferType = "no_bookings"
)

// ReasonNoAlternative is the infeasibility reason when no candidate route
// serves an equivalent stop with seats left.
const ReasonNoAlternative = "No alternative route covers this boarding stop with available capacity"

// TransferCandidate pairs one passenger with at most one feasible target
// route. Transient: it exists only inside an optimization plan.
type TransferCandidate struct {
	Passenger       Passenger
	Feasible        bool
	TargetRouteID   string
	TargetRouteName string
	Reason          string
}

// OptimizationResult is the planner's verdict for a single source route.
type OptimizationResult struct {
	RouteID                string
	RouteName              string
	PassengerCount         int
	TransferType           TransferType
	Candidates             []TransferCandidate
	TransferablePassengers int
	EstimatedSavings       int
	CanCancelBus           bool
}

// OptimizationPlan is the full per-date breakdown returned to the admin.
type OptimizationPlan struct {
	OptimizationID string
	Date           string
	Results        []OptimizationResult
	Summary        OptimizationRun
}

// OptimizationRun is the persisted per-date summary row.
type OptimizationRun struct {
	RunID              string
	Date               string
	AdminID            string
	CreatedAt          time.Time
	LowLoadRoutes      int
	NoBookingRoutes    int
	AffectedPassengers int
	FullTransfers      int
	PartialTransfers   int
	NoTransfers        int
	EstimatedSavings   int
}

// TransferStatus of one executed passenger move.
type TransferStatus string

const (
	TransferCompleted TransferStatus = "completed"
	TransferFailed    TransferStatus = "failed"
)

// TransferRecord is one row of the append-only transfer audit log.
// Records are never mutated after creation.
type TransferRecord struct {
	RecordID     string
	Date         string
	StudentID    string
	StudentName  string
	FromRouteID  string
	ToRouteID    string
	BoardingStop string
	Status       TransferStatus
	Reason       string
	AdminID      string
	ExecutedAt   time.Time
}

// RouteTransferGroup groups prior audit records by source route, used when
// the re-entrancy guard reports an already-optimized date.
type RouteTransferGroup struct {
	RouteID   string
	RouteName string
	Transfers []*TransferRecord
}

// OptimizationOutcome is what a run returns: either the prior transfers for
// the date (guard fired) or a freshly computed plan, never both.
type OptimizationOutcome struct {
	ExistingTransfers []RouteTransferGroup
	Plan              *OptimizationPlan
}

// RouteExecutionDetail summarizes execution for one source route group.
type RouteExecutionDetail struct {
	RouteID     string
	Attempted   int
	Succeeded   int
	Failed      int
	Cancellable bool
}

// ExecutionSummary aggregates a whole executeTransfers call. Partial success
// is reported as success-with-failure-counts, never as an error.
type ExecutionSummary struct {
	Date           string
	Attempted      int
	Succeeded      int
	Failed         int
	CancelledBuses []string
	Errors         []string
	RouteDetails   []RouteExecutionDetail
}
