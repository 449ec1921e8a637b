package dto

import "time"

type OptimizeRequest struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	AdminID string `json:"admin_id" validate:"required"`
}

type CandidateResponse struct {
	StudentID       string `json:"student_id"`
	StudentName     string `json:"student_name"`
	BoardingStop    string `json:"boarding_stop"`
	Feasible        bool   `json:"feasible"`
	TargetRouteID   string `json:"target_route_id,omitempty"`
	TargetRouteName string `json:"target_route_name,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

type RouteResultResponse struct {
	RouteID                string              `json:"route_id"`
	RouteName              string              `json:"route_name"`
	PassengerCount         int                 `json:"passenger_count"`
	TransferType           string              `json:"transfer_type"`
	TransferablePassengers int                 `json:"transferable_passengers"`
	EstimatedSavings       int                 `json:"estimated_savings"`
	CanCancelBus           bool                `json:"can_cancel_bus"`
	Candidates             []CandidateResponse `json:"candidates,omitempty"`
}

type RunSummaryResponse struct {
	RunID              string `json:"run_id"`
	Date               string `json:"date"`
	LowLoadRoutes      int    `json:"low_load_routes"`
	NoBookingRoutes    int    `json:"no_booking_routes"`
	AffectedPassengers int    `json:"affected_passengers"`
	FullTransfers      int    `json:"full_transfers"`
	PartialTransfers   int    `json:"partial_transfers"`
	NoTransfers        int    `json:"no_transfers"`
	EstimatedSavings   int    `json:"estimated_savings"`
}

type PlanResponse struct {
	OptimizationID string                `json:"optimization_id"`
	Date           string                `json:"date"`
	Results        []RouteResultResponse `json:"results"`
	Summary        RunSummaryResponse    `json:"summary"`
}

type TransferRecordResponse struct {
	RecordID     string    `json:"record_id"`
	StudentID    string    `json:"student_id"`
	StudentName  string    `json:"student_name"`
	FromRouteID  string    `json:"from_route_id"`
	ToRouteID    string    `json:"to_route_id"`
	BoardingStop string    `json:"boarding_stop"`
	Status       string    `json:"status"`
	Reason       string    `json:"reason,omitempty"`
	AdminID      string    `json:"admin_id"`
	ExecutedAt   time.Time `json:"executed_at"`
}

type RouteTransferGroupResponse struct {
	RouteID   string                   `json:"route_id"`
	RouteName string                   `json:"route_name,omitempty"`
	Transfers []TransferRecordResponse `json:"transfers"`
}

// OptimizeResponse carries exactly one of ExistingTransfers or Plan.
type OptimizeResponse struct {
	ExistingTransfers []RouteTransferGroupResponse `json:"existing_transfers,omitempty"`
	Plan              *PlanResponse                `json:"plan,omitempty"`
}
