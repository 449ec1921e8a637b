package dto

type TransferItem struct {
	StudentID    string `json:"student_id" validate:"required"`
	StudentName  string `json:"student_name"`
	FromRouteID  string `json:"from_route_id" validate:"required"`
	ToRouteID    string `json:"to_route_id" validate:"required"`
	BoardingStop string `json:"boarding_stop"`
}

type ExecuteRequest struct {
	OptimizationID string         `json:"optimization_id" validate:"required"`
	Date           string         `json:"date" validate:"required,datetime=2006-01-02"`
	AdminID        string         `json:"admin_id" validate:"required"`
	Transfers      []TransferItem `json:"transfers" validate:"required,min=1,dive"`
}

type RouteExecutionDetailResponse struct {
	RouteID     string `json:"route_id"`
	Attempted   int    `json:"attempted"`
	Succeeded   int    `json:"succeeded"`
	Failed      int    `json:"failed"`
	Cancellable bool   `json:"cancellable"`
}

type ExecuteResponse struct {
	Date           string                         `json:"date"`
	Attempted      int                            `json:"attempted"`
	Succeeded      int                            `json:"succeeded"`
	Failed         int                            `json:"failed"`
	CancelledBuses []string                       `json:"cancelled_buses"`
	Errors         []string                       `json:"errors"`
	RouteDetails   []RouteExecutionDetailResponse `json:"route_details"`
}

type ListTransfersResponse struct {
	Date      string                   `json:"date"`
	Transfers []TransferRecordResponse `json:"transfers"`
}
