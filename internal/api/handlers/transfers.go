package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"transport-optimizer-service/internal/api/dto"
	"transport-optimizer-service/internal/domain"
	"transport-optimizer-service/internal/ports"
	"transport-optimizer-service/internal/services"
)

// TransferHandler executes approved plans and serves the audit log.
type TransferHandler struct {
	Executor *services.Executor
	Log      ports.TransferLog
	Validate *validator.Validate
}

// Execute applies an approved transfer list. Partial failure is reported as
// HTTP 200 with per-transfer failure counts and messages.
func (h *TransferHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req dto.ExecuteRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, "optimization_id, date (YYYY-MM-DD), admin_id, and a non-empty transfer list are required")
		return
	}

	transfers := make([]services.TransferRequest, 0, len(req.Transfers))
	for _, t := range req.Transfers {
		transfers = append(transfers, services.TransferRequest{
			StudentID:    t.StudentID,
			StudentName:  t.StudentName,
			FromRouteID:  t.FromRouteID,
			ToRouteID:    t.ToRouteID,
			BoardingStop: t.BoardingStop,
		})
	}

	sum, err := h.Executor.Execute(r.Context(), req.Date, req.AdminID, req.OptimizationID, transfers)
	if err != nil {
		if errors.Is(err, ports.ErrRunInProgress) {
			writeError(w, r, http.StatusConflict, ports.ErrRunInProgress.Error())
			return
		}
		log.Printf("execute transfers failed: date=%s err=%v", req.Date, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ExecuteResponse{
		Date:           sum.Date,
		Attempted:      sum.Attempted,
		Succeeded:      sum.Succeeded,
		Failed:         sum.Failed,
		CancelledBuses: sum.CancelledBuses,
		Errors:         sum.Errors,
		RouteDetails:   make([]dto.RouteExecutionDetailResponse, 0, len(sum.RouteDetails)),
	}
	if res.CancelledBuses == nil {
		res.CancelledBuses = []string{}
	}
	if res.Errors == nil {
		res.Errors = []string{}
	}
	for _, d := range sum.RouteDetails {
		res.RouteDetails = append(res.RouteDetails, dto.RouteExecutionDetailResponse{
			RouteID:     d.RouteID,
			Attempted:   d.Attempted,
			Succeeded:   d.Succeeded,
			Failed:      d.Failed,
			Cancellable: d.Cancellable,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// List returns the transfer audit log for a date.
func (h *TransferHandler) List(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if err := domain.ParseDate(date); err != nil {
		writeError(w, r, http.StatusBadRequest, "date query parameter (YYYY-MM-DD) is required")
		return
	}

	records, err := h.Log.ListByDate(r.Context(), date)
	if err != nil {
		log.Printf("list transfers failed: date=%s err=%v", date, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTransfersResponse{
		Date:      date,
		Transfers: make([]dto.TransferRecordResponse, 0, len(records)),
	}
	for _, rec := range records {
		res.Transfers = append(res.Transfers, toTransferRecordResponse(rec))
	}

	writeJSON(w, r, http.StatusOK, res)
}
