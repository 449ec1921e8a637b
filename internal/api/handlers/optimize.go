package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"transport-optimizer-service/internal/api/dto"
	"transport-optimizer-service/internal/domain"
	"transport-optimizer-service/internal/ports"
	"transport-optimizer-service/internal/services"
)

// OptimizeHandler exposes plan computation to the admin caller.
type OptimizeHandler struct {
	Optimizer *services.Optimizer
	Validate  *validator.Validate
}

// Run computes an optimization for a date, or reports the transfers that
// were already executed for it.
func (h *OptimizeHandler) Run(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.Optimizer.Run)
}

// Rerun explicitly overrides the existing-transfer guard.
func (h *OptimizeHandler) Rerun(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.Optimizer.ReOptimize)
}

func (h *OptimizeHandler) handle(
	w http.ResponseWriter,
	r *http.Request,
	run func(ctx context.Context, date, adminID string) (*domain.OptimizationOutcome, error),
) {
	var req dto.OptimizeRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeError(w, r, http.StatusBadRequest, "date (YYYY-MM-DD) and admin_id are required")
		return
	}

	out, err := run(r.Context(), req.Date, req.AdminID)
	if err != nil {
		if errors.Is(err, ports.ErrRunInProgress) {
			writeError(w, r, http.StatusConflict, ports.ErrRunInProgress.Error())
			return
		}
		log.Printf("optimize failed: date=%s err=%v", req.Date, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toOptimizeResponse(out))
}

func toOptimizeResponse(out *domain.OptimizationOutcome) dto.OptimizeResponse {
	var res dto.OptimizeResponse

	for _, g := range out.ExistingTransfers {
		group := dto.RouteTransferGroupResponse{
			RouteID:   g.RouteID,
			RouteName: g.RouteName,
			Transfers: make([]dto.TransferRecordResponse, 0, len(g.Transfers)),
		}
		for _, rec := range g.Transfers {
			group.Transfers = append(group.Transfers, toTransferRecordResponse(rec))
		}
		res.ExistingTransfers = append(res.ExistingTransfers, group)
	}

	if out.Plan != nil {
		res.Plan = toPlanResponse(out.Plan)
	}
	return res
}

func toPlanResponse(plan *domain.OptimizationPlan) *dto.PlanResponse {
	res := &dto.PlanResponse{
		OptimizationID: plan.OptimizationID,
		Date:           plan.Date,
		Results:        make([]dto.RouteResultResponse, 0, len(plan.Results)),
		Summary: dto.RunSummaryResponse{
			RunID:              plan.Summary.RunID,
			Date:               plan.Summary.Date,
			LowLoadRoutes:      plan.Summary.LowLoadRoutes,
			NoBookingRoutes:    plan.Summary.NoBookingRoutes,
			AffectedPassengers: plan.Summary.AffectedPassengers,
			FullTransfers:      plan.Summary.FullTransfers,
			PartialTransfers:   plan.Summary.PartialTransfers,
			NoTransfers:        plan.Summary.NoTransfers,
			EstimatedSavings:   plan.Summary.EstimatedSavings,
		},
	}

	for _, rr := range plan.Results {
		out := dto.RouteResultResponse{
			RouteID:                rr.RouteID,
			RouteName:              rr.RouteName,
			PassengerCount:         rr.PassengerCount,
			TransferType:           string(rr.TransferType),
			TransferablePassengers: rr.TransferablePassengers,
			EstimatedSavings:       rr.EstimatedSavings,
			CanCancelBus:           rr.CanCancelBus,
			Candidates:             make([]dto.CandidateResponse, 0, len(rr.Candidates)),
		}
		for _, c := range rr.Candidates {
			out.Candidates = append(out.Candidates, dto.CandidateResponse{
				StudentID:       c.Passenger.Student.StudentID,
				StudentName:     c.Passenger.Student.Name,
				BoardingStop:    c.Passenger.BoardingStop,
				Feasible:        c.Feasible,
				TargetRouteID:   c.TargetRouteID,
				TargetRouteName: c.TargetRouteName,
				Reason:          c.Reason,
			})
		}
		res.Results = append(res.Results, out)
	}

	return res
}

func toTransferRecordResponse(rec *domain.TransferRecord) dto.TransferRecordResponse {
	return dto.TransferRecordResponse{
		RecordID:     rec.RecordID,
		StudentID:    rec.StudentID,
		StudentName:  rec.StudentName,
		FromRouteID:  rec.FromRouteID,
		ToRouteID:    rec.ToRouteID,
		BoardingStop: rec.BoardingStop,
		Status:       string(rec.Status),
		Reason:       rec.Reason,
		AdminID:      rec.AdminID,
		ExecutedAt:   rec.ExecutedAt,
	}
}
