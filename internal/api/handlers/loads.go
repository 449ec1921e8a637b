package handlers

import (
	"log"
	"net/http"

	"transport-optimizer-service/internal/api/dto"
	"transport-optimizer-service/internal/config"
	"transport-optimizer-service/internal/domain"
	"transport-optimizer-service/internal/ports"
	"transport-optimizer-service/internal/services"
)

// LoadsHandler serves the Capacity Tracker view.
type LoadsHandler struct {
	Routes   ports.RouteRepository
	Bookings ports.BookingRepository
	Cfg      config.Optimizer
}

func (h *LoadsHandler) List(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if err := domain.ParseDate(date); err != nil {
		writeError(w, r, http.StatusBadRequest, "date query parameter (YYYY-MM-DD) is required")
		return
	}

	loads, err := services.LoadsForDate(r.Context(), date, h.Routes, h.Bookings, h.Cfg)
	if err != nil {
		log.Printf("route loads failed: date=%s err=%v", date, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRouteLoadsResponse{
		Date:  date,
		Loads: make([]dto.RouteLoadResponse, 0, len(loads)),
	}
	for _, l := range loads {
		res.Loads = append(res.Loads, dto.RouteLoadResponse{
			RouteID:        l.Route.RouteID,
			RouteNumber:    l.Route.Number,
			RouteName:      l.Route.Name,
			PassengerCount: l.PassengerCount(),
			Capacity:       l.Capacity,
			RemainingSeats: l.RemainingSeats,
			Category:       string(l.Category),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
