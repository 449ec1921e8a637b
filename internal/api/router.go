package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"transport-optimizer-service/internal/api/handlers"
	"transport-optimizer-service/internal/config"
	"transport-optimizer-service/internal/ports"
	"transport-optimizer-service/internal/services"
)

// Deps are the adapter-backed dependencies the API composes over.
// Handlers stay unaware of concrete store/lock/notifier implementations.
type Deps struct {
	DB        handlers.Pinger
	Routes    ports.RouteRepository
	Bookings  ports.BookingRepository
	Transfers ports.TransferLog
	Runs      ports.OptimizationRepository
	Notifier  ports.Notifier
	Locker    ports.RunLocker
	Cfg       config.Optimizer
}

// NewRouter wires handlers with their dependencies and returns an http.Handler.
func NewRouter(deps Deps) http.Handler {
	matcher := services.NewStopMatcher(deps.Cfg.StopAliasGroups)
	validate := validator.New()

	optimizer := &services.Optimizer{
		Routes:    deps.Routes,
		Bookings:  deps.Bookings,
		Transfers: deps.Transfers,
		Runs:      deps.Runs,
		Locker:    deps.Locker,
		Matcher:   matcher,
		Cfg:       deps.Cfg,
	}
	executor := &services.Executor{
		Routes:    deps.Routes,
		Bookings:  deps.Bookings,
		Transfers: deps.Transfers,
		Notifier:  deps.Notifier,
		Locker:    deps.Locker,
		Cfg:       deps.Cfg,
	}

	healthHandler := &handlers.HealthHandler{DB: deps.DB}
	loadsHandler := &handlers.LoadsHandler{Routes: deps.Routes, Bookings: deps.Bookings, Cfg: deps.Cfg}
	optimizeHandler := &handlers.OptimizeHandler{Optimizer: optimizer, Validate: validate}
	transferHandler := &handlers.TransferHandler{Executor: executor, Log: deps.Transfers, Validate: validate}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", healthHandler.Check)
	r.Get("/routes/loads", loadsHandler.List)
	r.Post("/optimize", optimizeHandler.Run)
	r.Post("/optimize/rerun", optimizeHandler.Rerun)
	r.Post("/transfers/execute", transferHandler.Execute)
	r.Get("/transfers", transferHandler.List)

	return r
}
