package ports

import (
	"context"
	"transport-optimizer-service/internal/domain"
)

// Port: boundary for reading route and stop records.
type RouteRepository interface {
	// Return all active routes with their stops in sequence order.
	ListActiveRoutes(ctx context.Context) ([]*domain.Route, error)
}
