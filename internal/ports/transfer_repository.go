package ports

import (
	"context"
	"transport-optimizer-service/internal/domain"
)

// Port: boundary for the append-only transfer audit log.
type TransferLog interface {
	// Append one executed-transfer record. Records are never updated.
	Append(ctx context.Context, rec *domain.TransferRecord) error

	// Return all transfer records for a travel date, oldest first.
	ListByDate(ctx context.Context, date string) ([]*domain.TransferRecord, error)
}

// Port: boundary for persisting per-date optimization run summaries.
type OptimizationRepository interface {
	// Upsert the summary row for the run's date.
	SaveRun(ctx context.Context, run *domain.OptimizationRun) error
}
