package repository

import (
	"context"

	"CashCast/internal/domain/models"
)

// Metrics records pipeline observability signals.
type Metrics interface {
	RecordForecast(status string)
	RecordRiskMonth(tier string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}

// ReportArchive persists generated forecast reports for audit and history.
// Implementations are best-effort collaborators; a failed Save must not
// fail the request.
type ReportArchive interface {
	Save(ctx context.Context, reportID string, horizon int, points []models.ClassifiedPoint) error
}

// ReportPublisher emits forecast.generated events for downstream consumers.
type ReportPublisher interface {
	Publish(ctx context.Context, event models.ReportEvent) error
	Close() error
}
