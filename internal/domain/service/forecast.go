package service

import (
	"context"

	"CashCast/internal/domain/models"
)

// Forecaster fits a time-series model on a net-cash history. The underlying
// statistical model is a black box behind this interface.
type Forecaster interface {
	Fit(ctx context.Context, series []models.CashPoint) (Model, error)
}

// Model predicts future months with confidence bounds at the interval width
// the Forecaster was configured with.
type Model interface {
	Predict(ctx context.Context, horizon int) ([]models.ForecastPoint, error)
}

// Summarizer produces a narrative summary from a tabular forecast context.
// Implementations run over a network boundary and must honor ctx deadlines.
type Summarizer interface {
	Summarize(ctx context.Context, table string, horizon int) (string, error)
}
