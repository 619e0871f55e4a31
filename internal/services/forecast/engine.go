package forecast

import (
	"context"

	"CashCast/internal/domain/models"
	domsvc "CashCast/internal/domain/service"
	"CashCast/pkg/util"
)

// MinHistory is the smallest number of dated rows a model can be fit on.
const MinHistory = 2

// MaxHorizon bounds the forecast horizon in months.
const MaxHorizon = 12

// Engine wraps a forecasting capability and enforces the pipeline's
// invariants regardless of which model backend produced the points.
type Engine struct {
	forecaster domsvc.Forecaster
}

// NewEngine creates a forecast engine over the given capability.
func NewEngine(f domsvc.Forecaster) *Engine {
	return &Engine{forecaster: f}
}

// Forecast fits on the historical net-cash series and predicts `horizon`
// contiguous months strictly following the last historical month. Purely
// functional: no state survives the call.
func (e *Engine) Forecast(ctx context.Context, history []models.FinancialRecord, horizon int) ([]models.ForecastPoint, error) {
	if horizon < 1 || horizon > MaxHorizon {
		return nil, models.NewValidationError("horizon must be between 1 and %d months, got %d", MaxHorizon, horizon)
	}

	series := make([]models.CashPoint, 0, len(history))
	for _, rec := range history {
		if !rec.HasMonth() {
			continue
		}
		series = append(series, models.CashPoint{Month: rec.Month, NetCash: rec.NetCash})
	}
	if len(series) < MinHistory {
		return nil, models.NewForecastError(
			"insufficient history: need at least %d dated rows, got %d", MinHistory, len(series))
	}

	model, err := e.forecaster.Fit(ctx, series)
	if err != nil {
		return nil, &models.ForecastError{Msg: "model fit failed", Err: err}
	}

	points, err := model.Predict(ctx, horizon)
	if err != nil {
		return nil, &models.ForecastError{Msg: "model predict failed", Err: err}
	}
	if len(points) != horizon {
		return nil, models.NewForecastError(
			"model returned %d points, expected %d", len(points), horizon)
	}

	// Months are stamped by the engine so backends need not agree on
	// day-of-month conventions; bounds are clamped to keep
	// lower <= predicted <= upper.
	month := series[len(series)-1].Month
	for i := range points {
		month = util.NextMonth(month)
		points[i].Month = month
		if points[i].Lower > points[i].Predicted {
			points[i].Lower = points[i].Predicted
		}
		if points[i].Upper < points[i].Predicted {
			points[i].Upper = points[i].Predicted
		}
	}

	return points, nil
}
