package forecast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CashCast/internal/domain/models"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func cashSeries(start time.Time, values ...float64) []models.CashPoint {
	series := make([]models.CashPoint, 0, len(values))
	cur := start
	for _, v := range values {
		series = append(series, models.CashPoint{Month: cur, NetCash: v})
		cur = cur.AddDate(0, 1, 0)
	}
	return series
}

func TestLinearForecasterFlatSeries(t *testing.T) {
	f := NewLinearForecaster(0.8)
	series := cashSeries(month(2024, time.January), 2000, 2000, 2000, 2000)

	model, err := f.Fit(context.Background(), series)
	require.NoError(t, err)

	points, err := model.Predict(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, points, 3)

	for _, p := range points {
		assert.InDelta(t, 2000, p.Predicted, 1e-9)
		// Exact fit means zero residual error and degenerate bounds.
		assert.InDelta(t, p.Predicted, p.Lower, 1e-9)
		assert.InDelta(t, p.Predicted, p.Upper, 1e-9)
	}
}

func TestLinearForecasterTrend(t *testing.T) {
	f := NewLinearForecaster(0.8)
	series := cashSeries(month(2024, time.January), 100, 200, 300, 400)

	model, err := f.Fit(context.Background(), series)
	require.NoError(t, err)

	points, err := model.Predict(context.Background(), 2)
	require.NoError(t, err)

	assert.InDelta(t, 500, points[0].Predicted, 1e-9)
	assert.InDelta(t, 600, points[1].Predicted, 1e-9)
}

func TestLinearForecasterNoisyBoundsWiden(t *testing.T) {
	f := NewLinearForecaster(0.8)
	series := cashSeries(month(2024, time.January), 100, 250, 180, 330, 260, 410)

	model, err := f.Fit(context.Background(), series)
	require.NoError(t, err)

	points, err := model.Predict(context.Background(), 4)
	require.NoError(t, err)

	var prevWidth float64
	for i, p := range points {
		width := p.Upper - p.Lower
		assert.Greater(t, width, 0.0)
		assert.Less(t, p.Lower, p.Predicted)
		assert.Greater(t, p.Upper, p.Predicted)
		if i > 0 {
			assert.Greater(t, width, prevWidth, "interval should widen with horizon")
		}
		prevWidth = width
	}
}

func TestLinearForecasterWiderIntervalMeansWiderBounds(t *testing.T) {
	series := cashSeries(month(2024, time.January), 100, 250, 180, 330, 260)

	narrow, err := NewLinearForecaster(0.5).Fit(context.Background(), series)
	require.NoError(t, err)
	wide, err := NewLinearForecaster(0.95).Fit(context.Background(), series)
	require.NoError(t, err)

	np, err := narrow.Predict(context.Background(), 1)
	require.NoError(t, err)
	wp, err := wide.Predict(context.Background(), 1)
	require.NoError(t, err)

	assert.Greater(t, wp[0].Upper-wp[0].Lower, np[0].Upper-np[0].Lower)
}

func TestLinearForecasterTwoPointsDegenerate(t *testing.T) {
	f := NewLinearForecaster(0.8)
	series := cashSeries(month(2024, time.January), 100, 300)

	model, err := f.Fit(context.Background(), series)
	require.NoError(t, err)

	points, err := model.Predict(context.Background(), 1)
	require.NoError(t, err)

	// Two points leave no degrees of freedom, so the interval collapses.
	assert.InDelta(t, 500, points[0].Predicted, 1e-9)
	assert.InDelta(t, points[0].Predicted, points[0].Lower, 1e-9)
	assert.InDelta(t, points[0].Predicted, points[0].Upper, 1e-9)
}

func TestLinearForecasterRejectsShortSeries(t *testing.T) {
	f := NewLinearForecaster(0.8)
	_, err := f.Fit(context.Background(), cashSeries(month(2024, time.January), 100))
	assert.Error(t, err)
}
