package forecast

import (
	"context"
	"fmt"
	"math"
	"time"

	"CashCast/internal/domain/models"
	domsvc "CashCast/internal/domain/service"
	"CashCast/pkg/util"
)

// LinearForecaster is the in-process model backend: ordinary least squares
// on the net-cash series with a normal-theory prediction interval at the
// configured central width.
type LinearForecaster struct {
	intervalWidth float64
}

// NewLinearForecaster creates a linear trend forecaster. width is the
// central interval width in (0, 1), e.g. 0.8 for an 80% interval.
func NewLinearForecaster(width float64) *LinearForecaster {
	return &LinearForecaster{intervalWidth: width}
}

func (f *LinearForecaster) Fit(_ context.Context, series []models.CashPoint) (domsvc.Model, error) {
	n := len(series)
	if n < MinHistory {
		return nil, fmt.Errorf("series too short: %d", n)
	}

	// OLS on x = 0..n-1 against y = net cash.
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range series {
		x := float64(i)
		sumX += x
		sumY += p.NetCash
		sumXY += x * p.NetCash
		sumXX += x * x
	}
	nf := float64(n)
	meanX := sumX / nf
	sxx := sumXX - nf*meanX*meanX
	if sxx == 0 {
		return nil, fmt.Errorf("degenerate series: no x variance")
	}
	slope := (sumXY - nf*meanX*(sumY/nf)) / sxx
	intercept := sumY/nf - slope*meanX

	// Residual standard error with n-2 degrees of freedom; zero when the
	// fit is exact or the sample has no spare degrees of freedom.
	var rss float64
	for i, p := range series {
		resid := p.NetCash - (intercept + slope*float64(i))
		rss += resid * resid
	}
	var stderr float64
	if n > 2 {
		stderr = math.Sqrt(rss / float64(n-2))
	}

	z := normalQuantile((1 + f.intervalWidth) / 2)

	return &linearModel{
		lastMonth: series[n-1].Month,
		n:         n,
		meanX:     meanX,
		sxx:       sxx,
		slope:     slope,
		intercept: intercept,
		stderr:    stderr,
		z:         z,
	}, nil
}

type linearModel struct {
	lastMonth time.Time
	n         int
	meanX     float64
	sxx       float64
	slope     float64
	intercept float64
	stderr    float64
	z         float64
}

func (m *linearModel) Predict(_ context.Context, horizon int) ([]models.ForecastPoint, error) {
	if horizon < 1 {
		return nil, fmt.Errorf("horizon must be positive, got %d", horizon)
	}

	points := make([]models.ForecastPoint, 0, horizon)
	month := m.lastMonth
	for h := 1; h <= horizon; h++ {
		month = util.NextMonth(month)
		x := float64(m.n - 1 + h)
		pred := m.intercept + m.slope*x

		// Prediction-interval margin grows with distance from the
		// sample mean.
		margin := m.z * m.stderr * math.Sqrt(1+1/float64(m.n)+(x-m.meanX)*(x-m.meanX)/m.sxx)

		points = append(points, models.ForecastPoint{
			Month:     month,
			Predicted: pred,
			Lower:     pred - margin,
			Upper:     pred + margin,
		})
	}
	return points, nil
}

// normalQuantile returns the standard normal quantile for p in (0, 1).
func normalQuantile(p float64) float64 {
	return math.Sqrt2 * math.Erfinv(2*p-1)
}
