package forecast

import (
	"context"
	"fmt"
	"strings"
	"time"

	"CashCast/internal/domain/models"
	domsvc "CashCast/internal/domain/service"
	xhttp "CashCast/pkg/http"
)

// HTTPForecaster delegates model fitting to an external model service
// speaking a small JSON contract. It lets the statistical backend be swapped
// (or scaled) independently of this process.
type HTTPForecaster struct {
	baseURL       string
	client        *xhttp.Client
	intervalWidth float64
}

// NewHTTPForecaster creates a forecaster backed by the model service at
// baseURL.
func NewHTTPForecaster(baseURL string, width float64, timeout time.Duration) *HTTPForecaster {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPForecaster{
		baseURL:       strings.TrimRight(baseURL, "/"),
		client:        xhttp.NewClient(xhttp.WithTimeout(timeout)),
		intervalWidth: width,
	}
}

func (f *HTTPForecaster) Fit(_ context.Context, series []models.CashPoint) (domsvc.Model, error) {
	if len(series) < MinHistory {
		return nil, fmt.Errorf("series too short: %d", len(series))
	}
	// Fitting happens remotely per prediction call; the model just carries
	// the series.
	return &httpModel{f: f, series: series}, nil
}

type httpModel struct {
	f      *HTTPForecaster
	series []models.CashPoint
}

type seriesPoint struct {
	Month   string  `json:"month"`
	NetCash float64 `json:"net_cash"`
}

type forecastRequest struct {
	Series        []seriesPoint `json:"series"`
	Horizon       int           `json:"horizon"`
	IntervalWidth float64       `json:"interval_width"`
}

type forecastResponse struct {
	Points []struct {
		Month     string  `json:"month"`
		Predicted float64 `json:"predicted"`
		Lower     float64 `json:"lower"`
		Upper     float64 `json:"upper"`
	} `json:"points"`
}

func (m *httpModel) Predict(ctx context.Context, horizon int) ([]models.ForecastPoint, error) {
	req := forecastRequest{
		Series:        make([]seriesPoint, 0, len(m.series)),
		Horizon:       horizon,
		IntervalWidth: m.f.intervalWidth,
	}
	for _, p := range m.series {
		req.Series = append(req.Series, seriesPoint{
			Month:   p.Month.Format(models.MonthLayout),
			NetCash: p.NetCash,
		})
	}

	var resp forecastResponse
	err := m.f.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    m.f.baseURL + "/forecast",
		Body:   req,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("model service: %w", err)
	}

	points := make([]models.ForecastPoint, 0, len(resp.Points))
	for _, p := range resp.Points {
		month, _ := time.Parse(models.MonthLayout, p.Month)
		points = append(points, models.ForecastPoint{
			Month:     month,
			Predicted: p.Predicted,
			Lower:     p.Lower,
			Upper:     p.Upper,
		})
	}
	return points, nil
}
