package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	forecastsTotal *prometheus.CounterVec
	riskMonths     *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		forecastsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashcast_forecasts_total",
				Help: "Total number of forecast requests by outcome",
			},
			[]string{"status"},
		),
		riskMonths: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashcast_risk_months_total",
				Help: "Total forecasted months by risk tier",
			},
			[]string{"tier"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashcast_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cashcast_operation_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordForecast records a completed forecast request by outcome.
func (r *Recorder) RecordForecast(status string) {
	r.forecastsTotal.WithLabelValues(status).Inc()
}

// RecordRiskMonth records one classified forecast month.
func (r *Recorder) RecordRiskMonth(tier string) {
	r.riskMonths.WithLabelValues(tier).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records pipeline stage latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
