package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CashCast/internal/domain/models"
	"CashCast/internal/services/forecast"
	"CashCast/internal/services/report"
	"CashCast/internal/services/risk"
	"CashCast/pkg/cache"
)

var sampleCSV = []byte(
	"Month,Revenue,Expenses\n" +
		"2024-01-01,5000,3000\n" +
		"2024-02-01,5200,3100\n" +
		"2024-03-01,5400,3200\n" +
		"2024-04-01,5600,3300\n")

type fakeMetrics struct {
	forecasts map[string]int
	risks     map[string]int
	errs      map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		forecasts: map[string]int{},
		risks:     map[string]int{},
		errs:      map[string]int{},
	}
}

func (m *fakeMetrics) RecordForecast(status string)      { m.forecasts[status]++ }
func (m *fakeMetrics) RecordRiskMonth(tier string)       { m.risks[tier]++ }
func (m *fakeMetrics) RecordError(kind string)           { m.errs[kind]++ }
func (m *fakeMetrics) RecordLatency(string, float64)     {}

type fakeSummarizer struct {
	text string
	err  error
}

func (s *fakeSummarizer) Summarize(context.Context, string, int) (string, error) {
	return s.text, s.err
}

type fakeArchive struct {
	saves int
	err   error
}

func (a *fakeArchive) Save(context.Context, string, int, []models.ClassifiedPoint) error {
	a.saves++
	return a.err
}

type fakePublisher struct {
	events []models.ReportEvent
}

func (p *fakePublisher) Publish(_ context.Context, e models.ReportEvent) error {
	p.events = append(p.events, e)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func newPipeline(t *testing.T, deps Deps) *ForecastPipeline {
	t.Helper()
	if deps.Engine == nil {
		deps.Engine = forecast.NewEngine(forecast.NewLinearForecaster(0.8))
	}
	if deps.Classifier == nil {
		deps.Classifier = risk.NewClassifier("₹")
	}
	if deps.Assembler == nil {
		deps.Assembler = report.NewAssembler()
	}
	if deps.Metrics == nil {
		deps.Metrics = newFakeMetrics()
	}
	deps.IntervalWidth = 0.8
	return NewForecastPipeline(deps)
}

func TestRunProducesReport(t *testing.T) {
	metrics := newFakeMetrics()
	p := newPipeline(t, Deps{Metrics: metrics})

	out, err := p.Run(context.Background(), sampleCSV, 3)
	require.NoError(t, err)

	assert.Equal(t, "3-month forecast generated successfully.", out.Message)
	require.Len(t, out.Forecast, 3)
	assert.Equal(t, "2024-05-01", out.Forecast[0].Month)
	assert.Equal(t, 1, metrics.forecasts["ok"])

	total := 0
	for _, n := range metrics.risks {
		total += n
	}
	assert.Equal(t, 3, total)
}

func TestRunWithoutSummarizerUsesPlaceholder(t *testing.T) {
	p := newPipeline(t, Deps{})

	out, err := p.Run(context.Background(), sampleCSV, 2)
	require.NoError(t, err)
	require.NotNil(t, out.AISummary)
	assert.Equal(t, "⚠️ Missing OpenAI API key.", *out.AISummary)
}

func TestRunSummarizerFailureDegrades(t *testing.T) {
	metrics := newFakeMetrics()
	p := newPipeline(t, Deps{
		Metrics:    metrics,
		Summarizer: &fakeSummarizer{err: &models.SummaryUnavailableError{Err: errors.New("timeout")}},
	})

	out, err := p.Run(context.Background(), sampleCSV, 2)
	require.NoError(t, err)
	require.NotNil(t, out.AISummary)
	assert.Equal(t, "⚠️ AI summary could not be generated.", *out.AISummary)
	assert.Equal(t, 1, metrics.errs["summary"])
}

func TestRunAttachesSummary(t *testing.T) {
	p := newPipeline(t, Deps{Summarizer: &fakeSummarizer{text: "steady growth ahead"}})

	out, err := p.Run(context.Background(), sampleCSV, 2)
	require.NoError(t, err)
	require.NotNil(t, out.AISummary)
	assert.Equal(t, "steady growth ahead", *out.AISummary)
}

func TestRunPropagatesValidationErrors(t *testing.T) {
	metrics := newFakeMetrics()
	p := newPipeline(t, Deps{Metrics: metrics})

	_, err := p.Run(context.Background(), []byte("Revenue\n100\n"), 3)
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
	assert.Equal(t, 1, metrics.errs["validation"])
}

func TestRunCachesReports(t *testing.T) {
	metrics := newFakeMetrics()
	mem := cache.NewMemoryCache()
	defer mem.Close()
	p := newPipeline(t, Deps{Metrics: metrics, Cache: mem, CacheTTL: time.Minute})

	first, err := p.Run(context.Background(), sampleCSV, 3)
	require.NoError(t, err)

	second, err := p.Run(context.Background(), sampleCSV, 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, metrics.forecasts["ok"])
	assert.Equal(t, 1, metrics.forecasts["cache_hit"])

	// A different horizon is a different key.
	_, err = p.Run(context.Background(), sampleCSV, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, metrics.forecasts["ok"])
}

func TestRunFansOutToArchiveAndPublisher(t *testing.T) {
	archive := &fakeArchive{}
	publisher := &fakePublisher{}
	p := newPipeline(t, Deps{Archive: archive, Publisher: publisher})

	_, err := p.Run(context.Background(), sampleCSV, 3)
	require.NoError(t, err)

	assert.Equal(t, 1, archive.saves)
	require.Len(t, publisher.events, 1)

	event := publisher.events[0]
	assert.Equal(t, 3, event.Horizon)
	assert.Len(t, event.Months, 3)
	assert.NotEmpty(t, event.ID)
	assert.NotEmpty(t, event.WorstRisk)
}

func TestRunArchiveFailureDoesNotFailRequest(t *testing.T) {
	metrics := newFakeMetrics()
	archive := &fakeArchive{err: errors.New("clickhouse down")}
	p := newPipeline(t, Deps{Metrics: metrics, Archive: archive})

	_, err := p.Run(context.Background(), sampleCSV, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, metrics.errs["archive"])
}
