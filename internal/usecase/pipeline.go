package usecase

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"CashCast/internal/dataset"
	"CashCast/internal/domain/models"
	"CashCast/internal/domain/repository"
	domsvc "CashCast/internal/domain/service"
	"CashCast/internal/services/forecast"
	"CashCast/internal/services/report"
	"CashCast/internal/services/risk"
	"CashCast/pkg/cache"
	"CashCast/pkg/logger"
)

// Placeholders attached to the report when no narrative can be produced.
const (
	summaryFailedPlaceholder  = "⚠️ AI summary could not be generated."
	summaryMissingKeyMessage  = "⚠️ Missing OpenAI API key."
	defaultSummaryTimeout     = 20 * time.Second
	defaultCacheTTL           = 15 * time.Minute
)

// Deps bundles the pipeline's collaborators. Summarizer, Cache, Archive and
// Publisher are optional; a nil value disables the concern.
type Deps struct {
	Engine         *forecast.Engine
	Classifier     *risk.Classifier
	Assembler      *report.Assembler
	Summarizer     domsvc.Summarizer
	Cache          cache.Service
	CacheTTL       time.Duration
	Archive        repository.ReportArchive
	Publisher      repository.ReportPublisher
	Metrics        repository.Metrics
	IntervalWidth  float64
	SummaryTimeout time.Duration
}

// ForecastPipeline runs the full dataset-to-report flow: normalize, forecast,
// classify, summarize, assemble.
type ForecastPipeline struct {
	deps Deps
	log  *logger.Logger
}

// NewForecastPipeline creates the pipeline from its dependency bundle.
func NewForecastPipeline(deps Deps) *ForecastPipeline {
	if deps.SummaryTimeout <= 0 {
		deps.SummaryTimeout = defaultSummaryTimeout
	}
	if deps.CacheTTL <= 0 {
		deps.CacheTTL = defaultCacheTTL
	}
	return &ForecastPipeline{deps: deps}
}

// SetLogger attaches the process logger. The pipeline stays usable without
// one; log calls are skipped.
func (p *ForecastPipeline) SetLogger(l *logger.Logger) { p.log = l }

// Run generates a forecast report for the raw CSV dataset over the given
// horizon in months.
func (p *ForecastPipeline) Run(ctx context.Context, raw []byte, horizon int) (models.ForecastReport, error) {
	key := p.cacheKey(raw, horizon)

	if p.deps.Cache != nil {
		var cached models.ForecastReport
		if err := p.deps.Cache.Get(ctx, key, &cached); err == nil {
			p.deps.Metrics.RecordForecast("cache_hit")
			p.logInfo("report served from cache", logger.String("key", key))
			return cached, nil
		}
	}

	start := time.Now()
	ds, err := dataset.Normalize(bytes.NewReader(raw))
	if err != nil {
		p.deps.Metrics.RecordError("validation")
		return models.ForecastReport{}, err
	}
	p.deps.Metrics.RecordLatency("normalize", time.Since(start).Seconds())

	start = time.Now()
	points, err := p.deps.Engine.Forecast(ctx, ds.Records, horizon)
	if err != nil {
		if models.IsValidation(err) {
			p.deps.Metrics.RecordError("validation")
		} else {
			p.deps.Metrics.RecordError("forecast")
		}
		return models.ForecastReport{}, err
	}
	p.deps.Metrics.RecordLatency("forecast", time.Since(start).Seconds())

	classified := p.deps.Classifier.Classify(points, ds.AvgExpenses)
	for _, cp := range classified {
		p.deps.Metrics.RecordRiskMonth(cp.Risk.String())
	}

	summary := p.summarize(ctx, classified, horizon)
	result := p.deps.Assembler.Assemble(classified, horizon, &summary)

	if p.deps.Cache != nil {
		if err := p.deps.Cache.Set(ctx, key, result, p.deps.CacheTTL); err != nil {
			p.logWarn("report cache write failed", logger.Error(err))
		}
	}

	p.fanOut(ctx, key, horizon, classified)

	p.deps.Metrics.RecordForecast("ok")
	p.logInfo("forecast report generated",
		logger.Int("horizon", horizon),
		logger.String("dataset", ds.Describe()))
	return result, nil
}

// summarize produces the narrative, degrading to a placeholder on any
// failure. Summary problems never fail the report.
func (p *ForecastPipeline) summarize(ctx context.Context, classified []models.ClassifiedPoint, horizon int) string {
	if p.deps.Summarizer == nil {
		return summaryMissingKeyMessage
	}

	sctx, cancel := context.WithTimeout(ctx, p.deps.SummaryTimeout)
	defer cancel()

	start := time.Now()
	table := p.deps.Assembler.BuildTable(classified)
	text, err := p.deps.Summarizer.Summarize(sctx, table, horizon)
	p.deps.Metrics.RecordLatency("summarize", time.Since(start).Seconds())
	if err != nil {
		p.deps.Metrics.RecordError("summary")
		p.logWarn("narrative summary failed", logger.Error(err))
		return summaryFailedPlaceholder
	}
	return text
}

// fanOut runs the best-effort side channels: archive persistence and the
// generated event. Failures are logged and dropped.
func (p *ForecastPipeline) fanOut(ctx context.Context, key string, horizon int, classified []models.ClassifiedPoint) {
	reportID := key
	if len(reportID) > 12 {
		reportID = reportID[:12]
	}

	if p.deps.Archive != nil {
		if err := p.deps.Archive.Save(ctx, reportID, horizon, classified); err != nil {
			p.deps.Metrics.RecordError("archive")
			p.logWarn("report archive failed", logger.Error(err))
		}
	}

	if p.deps.Publisher != nil {
		event := models.ReportEvent{
			ID:          reportID,
			GeneratedAt: time.Now().UTC(),
			Horizon:     horizon,
			WorstRisk:   worstRisk(classified).String(),
		}
		for _, cp := range classified {
			event.Months = append(event.Months, cp.Month.Format(models.MonthLayout))
		}
		if err := p.deps.Publisher.Publish(ctx, event); err != nil {
			p.deps.Metrics.RecordError("publish")
			p.logWarn("report event publish failed", logger.Error(err))
		}
	}
}

func worstRisk(classified []models.ClassifiedPoint) models.RiskTier {
	worst := models.RiskSafe
	for _, cp := range classified {
		if cp.Risk > worst {
			worst = cp.Risk
		}
	}
	return worst
}

// cacheKey derives a content-addressed key: same dataset, horizon and
// interval width means same report.
func (p *ForecastPipeline) cacheKey(raw []byte, horizon int) string {
	h := sha256.New()
	h.Write(raw)
	fmt.Fprintf(h, "|%d|%g", horizon, p.deps.IntervalWidth)
	return "report:" + hex.EncodeToString(h.Sum(nil))
}

func (p *ForecastPipeline) logInfo(msg string, fields ...logger.Field) {
	if p.log != nil {
		p.log.Info(msg, fields...)
	}
}

func (p *ForecastPipeline) logWarn(msg string, fields ...logger.Field) {
	if p.log != nil {
		p.log.Warn(msg, fields...)
	}
}
