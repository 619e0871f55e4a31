package di

import (
	"context"
	"fmt"
	"time"

	"CashCast/internal/domain/repository"
	internalrepo "CashCast/internal/repository"
	"CashCast/internal/services/forecast"
	"CashCast/internal/services/report"
	"CashCast/internal/services/risk"
	"CashCast/internal/services/summary"
	domsvc "CashCast/internal/domain/service"
	"CashCast/internal/usecase"
	"CashCast/pkg/cache"
	pkgch "CashCast/pkg/clickhouse"
	"CashCast/pkg/config"
	pkgkafka "CashCast/pkg/kafka"
	"CashCast/pkg/metrics"
	"CashCast/pkg/server"
)

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates the archive's ClickHouse client, or nil
// when the archive is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.Archive.Enabled {
		return nil, nil
	}

	ch := cfg.Archive.ClickHouse
	client, err := pkgch.NewClient(
		pkgch.WithHost(ch.Host),
		pkgch.WithPort(ch.Port),
		pkgch.WithDatabase(ch.Database),
		pkgch.WithCredentials(ch.User, ch.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithAsyncInsert(ch.AsyncInsert, ch.WaitForAsync),
		pkgch.WithTimeouts(ch.DialTimeout, ch.ReadTimeout, ch.WriteTimeout),
		pkgch.WithMaxExecutionTime(ch.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.SchemaStatements); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideReportArchive creates the ClickHouse report archive, or nil when
// the archive is disabled.
func ProvideReportArchive(chClient *pkgch.Client) repository.ReportArchive {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewCHReportArchive(chClient)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when events are
// disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Events.Enabled {
		return nil, nil
	}

	k := cfg.Events.Kafka
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(k.Brokers),
		pkgkafka.WithCompression(k.Compression),
		pkgkafka.WithRequiredAcks(k.RequiredAcks),
		pkgkafka.WithMaxAttempts(k.MaxAttempts),
		pkgkafka.WithWriteTimeout(k.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideReportPublisher creates the Kafka report publisher, or nil when
// events are disabled.
func ProvideReportPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.ReportPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaReportPublisher(producer, cfg.Events.Kafka.Topic)
}

// ProvideReportCache creates the report cache: memory only, or a layered
// memory+redis cache when redis is configured. Nil when caching is disabled.
func ProvideReportCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}

	local := cache.NewMemoryCache(cache.WithMaxSize(256))
	if !cfg.Cache.Redis.Enabled {
		return local, nil
	}

	remote, err := cache.NewRedisCache(context.Background(), cache.RedisConfig{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(local, remote, cfg.Cache.TTL), nil
}

// ProvideForecaster selects the model backend from config.
func ProvideForecaster(cfg *config.Config) domsvc.Forecaster {
	if cfg.Forecast.Backend == "http" {
		return forecast.NewHTTPForecaster(
			cfg.Forecast.ModelServiceURL,
			cfg.Forecast.IntervalWidth,
			cfg.Forecast.Timeout,
		)
	}
	return forecast.NewLinearForecaster(cfg.Forecast.IntervalWidth)
}

// ProvideSummarizer creates the narrative summarizer, or nil when no API
// key is configured. The pipeline substitutes a placeholder in that case.
func ProvideSummarizer(cfg *config.Config) domsvc.Summarizer {
	if cfg.Summary.APIKey == "" {
		return nil
	}
	return summary.NewOpenAISummarizer(
		cfg.Summary.BaseURL,
		cfg.Summary.APIKey,
		cfg.Summary.Model,
		cfg.Summary.Timeout,
	)
}

// ProvidePipeline assembles the forecast pipeline.
func ProvidePipeline(
	forecaster domsvc.Forecaster,
	summarizer domsvc.Summarizer,
	reportCache cache.Service,
	archive repository.ReportArchive,
	publisher repository.ReportPublisher,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.ForecastPipeline {
	return usecase.NewForecastPipeline(usecase.Deps{
		Engine:         forecast.NewEngine(forecaster),
		Classifier:     risk.NewClassifier(cfg.Report.Currency),
		Assembler:      report.NewAssembler(),
		Summarizer:     summarizer,
		Cache:          reportCache,
		CacheTTL:       cfg.Cache.TTL,
		Archive:        archive,
		Publisher:      publisher,
		Metrics:        m,
		IntervalWidth:  cfg.Forecast.IntervalWidth,
		SummaryTimeout: cfg.Summary.Timeout,
	})
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	pipeline *usecase.ForecastPipeline,
	chClient *pkgch.Client,
	publisher repository.ReportPublisher,
) *server.App {
	return server.New(cfg, pipeline, chClient, publisher)
}
