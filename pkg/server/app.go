package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"CashCast/internal/domain/repository"
	"CashCast/internal/handler/api"
	"CashCast/internal/usecase"
	pkgch "CashCast/pkg/clickhouse"
	"CashCast/pkg/config"
	xhttp "CashCast/pkg/http"
	applogger "CashCast/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	pipeline   *usecase.ForecastPipeline
	chClient   *pkgch.Client
	publisher  repository.ReportPublisher
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	pipeline *usecase.ForecastPipeline,
	chClient *pkgch.Client,
	publisher repository.ReportPublisher,
) *App {
	return &App{
		cfg:       cfg,
		pipeline:  pipeline,
		chClient:  chClient,
		publisher: publisher,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	format := "json"
	if a.cfg.Environment == "development" {
		format = "console"
	}
	l, err := applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
	if err != nil {
		return err
	}
	a.pipeline.SetLogger(l)

	handler := api.NewForecastEchoHandler(l, a.pipeline, api.RateLimitConfig{
		Enabled:      a.cfg.Server.RateLimit.Enabled,
		Capacity:     a.cfg.Server.RateLimit.Capacity,
		RefillPerSec: a.cfg.Server.RateLimit.RefillPerSec,
	})

	a.httpServer = xhttp.NewServer(handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}
	l.Info("server started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("backend", a.cfg.Forecast.Backend))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(l)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(l *applogger.Logger) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			l.Warn("kafka producer close error", applogger.Error(err))
		}
	}

	l.Info("shutdown complete")
	return nil
}
