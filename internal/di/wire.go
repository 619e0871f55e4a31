//go:build wireinject
// +build wireinject

package di

import (
	"CashCast/pkg/config"
	"CashCast/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Metrics
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideReportCache,

		// Repositories
		ProvideReportArchive,
		ProvideReportPublisher,

		// Domain capabilities
		ProvideForecaster,
		ProvideSummarizer,

		// Use cases
		ProvidePipeline,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
