//go:build wireinject
// +build wireinject

package main

import (
	"assetflow/config"
	"assetflow/internal/command"
	"assetflow/internal/cron"
	"assetflow/internal/database"
	"assetflow/internal/handler"
	"assetflow/internal/middleware"
	"assetflow/internal/router"
	"assetflow/internal/service"
	"assetflow/internal/telemetry"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// wireApp init application.
func wireApp(*config.Configuration, *zap.Logger) (*App, func(), error) {
	panic(
		wire.Build(
			database.ProviderSet,
			service.ProviderSet,
			handler.ProviderSet,
			middleware.ProviderSet,
			router.ProviderSet,
			cron.ProviderSet,
			newHttpServer,
			telemetry.ProviderSet,
			newApp,
		),
	)
}

// wireCommand init application.
func wireCommand(*config.Configuration, *zap.Logger) (*command.Command, func(), error) {
	panic(wire.Build(command.ProviderSet))
}
