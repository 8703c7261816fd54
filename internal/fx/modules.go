package fx

import (
	"go.uber.org/fx"

	"golf-tracker/internal/config"
	"golf-tracker/internal/database"
	"golf-tracker/internal/logger"
	"golf-tracker/internal/notify"
	"golf-tracker/internal/repository"
	"golf-tracker/internal/server"
	"golf-tracker/internal/service"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewRoundRepository),
	fx.Provide(repository.NewTiger5Repository),
	fx.Provide(repository.NewSettingsRepository),
	fx.Provide(repository.NewDistancesRepository),
	// reminder scheduler
	fx.Provide(notify.NewWebhookScheduler),
	fx.Provide(func(s *notify.WebhookScheduler) notify.Scheduler { return s }),
	// svc
	fx.Provide(service.NewRoundService),
	fx.Provide(service.NewScorecardService),
	fx.Provide(service.NewHistoryService),
	fx.Provide(service.NewSettingsService),
	fx.Provide(service.NewDistancesService),
	// server
	fx.Provide(server.New),
)
