package service

import (
	"context"

	"github.com/rs/zerolog"

	"golf-tracker/internal/domain"
	"golf-tracker/internal/repository"
)

type SettingsService struct {
	repo   *repository.SettingsRepository
	logger zerolog.Logger
}

func NewSettingsService(repo *repository.SettingsRepository, logger zerolog.Logger) *SettingsService {
	return &SettingsService{repo: repo, logger: logger}
}

func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.repo.Get(ctx)
}

// Save replaces the settings wholesale; the caller sends the full value.
func (s *SettingsService) Save(ctx context.Context, settings domain.Settings) error {
	if settings.Theme == "" {
		settings.Theme = domain.DefaultSettings().Theme
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		s.logger.Error().Err(err).Msg("failed to save settings")
		return err
	}
	s.logger.Info().Str("theme", settings.Theme).Bool("notifications", settings.NotificationsEnabled).Msg("settings saved")
	return nil
}
