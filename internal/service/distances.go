package service

import (
	"context"

	"github.com/rs/zerolog"

	"golf-tracker/internal/domain"
	"golf-tracker/internal/repository"
)

// DistancesService fronts the two reference lists the tools screens use.
type DistancesService struct {
	repo   *repository.DistancesRepository
	logger zerolog.Logger
}

func NewDistancesService(repo *repository.DistancesRepository, logger zerolog.Logger) *DistancesService {
	return &DistancesService{repo: repo, logger: logger}
}

func (s *DistancesService) ClubDistances(ctx context.Context) ([]domain.ClubDistance, error) {
	return s.repo.ClubDistances(ctx)
}

func (s *DistancesService) SaveClubDistances(ctx context.Context, distances []domain.ClubDistance) error {
	if err := s.repo.ReplaceClubDistances(ctx, distances); err != nil {
		s.logger.Error().Err(err).Msg("failed to save club distances")
		return err
	}
	s.logger.Info().Int("clubs", len(distances)).Msg("club distances saved")
	return nil
}

func (s *DistancesService) WedgeChart(ctx context.Context) ([]domain.WedgeChartEntry, error) {
	return s.repo.WedgeChart(ctx)
}

func (s *DistancesService) SaveWedgeChart(ctx context.Context, entries []domain.WedgeChartEntry) error {
	if err := s.repo.ReplaceWedgeChart(ctx, entries); err != nil {
		s.logger.Error().Err(err).Msg("failed to save wedge chart")
		return err
	}
	s.logger.Info().Int("entries", len(entries)).Msg("wedge chart saved")
	return nil
}
