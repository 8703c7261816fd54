package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"golf-tracker/internal/constants"
	"golf-tracker/internal/repository"
	"golf-tracker/internal/scoring"
)

// HistoryService projects stored rounds and Tiger 5 tallies into the
// most-recent-first lists the history screens show.
type HistoryService struct {
	rounds *repository.RoundRepository
	tiger5 *repository.Tiger5Repository
	logger zerolog.Logger
}

func NewHistoryService(rounds *repository.RoundRepository, tiger5 *repository.Tiger5Repository, logger zerolog.Logger) *HistoryService {
	return &HistoryService{rounds: rounds, tiger5: tiger5, logger: logger}
}

type RoundHistoryItem struct {
	ID         int64  `json:"id"`
	CourseName string `json:"courseName"`
	CoursePar  int    `json:"coursePar"`
	Total      int    `json:"total"`
	Display    string `json:"display"`
	Standing   string `json:"standing"`
	PlayedOn   string `json:"playedOn"`
}

type Tiger5HistoryItem struct {
	ID                int64  `json:"id"`
	RoundID           int64  `json:"roundId"`
	ThreePutts        int    `json:"threePutts"`
	DoubleBogeys      int    `json:"doubleBogeys"`
	BogeysOnPar5      int    `json:"bogeysOnPar5"`
	BogeysInsideWedge int    `json:"bogeysInsideWedge"`
	DoubleChips       int    `json:"doubleChips"`
	Total             int    `json:"total"`
	RecordedOn        string `json:"recordedOn"`
}

func (s *HistoryService) RoundHistory(ctx context.Context) ([]RoundHistoryItem, error) {
	rounds, err := s.rounds.Completed(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]RoundHistoryItem, 0, len(rounds))
	for _, r := range rounds {
		items = append(items, RoundHistoryItem{
			ID:         r.ID,
			CourseName: r.CourseName,
			CoursePar:  r.CoursePar,
			Total:      r.TotalScore,
			Display:    scoring.FormatRelative(r.TotalScore),
			Standing:   scoring.Classify(r.TotalScore).String(),
			PlayedOn:   r.StartTime.Format(constants.HistoryDateFormat),
		})
	}
	return items, nil
}

func (s *HistoryService) Tiger5History(ctx context.Context) ([]Tiger5HistoryItem, error) {
	tallies, err := s.tiger5.All(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]Tiger5HistoryItem, 0, len(tallies))
	for _, t := range tallies {
		items = append(items, Tiger5HistoryItem{
			ID:                t.ID,
			RoundID:           t.RoundID,
			ThreePutts:        t.ThreePutts,
			DoubleBogeys:      t.DoubleBogeys,
			BogeysOnPar5:      t.BogeysOnPar5,
			BogeysInsideWedge: t.BogeysInsideWedge,
			DoubleChips:       t.DoubleChips,
			Total:             t.Total,
			RecordedOn:        t.CreatedAt.Format(constants.HistoryDateFormat),
		})
	}
	return items, nil
}

// Summary is the stats screen: both histories plus best and average totals.
type Summary struct {
	Rounds       []RoundHistoryItem  `json:"rounds"`
	Tiger5       []Tiger5HistoryItem `json:"tiger5"`
	RoundsPlayed int                 `json:"roundsPlayed"`
	BestTotal    int                 `json:"bestTotal"`
	BestDisplay  string              `json:"bestDisplay"`
	AverageTotal float64             `json:"averageTotal"`
}

func (s *HistoryService) Summary(ctx context.Context) (*Summary, error) {
	g, gCtx := errgroup.WithContext(ctx)
	var rounds []RoundHistoryItem
	var tallies []Tiger5HistoryItem

	g.Go(func() error {
		var err error
		rounds, err = s.RoundHistory(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		tallies, err = s.Tiger5History(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to build summary")
		return nil, err
	}

	summary := &Summary{Rounds: rounds, Tiger5: tallies, RoundsPlayed: len(rounds)}
	if len(rounds) > 0 {
		best := rounds[0].Total
		sum := 0
		for _, r := range rounds {
			if r.Total < best {
				best = r.Total
			}
			sum += r.Total
		}
		summary.BestTotal = best
		summary.BestDisplay = scoring.FormatRelative(best)
		summary.AverageTotal = float64(sum) / float64(len(rounds))
	}
	return summary, nil
}
