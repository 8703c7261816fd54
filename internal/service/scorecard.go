package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"golf-tracker/internal/domain"
	"golf-tracker/internal/repository"
	"golf-tracker/internal/scoring"
)

// ScorecardService serves the scorecard view for any stored round and owns
// the edit path: apply edits, re-derive the owner's total, persist both
// together.
type ScorecardService struct {
	rounds *repository.RoundRepository
	logger zerolog.Logger
}

func NewScorecardService(rounds *repository.RoundRepository, logger zerolog.Logger) *ScorecardService {
	return &ScorecardService{rounds: rounds, logger: logger}
}

// HoleLine is one hole on one player's card.
type HoleLine struct {
	ScoreID    int64  `json:"scoreId"`
	HoleNumber int    `json:"holeNumber"`
	HolePar    int    `json:"holePar"`
	Score      int    `json:"score"`
	Relative   int    `json:"relative"`
	Standing   string `json:"standing"`
}

// PlayerCard is one player's full card with its nine-by-nine breakdown.
type PlayerCard struct {
	Player       domain.RoundPlayer `json:"player"`
	Holes        []HoleLine         `json:"holes"`
	FrontNine    int                `json:"frontNine"`
	BackNine     int                `json:"backNine"`
	Total        int                `json:"total"`
	FrontDisplay string             `json:"frontDisplay"`
	BackDisplay  string             `json:"backDisplay"`
	Display      string             `json:"display"`
	Standing     string             `json:"standing"`
}

type Scorecard struct {
	Round   domain.Round `json:"round"`
	Players []PlayerCard `json:"players"`
}

func (s *ScorecardService) Scorecard(ctx context.Context, roundID int64) (*Scorecard, error) {
	round, err := s.rounds.Get(ctx, roundID)
	if err != nil {
		return nil, err
	}
	players, err := s.rounds.Players(ctx, roundID)
	if err != nil {
		return nil, err
	}
	holeScores, err := s.rounds.HoleScores(ctx, roundID)
	if err != nil {
		return nil, err
	}

	card := &Scorecard{Round: *round}
	for _, p := range players {
		pc := PlayerCard{
			Player:    p,
			FrontNine: scoring.NineTotal(holeScores, p.ID, scoring.FrontNine),
			BackNine:  scoring.NineTotal(holeScores, p.ID, scoring.BackNine),
			Total:     scoring.PlayerTotal(holeScores, p.ID),
		}
		pc.FrontDisplay = scoring.FormatRelative(pc.FrontNine)
		pc.BackDisplay = scoring.FormatRelative(pc.BackNine)
		pc.Display = scoring.FormatRelative(pc.Total)
		pc.Standing = scoring.Classify(pc.Total).String()

		for _, hs := range holeScores {
			if hs.RoundPlayerID != p.ID {
				continue
			}
			rel := hs.Score - hs.HolePar
			pc.Holes = append(pc.Holes, HoleLine{
				ScoreID:    hs.ID,
				HoleNumber: hs.HoleNumber,
				HolePar:    hs.HolePar,
				Score:      hs.Score,
				Relative:   rel,
				Standing:   scoring.Classify(rel).String(),
			})
		}
		card.Players = append(card.Players, pc)
	}

	return card, nil
}

// EditScores applies the edits, recomputes the user's total from the edited
// rows and persists both in one transaction. After any edit the stored round
// total is always a re-derivation, never an increment.
func (s *ScorecardService) EditScores(ctx context.Context, roundID int64, edits []scoring.ScoreEdit) (int, error) {
	if _, err := s.rounds.Get(ctx, roundID); err != nil {
		return 0, err
	}
	holeScores, err := s.rounds.HoleScores(ctx, roundID)
	if err != nil {
		return 0, err
	}
	players, err := s.rounds.Players(ctx, roundID)
	if err != nil {
		return 0, err
	}

	userID := int64(0)
	for _, p := range players {
		if p.IsUser {
			userID = p.ID
			break
		}
	}
	if userID == 0 {
		return 0, fmt.Errorf("round %d has no user player", roundID)
	}

	edited := scoring.ApplyEdits(holeScores, edits)
	total := scoring.PlayerTotal(edited, userID)

	if err := s.rounds.UpdateScoresWithTotal(ctx, roundID, edited, total); err != nil {
		s.logger.Error().Err(err).Int64("round_id", roundID).Msg("failed to save score edits")
		return 0, err
	}

	s.logger.Info().
		Int64("round_id", roundID).
		Int("edits", len(edits)).
		Int("total", total).
		Msg("scorecard edited")

	return total, nil
}

// Delete removes a round and, by cascade, its players and scores.
func (s *ScorecardService) Delete(ctx context.Context, roundID int64) error {
	return s.rounds.Delete(ctx, roundID)
}
