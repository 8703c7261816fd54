package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"golf-tracker/internal/constants"
	"golf-tracker/internal/domain"
	"golf-tracker/internal/notify"
	"golf-tracker/internal/repository"
	"golf-tracker/internal/scoring"
)

var (
	ErrNoActiveRound  = errors.New("no active round")
	ErrRoundActive    = errors.New("a round is already in progress")
	ErrInvalidPar     = errors.New("hole par must be 3, 4 or 5")
	ErrTooManyPlayers = errors.New("a round allows at most three added players")
	ErrUnknownMistake = errors.New("unknown mistake category")
	ErrNothingPending = errors.New("no round is waiting to sync")
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlayerSetup
	PhaseActive
)

func (p Phase) String() string {
	switch p {
	case PhasePlayerSetup:
		return "player_setup"
	case PhaseActive:
		return "active"
	default:
		return "idle"
	}
}

// MistakeCategory is one of the five Tiger 5 avoidable-mistake buckets.
type MistakeCategory string

const (
	MistakeThreePutt        MistakeCategory = "three_putt"
	MistakeDoubleBogey      MistakeCategory = "double_bogey"
	MistakeBogeyOnPar5      MistakeCategory = "bogey_on_par5"
	MistakeBogeyInsideWedge MistakeCategory = "bogey_inside_wedge"
	MistakeDoubleChip       MistakeCategory = "double_chip"
)

// RoundState is the snapshot the presentation layer renders from.
type RoundState struct {
	Phase        string               `json:"phase"`
	Round        *domain.Round        `json:"round,omitempty"`
	Players      []domain.RoundPlayer `json:"players,omitempty"`
	CurrentHole  int                  `json:"currentHole"`
	RunningTotal int                  `json:"runningTotal"`
	Display      string               `json:"display"`
	Standing     string               `json:"standing"`
	OverPar      bool                 `json:"overPar"`
	Tally        domain.Tiger5Round   `json:"tally"`

	// PendingSync flags finished rounds whose results did not reach the
	// store. The UI resets regardless; the data stays retryable instead of
	// silently dropped.
	PendingSync     bool    `json:"pendingSync"`
	PendingRoundIDs []int64 `json:"pendingRoundIds,omitempty"`
}

// pendingCompletion holds the outcome of a round whose final writes failed,
// so End can reset the UI state without losing the result. Entries are keyed
// by round id; finishing a later round never touches an earlier one.
type pendingCompletion struct {
	tally        domain.Tiger5Round
	completeDone bool // round row already updated, only the tally is missing
}

// RoundService drives one round at a time through
// idle -> player setup -> active -> idle.
type RoundService struct {
	rounds    *repository.RoundRepository
	tiger5    *repository.Tiger5Repository
	scheduler notify.Scheduler
	logger    zerolog.Logger

	mu            sync.Mutex
	phase         Phase
	round         *domain.Round
	players       []domain.RoundPlayer
	currentHole   int
	runningTotal  int
	tally         domain.Tiger5Round
	reminderToken string
	pending       map[int64]pendingCompletion
}

func NewRoundService(rounds *repository.RoundRepository, tiger5 *repository.Tiger5Repository, scheduler notify.Scheduler, logger zerolog.Logger) *RoundService {
	return &RoundService{
		rounds:    rounds,
		tiger5:    tiger5,
		scheduler: scheduler,
		logger:    logger,
		phase:     PhaseIdle,
		pending:   map[int64]pendingCompletion{},
	}
}

// Begin moves into player setup. No side effects yet.
func (s *RoundService) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseActive {
		return ErrRoundActive
	}
	s.phase = PhasePlayerSetup
	return nil
}

// Start confirms player setup and creates the round. The user is always the
// first player; blank partner names are dropped. If the round insert fails no
// player rows are written and the service stays in setup.
func (s *RoundService) Start(ctx context.Context, courseName string, coursePar int, playerNames []string) (*RoundState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseActive {
		return nil, ErrRoundActive
	}
	if coursePar <= 0 {
		coursePar = constants.DefaultCoursePar
	}

	players := []domain.RoundPlayer{{Name: "You", IsUser: true, SortOrder: 0}}
	for _, name := range playerNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		players = append(players, domain.RoundPlayer{Name: name, SortOrder: len(players)})
	}
	if len(players) > constants.MaxRoundPlayers {
		return nil, ErrTooManyPlayers
	}

	now := time.Now()
	round := &domain.Round{
		CourseName: courseName,
		CoursePar:  coursePar,
		StartTime:  now,
		CreatedAt:  now,
	}

	if err := s.rounds.Create(ctx, round, players); err != nil {
		s.logger.Error().Err(err).Msg("failed to start round")
		return nil, fmt.Errorf("failed to start round: %w", err)
	}

	s.phase = PhaseActive
	s.round = round
	s.players = players
	s.currentHole = constants.FirstHole
	s.runningTotal = 0
	s.tally = domain.Tiger5Round{RoundID: round.ID}

	// Nudge the user six hours in if they forget to end the round.
	// Scheduling failure is not fatal, the round is already started.
	token, err := s.scheduler.Schedule(ctx, constants.ReminderDelay)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to schedule round reminder")
	}
	s.reminderToken = token

	s.logger.Info().
		Int64("round_id", round.ID).
		Int("course_par", coursePar).
		Int("players", len(players)).
		Msg("round started")

	return s.snapshot(), nil
}

// SubmitHole records every player's strokes for the current hole and advances
// to the next one. A player missing from scores takes the hole's par. The
// whole hole commits or nothing does.
func (s *RoundService) SubmitHole(ctx context.Context, holePar int, scores map[int64]int) (*RoundState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return nil, ErrNoActiveRound
	}
	if holePar != 3 && holePar != 4 && holePar != 5 {
		return nil, ErrInvalidPar
	}

	rows := make([]domain.RoundHoleScore, 0, len(s.players))
	userDelta := 0
	for _, p := range s.players {
		score, ok := scores[p.ID]
		if !ok {
			score = holePar
		}
		if score < scoring.MinScore {
			score = scoring.MinScore
		}
		if p.IsUser {
			userDelta = score - holePar
		}
		rows = append(rows, domain.RoundHoleScore{
			RoundID:       s.round.ID,
			RoundPlayerID: p.ID,
			HoleNumber:    s.currentHole,
			HolePar:       holePar,
			Score:         score,
		})
	}

	if err := s.rounds.InsertHoleScores(ctx, rows); err != nil {
		s.logger.Error().Err(err).Int("hole", s.currentHole).Msg("failed to submit hole")
		return nil, fmt.Errorf("failed to submit hole %d: %w", s.currentHole, err)
	}

	s.currentHole++
	// Running total keeps the scorecard responsive between holes. The final
	// total is re-derived from the stored rows at round end.
	s.runningTotal += userDelta

	s.logger.Info().
		Int64("round_id", s.round.ID).
		Int("hole", s.currentHole-1).
		Int("par", holePar).
		Int("running_total", s.runningTotal).
		Msg("hole submitted")

	return s.snapshot(), nil
}

// RecordMistake bumps one Tiger 5 counter. The tally only reaches the store
// if the round finishes over par.
func (s *RoundService) RecordMistake(category MistakeCategory) (*RoundState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return nil, ErrNoActiveRound
	}

	switch category {
	case MistakeThreePutt:
		s.tally.ThreePutts++
	case MistakeDoubleBogey:
		s.tally.DoubleBogeys++
	case MistakeBogeyOnPar5:
		s.tally.BogeysOnPar5++
	case MistakeBogeyInsideWedge:
		s.tally.BogeysInsideWedge++
	case MistakeDoubleChip:
		s.tally.DoubleChips++
	default:
		return nil, ErrUnknownMistake
	}

	return s.snapshot(), nil
}

// End finishes the active round: the reminder is cancelled, the final total
// is recomputed from the persisted rows and written to the round, and the
// Tiger 5 tally is saved only when that total is over par. Lifecycle state
// resets to idle even when persistence fails; the error is still returned so
// the caller can tell the user.
func (s *RoundService) End(ctx context.Context) (finalTotal int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return 0, ErrNoActiveRound
	}

	round := s.round
	tally := s.tally
	defer s.resetLocked()

	s.scheduler.Cancel(s.reminderToken)

	holeScores, err := s.rounds.HoleScores(ctx, round.ID)
	if err != nil {
		s.pending[round.ID] = pendingCompletion{tally: tally}
		return 0, fmt.Errorf("failed to load hole scores: %w", err)
	}

	userID := int64(0)
	for _, p := range s.players {
		if p.IsUser {
			userID = p.ID
			break
		}
	}

	finalTotal = scoring.PlayerTotal(holeScores, userID)

	if err := s.finishRound(ctx, round.ID, finalTotal, tally, false); err != nil {
		return finalTotal, err
	}

	s.logger.Info().
		Int64("round_id", round.ID).
		Int("final_total", finalTotal).
		Str("display", scoring.FormatRelative(finalTotal)).
		Msg("round completed")

	return finalTotal, nil
}

// finishRound writes the final total and, for over-par rounds, the tally. On
// failure the outcome is parked as pending so RetryPending can finish the job.
func (s *RoundService) finishRound(ctx context.Context, roundID int64, finalTotal int, tally domain.Tiger5Round, completeDone bool) error {
	if !completeDone {
		if err := s.rounds.Complete(ctx, roundID, finalTotal, time.Now()); err != nil {
			s.logger.Error().Err(err).Int64("round_id", roundID).Msg("failed to complete round")
			s.pending[roundID] = pendingCompletion{tally: tally}
			return fmt.Errorf("failed to complete round: %w", err)
		}
	}

	if finalTotal > 0 {
		tally.Total = tally.Sum()
		tally.CreatedAt = time.Now()
		if err := s.tiger5.Insert(ctx, &tally); err != nil {
			s.logger.Error().Err(err).Int64("round_id", roundID).Msg("failed to save tiger5 tally")
			s.pending[roundID] = pendingCompletion{tally: tally, completeDone: true}
			return fmt.Errorf("failed to save tiger5 tally: %w", err)
		}
	}

	delete(s.pending, roundID)
	return nil
}

// RetryPending re-attempts the final writes of every round whose End failed,
// oldest first. Totals are re-derived from the stored rows, never taken from
// memory. Returns the final total of the last round synced.
func (s *RoundService) RetryPending(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return 0, ErrNothingPending
	}

	finalTotal := 0
	for _, roundID := range s.pendingIDsLocked() {
		pending := s.pending[roundID]

		holeScores, err := s.rounds.HoleScores(ctx, roundID)
		if err != nil {
			return finalTotal, fmt.Errorf("failed to load hole scores: %w", err)
		}
		players, err := s.rounds.Players(ctx, roundID)
		if err != nil {
			return finalTotal, fmt.Errorf("failed to load players: %w", err)
		}

		userID := int64(0)
		for _, p := range players {
			if p.IsUser {
				userID = p.ID
				break
			}
		}

		finalTotal = scoring.PlayerTotal(holeScores, userID)
		if err := s.finishRound(ctx, roundID, finalTotal, pending.tally, pending.completeDone); err != nil {
			return finalTotal, err
		}

		s.logger.Info().Int64("round_id", roundID).Int("final_total", finalTotal).Msg("pending round synced")
	}
	return finalTotal, nil
}

func (s *RoundService) pendingIDsLocked() []int64 {
	ids := make([]int64, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Abandon quits a round in setup or mid-play. An already-persisted round is
// deleted along with its players and scores.
func (s *RoundService) Abandon(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseIdle {
		return ErrNoActiveRound
	}

	s.scheduler.Cancel(s.reminderToken)

	var err error
	if s.round != nil {
		err = s.rounds.Delete(ctx, s.round.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error().Err(err).Int64("round_id", s.round.ID).Msg("failed to delete abandoned round")
		} else {
			err = nil
		}
	}

	s.resetLocked()
	return err
}

// State returns the snapshot the UI renders.
func (s *RoundService) State() *RoundState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *RoundService) resetLocked() {
	s.phase = PhaseIdle
	s.round = nil
	s.players = nil
	s.currentHole = 0
	s.runningTotal = 0
	s.tally = domain.Tiger5Round{}
	s.reminderToken = ""
}

func (s *RoundService) snapshot() *RoundState {
	state := &RoundState{
		Phase:        s.phase.String(),
		CurrentHole:  s.currentHole,
		RunningTotal: s.runningTotal,
		Display:      scoring.FormatRelative(s.runningTotal),
		Standing:     scoring.Classify(s.runningTotal).String(),
		OverPar:      s.runningTotal > 0,
		Tally:        s.tally,
	}
	if len(s.pending) > 0 {
		state.PendingSync = true
		state.PendingRoundIDs = s.pendingIDsLocked()
	}
	if s.round != nil {
		round := *s.round
		state.Round = &round
	}
	if len(s.players) > 0 {
		state.Players = append([]domain.RoundPlayer(nil), s.players...)
	}
	return state
}
