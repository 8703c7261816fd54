package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"golf-tracker/internal/repository"
	"golf-tracker/internal/scoring"
)

// playRound starts a solo round, submits the given (par, score) holes and
// ends it, returning the round id and the user's player id.
func playRound(t *testing.T, svc *RoundService, holes [][2]int) (int64, int64) {
	t.Helper()
	ctx := context.Background()

	state, err := svc.Start(ctx, "", 72, nil)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	roundID := state.Round.ID
	userID := state.Players[0].ID

	for _, h := range holes {
		if _, err := svc.SubmitHole(ctx, h[0], map[int64]int{userID: h[1]}); err != nil {
			t.Fatalf("submit hole: %v", err)
		}
	}
	if _, err := svc.End(ctx); err != nil {
		t.Fatalf("end: %v", err)
	}
	return roundID, userID
}

func TestEditScoresRecomputesTotal(t *testing.T) {
	svc, rounds, _, _ := setupRoundService(t)
	cards := NewScorecardService(rounds, zerolog.Nop())
	ctx := context.Background()

	// Two par-4 holes: 5 and 4, total +1.
	roundID, userID := playRound(t, svc, [][2]int{{4, 5}, {4, 4}})

	scores, err := rounds.HoleScores(ctx, roundID)
	if err != nil {
		t.Fatalf("hole scores: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(scores))
	}

	// Edit hole 1 from 5 to 6: (6-4)+(4-4) = 2.
	total, err := cards.EditScores(ctx, roundID, []scoring.ScoreEdit{{ID: scores[0].ID, NewScore: 6}})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if total != 2 {
		t.Errorf("recomputed total = %d, want 2", total)
	}

	round, err := rounds.Get(ctx, roundID)
	if err != nil {
		t.Fatalf("get round: %v", err)
	}
	if round.TotalScore != 2 {
		t.Errorf("stored total = %d, want 2", round.TotalScore)
	}

	// Stored rows and stored total agree after the edit.
	edited, err := rounds.HoleScores(ctx, roundID)
	if err != nil {
		t.Fatalf("hole scores: %v", err)
	}
	if got := scoring.PlayerTotal(edited, userID); got != round.TotalScore {
		t.Errorf("stored rows total %d != stored round total %d", got, round.TotalScore)
	}
}

func TestEditScoresClampsAndSkipsUnknown(t *testing.T) {
	svc, rounds, _, _ := setupRoundService(t)
	cards := NewScorecardService(rounds, zerolog.Nop())
	ctx := context.Background()

	roundID, _ := playRound(t, svc, [][2]int{{4, 1}})

	scores, _ := rounds.HoleScores(ctx, roundID)

	// Editing below the minimum clamps to 1; an unknown id is a no-op.
	total, err := cards.EditScores(ctx, roundID, []scoring.ScoreEdit{
		{ID: scores[0].ID, NewScore: 0},
		{ID: 9999, NewScore: 2},
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if total != 1-4 {
		t.Errorf("total = %d, want -3", total)
	}

	after, _ := rounds.HoleScores(ctx, roundID)
	if after[0].Score != 1 {
		t.Errorf("score = %d, want clamped 1", after[0].Score)
	}
}

func TestScorecardAggregates(t *testing.T) {
	svc, rounds, _, _ := setupRoundService(t)
	cards := NewScorecardService(rounds, zerolog.Nop())
	ctx := context.Background()

	// Nine front holes at +1 each, two back holes at -1 each.
	holes := make([][2]int, 0, 11)
	for i := 0; i < 9; i++ {
		holes = append(holes, [2]int{4, 5})
	}
	holes = append(holes, [2]int{4, 3}, [2]int{5, 4})
	roundID, _ := playRound(t, svc, holes)

	card, err := cards.Scorecard(ctx, roundID)
	if err != nil {
		t.Fatalf("scorecard: %v", err)
	}
	if len(card.Players) != 1 {
		t.Fatalf("players = %d, want 1", len(card.Players))
	}

	pc := card.Players[0]
	if pc.FrontNine != 9 {
		t.Errorf("front nine = %d, want 9", pc.FrontNine)
	}
	if pc.BackNine != -2 {
		t.Errorf("back nine = %d, want -2", pc.BackNine)
	}
	if pc.Total != pc.FrontNine+pc.BackNine {
		t.Errorf("total %d != front %d + back %d", pc.Total, pc.FrontNine, pc.BackNine)
	}
	if pc.Display != "+7" || pc.Standing != "over" {
		t.Errorf("display %q standing %q, want +7/over", pc.Display, pc.Standing)
	}
	if pc.FrontDisplay != "+9" || pc.BackDisplay != "-2" {
		t.Errorf("nine displays = %q/%q", pc.FrontDisplay, pc.BackDisplay)
	}
	if len(pc.Holes) != 11 {
		t.Errorf("hole lines = %d, want 11", len(pc.Holes))
	}
}

func TestScorecardNotFound(t *testing.T) {
	_, rounds, _, _ := setupRoundService(t)
	cards := NewScorecardService(rounds, zerolog.Nop())

	if _, err := cards.Scorecard(context.Background(), 42); err != repository.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	// The edit path reports a missing round the same way as the read path.
	edits := []scoring.ScoreEdit{{ID: 1, NewScore: 4}}
	if _, err := cards.EditScores(context.Background(), 42, edits); err != repository.ErrNotFound {
		t.Errorf("edit err = %v, want ErrNotFound", err)
	}
}
