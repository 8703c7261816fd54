// Package scoring derives every total a scorecard needs from the flat set of
// hole-score rows for one round. All functions are pure; persistence and
// recomputation sequencing live in the service layer.
package scoring

import (
	"strconv"

	"golf-tracker/internal/domain"
)

// MinScore is the lowest stroke count a hole can hold. Edits below it are
// clamped, never rejected.
const MinScore = 1

type Nine int

const (
	FrontNine Nine = iota
	BackNine
)

// NineOf places a hole number on its nine. Holes 1-9 are the front nine,
// everything above is the back. Partial rounds and rounds that start
// mid-sequence partition the same way.
func NineOf(holeNumber int) Nine {
	if holeNumber <= 9 {
		return FrontNine
	}
	return BackNine
}

// PlayerTotal sums (score - par) over every hole the player has recorded.
// An empty set is even par.
func PlayerTotal(scores []domain.RoundHoleScore, playerID int64) int {
	total := 0
	for _, s := range scores {
		if s.RoundPlayerID != playerID {
			continue
		}
		total += s.Score - s.HolePar
	}
	return total
}

// NineTotal is PlayerTotal restricted to one nine. For any player,
// PlayerTotal == NineTotal(front) + NineTotal(back).
func NineTotal(scores []domain.RoundHoleScore, playerID int64, nine Nine) int {
	total := 0
	for _, s := range scores {
		if s.RoundPlayerID != playerID || NineOf(s.HoleNumber) != nine {
			continue
		}
		total += s.Score - s.HolePar
	}
	return total
}

// Standing classifies a relative-to-par value. The same rule applies to a
// single hole delta, a nine total and a round total.
type Standing int

const (
	UnderPar Standing = iota
	EvenPar
	OverPar
)

func (s Standing) String() string {
	switch s {
	case UnderPar:
		return "under"
	case OverPar:
		return "over"
	default:
		return "even"
	}
}

func Classify(relative int) Standing {
	switch {
	case relative < 0:
		return UnderPar
	case relative > 0:
		return OverPar
	default:
		return EvenPar
	}
}

// FormatRelative renders a relative-to-par value the way the scorecard shows
// it: "E" at even, "+n" over, "-n" under.
func FormatRelative(relative int) string {
	if relative == 0 {
		return "E"
	}
	if relative > 0 {
		return "+" + strconv.Itoa(relative)
	}
	return strconv.Itoa(relative)
}

// ScoreEdit replaces the stroke count on one existing hole-score row.
type ScoreEdit struct {
	ID       int64 `json:"id"`
	NewScore int   `json:"newScore"`
}

// ApplyEdits returns a copy of scores with each matching edit applied. Edits
// referencing unknown row ids are skipped. New scores below MinScore are
// clamped to MinScore. The caller must persist the result and re-derive the
// round total from it; totals are never adjusted incrementally.
func ApplyEdits(scores []domain.RoundHoleScore, edits []ScoreEdit) []domain.RoundHoleScore {
	byID := make(map[int64]int, len(edits))
	for _, e := range edits {
		byID[e.ID] = e.NewScore
	}

	out := make([]domain.RoundHoleScore, len(scores))
	copy(out, scores)
	for i := range out {
		newScore, ok := byID[out[i].ID]
		if !ok {
			continue
		}
		if newScore < MinScore {
			newScore = MinScore
		}
		out[i].Score = newScore
	}
	return out
}
