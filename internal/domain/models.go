package domain

import (
	"time"
)

type Round struct {
	ID         int64     `json:"id"`
	CourseName string    `json:"courseName"`
	CoursePar  int       `json:"coursePar"`
	TotalScore int       `json:"totalScore"` // relative to par, only meaningful once Completed
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Completed  bool      `json:"completed"`
	CreatedAt  time.Time `json:"createdAt"`
}

type RoundPlayer struct {
	ID        int64  `json:"id"`
	RoundID   int64  `json:"roundId"`
	Name      string `json:"name"`
	IsUser    bool   `json:"isUser"`
	SortOrder int    `json:"sortOrder"`
}

type RoundHoleScore struct {
	ID            int64 `json:"id"`
	RoundID       int64 `json:"roundId"`
	RoundPlayerID int64 `json:"roundPlayerId"`
	HoleNumber    int   `json:"holeNumber"`
	HolePar       int   `json:"holePar"` // 3, 4 or 5, shared by every player on the hole
	Score         int   `json:"score"`   // strokes, never below 1
}

// Tiger5Round tallies the five avoidable-mistake categories for one round
// finished over par.
type Tiger5Round struct {
	ID                int64     `json:"id"`
	RoundID           int64     `json:"roundId"`
	ThreePutts        int       `json:"threePutts"`
	DoubleBogeys      int       `json:"doubleBogeys"`
	BogeysOnPar5      int       `json:"bogeysOnPar5"`
	BogeysInsideWedge int       `json:"bogeysInsideWedge"`
	DoubleChips       int       `json:"doubleChips"`
	Total             int       `json:"total"` // always the sum of the five counters
	CreatedAt         time.Time `json:"createdAt"`
}

func (t Tiger5Round) Sum() int {
	return t.ThreePutts + t.DoubleBogeys + t.BogeysOnPar5 + t.BogeysInsideWedge + t.DoubleChips
}

type Settings struct {
	Theme                string `json:"theme"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	SeenHomeGuide        bool   `json:"seenHomeGuide"`
	SeenPracticeGuide    bool   `json:"seenPracticeGuide"`
	SeenRoundGuide       bool   `json:"seenRoundGuide"`
	SeenHistoryGuide     bool   `json:"seenHistoryGuide"`
	SeenToolsGuide       bool   `json:"seenToolsGuide"`
}

func DefaultSettings() Settings {
	return Settings{Theme: "system", NotificationsEnabled: true}
}

type ClubDistance struct {
	ID        int64  `json:"id"`
	Club      string `json:"club"`
	Distance  int    `json:"distance"` // carry in yards
	SortOrder int    `json:"sortOrder"`
}

type WedgeChartEntry struct {
	ID                int64  `json:"id"`
	Club              string `json:"club"`
	HalfSwing         int    `json:"halfSwing"`
	ThreeQuarterSwing int    `json:"threeQuarterSwing"`
	FullSwing         int    `json:"fullSwing"`
	SortOrder         int    `json:"sortOrder"`
}
