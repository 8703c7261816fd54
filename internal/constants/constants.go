package constants

import "time"

const (
	// DefaultCoursePar is used when a round starts without a course par.
	DefaultCoursePar = 72

	// MaxRoundPlayers is the user plus up to three named playing partners.
	MaxRoundPlayers = 4

	FirstHole = 1
)

const (
	// ReminderDelay is how long after a round starts the forgot-to-finish
	// nudge fires.
	ReminderDelay = 6 * time.Hour
)

const (
	WebhookTimeout  = 10 * time.Second
	DatabaseTimeout = 5 * time.Second
	RequestTimeout  = 30 * time.Second
)

const (
	DBMaxOpenConns    = 1
	DBMaxIdleConns    = 1
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	// HistoryDateFormat is the short day/month form the history screens show.
	HistoryDateFormat = "Mon 2 Jan"
)
