package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"golf-tracker/internal/domain"
)

type SettingsRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSettingsRepository(db *sql.DB, logger zerolog.Logger) *SettingsRepository {
	return &SettingsRepository{db: db, logger: logger}
}

// Get reads the single settings row, creating it with defaults on first read.
func (r *SettingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	s, err := r.read(ctx)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	defaults := domain.DefaultSettings()
	if err := r.Save(ctx, defaults); err != nil {
		return domain.Settings{}, err
	}
	r.logger.Info().Msg("settings initialised with defaults")
	return defaults, nil
}

func (r *SettingsRepository) read(ctx context.Context) (domain.Settings, error) {
	var s domain.Settings
	err := r.db.QueryRowContext(ctx, `
		SELECT theme, notifications_enabled, seen_home_guide, seen_practice_guide, seen_round_guide, seen_history_guide, seen_tools_guide
		FROM settings
		WHERE id = 1
	`).Scan(&s.Theme, &s.NotificationsEnabled, &s.SeenHomeGuide, &s.SeenPracticeGuide,
		&s.SeenRoundGuide, &s.SeenHistoryGuide, &s.SeenToolsGuide)
	return s, err
}

// Save replaces the settings row wholesale inside one transaction. Partial
// patches are not supported.
func (r *SettingsRepository) Save(ctx context.Context, s domain.Settings) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM settings WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO settings (id, theme, notifications_enabled, seen_home_guide, seen_practice_guide, seen_round_guide, seen_history_guide, seen_tools_guide)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
	`, s.Theme, s.NotificationsEnabled, s.SeenHomeGuide, s.SeenPracticeGuide,
		s.SeenRoundGuide, s.SeenHistoryGuide, s.SeenToolsGuide); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return tx.Commit()
}
