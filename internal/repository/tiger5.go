package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"golf-tracker/internal/domain"
)

type Tiger5Repository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewTiger5Repository(db *sql.DB, logger zerolog.Logger) *Tiger5Repository {
	return &Tiger5Repository{db: db, logger: logger}
}

func (r *Tiger5Repository) Insert(ctx context.Context, tally *domain.Tiger5Round) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tiger5_rounds (round_id, three_putts, double_bogeys, bogeys_on_par5, bogeys_inside_wedge, double_chips, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, tally.RoundID, tally.ThreePutts, tally.DoubleBogeys, tally.BogeysOnPar5,
		tally.BogeysInsideWedge, tally.DoubleChips, tally.Total, tally.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert tiger5 tally: %w", err)
	}
	tally.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read tiger5 id: %w", err)
	}
	r.logger.Info().Int64("round_id", tally.RoundID).Int("total", tally.Total).Msg("tiger5 tally saved")
	return nil
}

// All returns every tally, most recent first.
func (r *Tiger5Repository) All(ctx context.Context) ([]domain.Tiger5Round, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, round_id, three_putts, double_bogeys, bogeys_on_par5, bogeys_inside_wedge, double_chips, total, created_at
		FROM tiger5_rounds
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tiger5 tallies: %w", err)
	}
	defer rows.Close()

	var result []domain.Tiger5Round
	for rows.Next() {
		var t domain.Tiger5Round
		if err := rows.Scan(&t.ID, &t.RoundID, &t.ThreePutts, &t.DoubleBogeys, &t.BogeysOnPar5,
			&t.BogeysInsideWedge, &t.DoubleChips, &t.Total, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tiger5 tally: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}
