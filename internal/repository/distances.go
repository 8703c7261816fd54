package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"golf-tracker/internal/domain"
)

type DistancesRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewDistancesRepository(db *sql.DB, logger zerolog.Logger) *DistancesRepository {
	return &DistancesRepository{db: db, logger: logger}
}

func (r *DistancesRepository) ClubDistances(ctx context.Context) ([]domain.ClubDistance, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, club, distance, sort_order
		FROM club_distances
		ORDER BY sort_order
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list club distances: %w", err)
	}
	defer rows.Close()

	var result []domain.ClubDistance
	for rows.Next() {
		var d domain.ClubDistance
		if err := rows.Scan(&d.ID, &d.Club, &d.Distance, &d.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan club distance: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// ReplaceClubDistances swaps the whole list in one transaction, so readers
// never see a half-replaced collection.
func (r *DistancesRepository) ReplaceClubDistances(ctx context.Context, distances []domain.ClubDistance) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM club_distances`); err != nil {
		return fmt.Errorf("failed to clear club distances: %w", err)
	}
	for i, d := range distances {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO club_distances (club, distance, sort_order) VALUES (?, ?, ?)
		`, d.Club, d.Distance, i); err != nil {
			return fmt.Errorf("failed to insert club distance %q: %w", d.Club, err)
		}
	}

	return tx.Commit()
}

func (r *DistancesRepository) WedgeChart(ctx context.Context) ([]domain.WedgeChartEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, club, half_swing, three_quarter_swing, full_swing, sort_order
		FROM wedge_chart
		ORDER BY sort_order
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list wedge chart: %w", err)
	}
	defer rows.Close()

	var result []domain.WedgeChartEntry
	for rows.Next() {
		var e domain.WedgeChartEntry
		if err := rows.Scan(&e.ID, &e.Club, &e.HalfSwing, &e.ThreeQuarterSwing, &e.FullSwing, &e.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan wedge chart entry: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *DistancesRepository) ReplaceWedgeChart(ctx context.Context, entries []domain.WedgeChartEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM wedge_chart`); err != nil {
		return fmt.Errorf("failed to clear wedge chart: %w", err)
	}
	for i, e := range entries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO wedge_chart (club, half_swing, three_quarter_swing, full_swing, sort_order)
			VALUES (?, ?, ?, ?, ?)
		`, e.Club, e.HalfSwing, e.ThreeQuarterSwing, e.FullSwing, i); err != nil {
			return fmt.Errorf("failed to insert wedge chart entry %q: %w", e.Club, err)
		}
	}

	return tx.Commit()
}
