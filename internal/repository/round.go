package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"golf-tracker/internal/domain"
)

var ErrNotFound = errors.New("not found")

type RoundRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewRoundRepository(db *sql.DB, logger zerolog.Logger) *RoundRepository {
	return &RoundRepository{db: db, logger: logger}
}

// Create inserts the round and its players in one transaction. Player ids are
// filled in on the passed slice. If anything fails no rows are written.
func (r *RoundRepository) Create(ctx context.Context, round *domain.Round, players []domain.RoundPlayer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO rounds (course_name, course_par, start_time, created_at)
		VALUES (?, ?, ?, ?)
	`, round.CourseName, round.CoursePar, round.StartTime, round.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert round: %w", err)
	}
	round.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read round id: %w", err)
	}

	for i := range players {
		players[i].RoundID = round.ID
		res, err := tx.ExecContext(ctx, `
			INSERT INTO round_players (round_id, name, is_user, sort_order)
			VALUES (?, ?, ?, ?)
		`, players[i].RoundID, players[i].Name, players[i].IsUser, players[i].SortOrder)
		if err != nil {
			return fmt.Errorf("failed to insert player %q: %w", players[i].Name, err)
		}
		players[i].ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read player id: %w", err)
		}
	}

	return tx.Commit()
}

func (r *RoundRepository) Get(ctx context.Context, id int64) (*domain.Round, error) {
	var round domain.Round
	var endTime sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT id, course_name, course_par, total_score, start_time, end_time, completed, created_at
		FROM rounds
		WHERE id = ?
	`, id).Scan(&round.ID, &round.CourseName, &round.CoursePar, &round.TotalScore,
		&round.StartTime, &endTime, &round.Completed, &round.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get round %d: %w", id, err)
	}
	if endTime.Valid {
		round.EndTime = endTime.Time
	}
	return &round, nil
}

// Completed returns finished rounds, most recent first. Descending id matches
// descending creation time because ids autoincrement.
func (r *RoundRepository) Completed(ctx context.Context) ([]domain.Round, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, course_name, course_par, total_score, start_time, end_time, completed, created_at
		FROM rounds
		WHERE completed = 1
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	defer rows.Close()

	var result []domain.Round
	for rows.Next() {
		var round domain.Round
		var endTime sql.NullTime
		if err := rows.Scan(&round.ID, &round.CourseName, &round.CoursePar, &round.TotalScore,
			&round.StartTime, &endTime, &round.Completed, &round.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		if endTime.Valid {
			round.EndTime = endTime.Time
		}
		result = append(result, round)
	}
	return result, rows.Err()
}

// Complete stamps the round with its final total and end time.
func (r *RoundRepository) Complete(ctx context.Context, id int64, totalScore int, endTime time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE rounds
		SET total_score = ?, end_time = ?, completed = 1
		WHERE id = ?
	`, totalScore, endTime, id)
	if err != nil {
		return fmt.Errorf("failed to complete round %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check complete result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RoundRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rounds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete round %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	r.logger.Info().Int64("round_id", id).Msg("round deleted")
	return nil
}

func (r *RoundRepository) Players(ctx context.Context, roundID int64) ([]domain.RoundPlayer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, round_id, name, is_user, sort_order
		FROM round_players
		WHERE round_id = ?
		ORDER BY sort_order
	`, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for round %d: %w", roundID, err)
	}
	defer rows.Close()

	var result []domain.RoundPlayer
	for rows.Next() {
		var p domain.RoundPlayer
		if err := rows.Scan(&p.ID, &p.RoundID, &p.Name, &p.IsUser, &p.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *RoundRepository) HoleScores(ctx context.Context, roundID int64) ([]domain.RoundHoleScore, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, round_id, round_player_id, hole_number, hole_par, score
		FROM round_hole_scores
		WHERE round_id = ?
		ORDER BY hole_number, round_player_id
	`, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list hole scores for round %d: %w", roundID, err)
	}
	defer rows.Close()

	var result []domain.RoundHoleScore
	for rows.Next() {
		var s domain.RoundHoleScore
		if err := rows.Scan(&s.ID, &s.RoundID, &s.RoundPlayerID, &s.HoleNumber, &s.HolePar, &s.Score); err != nil {
			return nil, fmt.Errorf("failed to scan hole score: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// InsertHoleScores writes one hole's rows, one per player, in a single
// transaction so a submitted hole is never half recorded.
func (r *RoundRepository) InsertHoleScores(ctx context.Context, scores []domain.RoundHoleScore) error {
	if len(scores) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range scores {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO round_hole_scores (round_id, round_player_id, hole_number, hole_par, score)
			VALUES (?, ?, ?, ?, ?)
		`, scores[i].RoundID, scores[i].RoundPlayerID, scores[i].HoleNumber, scores[i].HolePar, scores[i].Score)
		if err != nil {
			return fmt.Errorf("failed to insert hole score: %w", err)
		}
		scores[i].ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read hole score id: %w", err)
		}
	}

	return tx.Commit()
}

// UpdateScoresWithTotal persists edited hole rows together with the round's
// re-derived total. Either everything commits or the edit is reported failed;
// the round total is never updated without the rows it was computed from.
func (r *RoundRepository) UpdateScoresWithTotal(ctx context.Context, roundID int64, scores []domain.RoundHoleScore, totalScore int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, s := range scores {
		if _, err := tx.ExecContext(ctx, `
			UPDATE round_hole_scores SET score = ? WHERE id = ? AND round_id = ?
		`, s.Score, s.ID, roundID); err != nil {
			return fmt.Errorf("failed to update hole score %d: %w", s.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE rounds SET total_score = ? WHERE id = ?
	`, totalScore, roundID); err != nil {
		return fmt.Errorf("failed to update round total: %w", err)
	}

	return tx.Commit()
}
