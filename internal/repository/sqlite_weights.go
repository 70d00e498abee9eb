package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
)

type SQLiteWeightRepo struct {
	db db.DBTX
}

func NewSQLiteWeightRepo(conn db.DBTX) *SQLiteWeightRepo {
	return &SQLiteWeightRepo{db: conn}
}

const weightColumns = `user_id, break_importance, max_continuous_work_minutes,
	continuous_work_penalty, evening_work_penalty, early_completion_bonus, updated_at`

func (r *SQLiteWeightRepo) Get(ctx context.Context, userID string) (*domain.UserWeights, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+weightColumns+` FROM user_weights WHERE user_id = ?`, userID)
	w, err := scanWeights(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("weights for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning weights: %w", err)
	}
	return w, nil
}

func (r *SQLiteWeightRepo) Upsert(ctx context.Context, w *domain.UserWeights) error {
	if w.UpdatedAt.IsZero() {
		w.UpdatedAt = nowUTC()
	}
	query := `INSERT INTO user_weights (` + weightColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			break_importance = excluded.break_importance,
			max_continuous_work_minutes = excluded.max_continuous_work_minutes,
			continuous_work_penalty = excluded.continuous_work_penalty,
			evening_work_penalty = excluded.evening_work_penalty,
			early_completion_bonus = excluded.early_completion_bonus,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		w.UserID,
		w.Weights.BreakImportance,
		w.Weights.MaxContinuousWorkMinutes,
		w.Weights.ContinuousWorkPenalty,
		w.Weights.EveningWorkPenalty,
		w.Weights.EarlyCompletionBonus,
		formatTime(w.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting weights: %w", err)
	}
	return nil
}

func (r *SQLiteWeightRepo) Delete(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_weights WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("deleting weights: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting weights: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("weights for user %s: %w", userID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteWeightRepo) List(ctx context.Context) ([]*domain.UserWeights, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+weightColumns+` FROM user_weights ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("listing weights: %w", err)
	}
	defer rows.Close()

	var out []*domain.UserWeights
	for rows.Next() {
		w, err := scanWeights(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning weights: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWeights(s scanner) (*domain.UserWeights, error) {
	var w domain.UserWeights
	var updated string
	if err := s.Scan(
		&w.UserID,
		&w.Weights.BreakImportance,
		&w.Weights.MaxContinuousWorkMinutes,
		&w.Weights.ContinuousWorkPenalty,
		&w.Weights.EveningWorkPenalty,
		&w.Weights.EarlyCompletionBonus,
		&updated,
	); err != nil {
		return nil, err
	}
	t, err := parseTime(updated)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at %q: %w", updated, err)
	}
	w.UpdatedAt = t
	return &w, nil
}
