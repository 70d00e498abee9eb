package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
)

type SQLiteScheduleRunRepo struct {
	db db.DBTX
}

func NewSQLiteScheduleRunRepo(conn db.DBTX) *SQLiteScheduleRunRepo {
	return &SQLiteScheduleRunRepo{db: conn}
}

// weightsJSON is the stored form of the weight vector a run was solved with.
type weightsJSON struct {
	BreakImportance          float64 `json:"break_importance"`
	MaxContinuousWorkMinutes int     `json:"max_continuous_work"`
	ContinuousWorkPenalty    float64 `json:"continuous_work_penalty"`
	EveningWorkPenalty       float64 `json:"evening_work_penalty"`
	EarlyCompletionBonus     float64 `json:"early_completion_bonus"`
}

// Create inserts the run and its scheduled tasks. Callers wanting both
// writes to land together pass a transaction-scoped DBTX.
func (r *SQLiteScheduleRunRepo) Create(ctx context.Context, run *domain.ScheduleRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = nowUTC()
	}
	weights, err := json.Marshal(weightsJSON(run.Weights))
	if err != nil {
		return fmt.Errorf("encoding weights: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO schedule_runs
		(id, user_id, reference_date, work_start, work_end, weights_json, status,
		 solver_status, message, objective, nodes, elapsed_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.UserID,
		run.ReferenceDate.Format(time.DateOnly),
		run.WorkWindow.StartMinute,
		run.WorkWindow.EndMinute,
		string(weights),
		string(run.Status),
		string(run.SolverStatus),
		run.Message,
		run.Objective,
		run.Nodes,
		run.ElapsedMs,
		formatTime(run.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting schedule run: %w", err)
	}

	for i, st := range run.ScheduledTasks {
		_, err := r.db.ExecContext(ctx, `INSERT INTO schedule_run_tasks
			(run_id, position, task_id, title, priority, start_at, end_at, duration_min, mandatory)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, st.ID, st.Title, string(st.Priority),
			formatTime(st.Start), formatTime(st.End), st.DurationMinutes, boolToInt(st.Mandatory),
		)
		if err != nil {
			return fmt.Errorf("inserting scheduled task %s: %w", st.ID, err)
		}
	}
	return nil
}

const runColumns = `id, user_id, reference_date, work_start, work_end, weights_json, status,
	solver_status, message, objective, nodes, elapsed_ms, created_at`

func (r *SQLiteScheduleRunRepo) GetByID(ctx context.Context, id string) (*domain.ScheduleRun, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM schedule_runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("schedule run %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning schedule run: %w", err)
	}
	if run.ScheduledTasks, err = r.listTasks(ctx, id); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRecent returns the newest runs first, without their task lists. An
// empty userID lists runs for every user.
func (r *SQLiteScheduleRunRepo) ListRecent(ctx context.Context, userID string, limit int) ([]*domain.ScheduleRun, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + runColumns + ` FROM schedule_runs`
	args := []any{}
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing schedule runs: %w", err)
	}
	defer rows.Close()

	var out []*domain.ScheduleRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning schedule run: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (r *SQLiteScheduleRunRepo) listTasks(ctx context.Context, runID string) ([]domain.ScheduledTask, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT task_id, title, priority, start_at, end_at, duration_min, mandatory
		FROM schedule_run_tasks WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing scheduled tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.ScheduledTask{}
	for rows.Next() {
		var st domain.ScheduledTask
		var priority, start, end string
		var mandatory int
		if err := rows.Scan(&st.ID, &st.Title, &priority, &start, &end, &st.DurationMinutes, &mandatory); err != nil {
			return nil, fmt.Errorf("scanning scheduled task: %w", err)
		}
		st.Priority = domain.Priority(priority)
		st.Mandatory = intToBool(mandatory)
		if st.Start, err = parseTime(start); err != nil {
			return nil, fmt.Errorf("parsing start_at %q: %w", start, err)
		}
		if st.End, err = parseTime(end); err != nil {
			return nil, fmt.Errorf("parsing end_at %q: %w", end, err)
		}
		tasks = append(tasks, st)
	}
	return tasks, rows.Err()
}

func scanRun(s scanner) (*domain.ScheduleRun, error) {
	var run domain.ScheduleRun
	var refDate, weights, status, solverStatus, created string
	if err := s.Scan(
		&run.ID,
		&run.UserID,
		&refDate,
		&run.WorkWindow.StartMinute,
		&run.WorkWindow.EndMinute,
		&weights,
		&status,
		&solverStatus,
		&run.Message,
		&run.Objective,
		&run.Nodes,
		&run.ElapsedMs,
		&created,
	); err != nil {
		return nil, err
	}

	var err error
	if run.ReferenceDate, err = time.Parse(time.DateOnly, refDate); err != nil {
		return nil, fmt.Errorf("parsing reference_date %q: %w", refDate, err)
	}
	if run.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", created, err)
	}
	var wj weightsJSON
	if err := json.Unmarshal([]byte(weights), &wj); err != nil {
		return nil, fmt.Errorf("decoding weights: %w", err)
	}
	run.Weights = domain.WeightConfig(wj)
	run.Status = domain.ScheduleStatus(status)
	run.SolverStatus = domain.SolverStatus(solverStatus)
	return &run, nil
}
