package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent, so
// the full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS user_weights (
		user_id                     TEXT PRIMARY KEY,
		break_importance            REAL NOT NULL CHECK(break_importance > 0),
		max_continuous_work_minutes INTEGER NOT NULL CHECK(max_continuous_work_minutes > 0),
		continuous_work_penalty     REAL NOT NULL CHECK(continuous_work_penalty > 0),
		evening_work_penalty        REAL NOT NULL CHECK(evening_work_penalty > 0),
		early_completion_bonus      REAL NOT NULL CHECK(early_completion_bonus > 0),
		updated_at                  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS schedule_runs (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL,
		reference_date   TEXT NOT NULL,
		work_start       INTEGER NOT NULL,
		work_end         INTEGER NOT NULL,
		weights_json     TEXT NOT NULL,
		status           TEXT NOT NULL CHECK(status IN ('success','partial','error')),
		solver_status    TEXT NOT NULL,
		message          TEXT NOT NULL DEFAULT '',
		objective        REAL NOT NULL DEFAULT 0,
		nodes            INTEGER NOT NULL DEFAULT 0,
		elapsed_ms       INTEGER NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS schedule_run_tasks (
		run_id           TEXT NOT NULL REFERENCES schedule_runs(id) ON DELETE CASCADE,
		position         INTEGER NOT NULL,
		task_id          TEXT NOT NULL,
		title            TEXT NOT NULL DEFAULT '',
		priority         TEXT NOT NULL,
		start_at         TEXT NOT NULL,
		end_at           TEXT NOT NULL,
		duration_min     INTEGER NOT NULL CHECK(duration_min > 0),
		mandatory        INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (run_id, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_schedule_runs_user_created ON schedule_runs(user_id, created_at)`,
}
