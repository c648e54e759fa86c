package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent so the full
// list re-runs safely on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS subjects (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		color      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS time_blocks (
		id           TEXT PRIMARY KEY,
		subject_id   TEXT NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
		day          INTEGER NOT NULL CHECK(day BETWEEN 0 AND 4),
		start_minute INTEGER NOT NULL CHECK(start_minute >= 0),
		end_minute   INTEGER NOT NULL CHECK(end_minute > start_minute),
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_time_blocks_subject ON time_blocks(subject_id)`,

	`CREATE TABLE IF NOT EXISTS calendar_exceptions (
		id           TEXT PRIMARY KEY,
		kind         TEXT NOT NULL CHECK(kind IN ('whole_day','partial')),
		date         TEXT NOT NULL,
		start_minute INTEGER NOT NULL DEFAULT 0,
		end_minute   INTEGER NOT NULL DEFAULT 0,
		reason       TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_calendar_exceptions_date ON calendar_exceptions(date)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id              TEXT PRIMARY KEY,
		subject_id      TEXT NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
		title           TEXT NOT NULL,
		target_date     TEXT,
		completion_rate REAL NOT NULL DEFAULT 0 CHECK(completion_rate >= 0 AND completion_rate <= 1),
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_milestones_subject ON milestones(subject_id)`,

	`CREATE TABLE IF NOT EXISTS units (
		id              TEXT PRIMARY KEY,
		milestone_id    TEXT NOT NULL REFERENCES milestones(id) ON DELETE CASCADE,
		title           TEXT NOT NULL,
		target_date     TEXT,
		completion_rate REAL NOT NULL DEFAULT 0 CHECK(completion_rate >= 0 AND completion_rate <= 1),
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_units_milestone ON units(milestone_id)`,

	`CREATE TABLE IF NOT EXISTS work_items (
		id           TEXT PRIMARY KEY,
		milestone_id TEXT NOT NULL REFERENCES milestones(id) ON DELETE CASCADE,
		subject_id   TEXT NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		type         TEXT NOT NULL DEFAULT '',
		tags         TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'todo'
		             CHECK(status IN ('todo','done','archived')),
		seq          INTEGER NOT NULL,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_items_milestone ON work_items(milestone_id)`,
	`CREATE INDEX IF NOT EXISTS idx_work_items_subject ON work_items(subject_id)`,

	`CREATE TABLE IF NOT EXISTS work_item_sequence (
		id       INTEGER PRIMARY KEY CHECK(id = 1),
		next_seq INTEGER NOT NULL CHECK(next_seq > 0)
	)`,

	`CREATE TABLE IF NOT EXISTS schedules (
		id           TEXT PRIMARY KEY,
		week_start   TEXT NOT NULL UNIQUE,
		strategy     TEXT NOT NULL CHECK(strategy IN ('relaxed','standard','aggressive')),
		generated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS schedule_entries (
		schedule_id  TEXT NOT NULL REFERENCES schedules(id) ON DELETE CASCADE,
		position     INTEGER NOT NULL,
		day          INTEGER NOT NULL,
		start_minute INTEGER NOT NULL,
		end_minute   INTEGER NOT NULL,
		subject_id   TEXT NOT NULL,
		work_item_id TEXT REFERENCES work_items(id) ON DELETE SET NULL,
		PRIMARY KEY (schedule_id, position)
	)`,
}
