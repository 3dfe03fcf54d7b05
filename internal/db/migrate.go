package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent, so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id                    TEXT PRIMARY KEY,
		name                  TEXT NOT NULL,
		email                 TEXT NOT NULL DEFAULT '',
		daily_available_hours REAL NOT NULL DEFAULT 8,
		torre                 TEXT NOT NULL DEFAULT '',
		active                INTEGER NOT NULL DEFAULT 1,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL,
		client             TEXT NOT NULL DEFAULT '',
		project_type       TEXT NOT NULL DEFAULT 'planned'
		                   CHECK(project_type IN ('planned','continuous')),
		start_date         TEXT,
		estimated_delivery TEXT,
		active             INTEGER NOT NULL DEFAULT 1,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS project_members (
		project_id            TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		user_id               TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		allocation_percentage REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (project_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id                 TEXT PRIMARY KEY,
		project_id         TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title              TEXT NOT NULL,
		developer_id       TEXT REFERENCES users(id) ON DELETE SET NULL,
		status             TEXT NOT NULL DEFAULT 'Todo'
		                   CHECK(status IN ('Todo','In Progress','Review','Testing','Done','Cancelled')),
		deleted_at         TEXT,
		estimated_hours    REAL NOT NULL DEFAULT 0,
		progress           INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
		scheduled_start    TEXT,
		actual_start       TEXT,
		estimated_delivery TEXT,
		actual_delivery    TEXT,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_developer ON tasks(developer_id)`,

	`CREATE TABLE IF NOT EXISTS task_collaborators (
		task_id TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		PRIMARY KEY (task_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS task_allocations (
		task_id        TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		user_id        TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		reserved_hours REAL NOT NULL,
		PRIMARY KEY (task_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS timesheet_entries (
		id          TEXT PRIMARY KEY,
		task_id     TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		entry_date  TEXT NOT NULL,
		total_hours REAL NOT NULL,
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_timesheets_task_user ON timesheet_entries(task_id, user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_timesheets_date ON timesheet_entries(entry_date)`,

	`CREATE TABLE IF NOT EXISTS holidays (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL,
		end_date   TEXT
	)`,

	// Free-text note on timesheet entries.
	`ALTER TABLE timesheet_entries ADD COLUMN note TEXT NOT NULL DEFAULT ''`,
}
