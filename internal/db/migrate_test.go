package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time; it must succeed without error.
	err := Migrate(db)
	require.NoError(t, err)

	// Third time for good measure.
	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"users", "projects", "project_members", "tasks", "task_collaborators",
		"task_allocations", "timesheet_entries", "holidays",
	}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_tasks_project",
		"idx_tasks_developer",
		"idx_timesheets_task_user",
		"idx_timesheets_date",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_TaskStatusConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO projects (id, name, created_at, updated_at) VALUES ('p1', 'P', 'x', 'x')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO tasks (id, project_id, title, status, created_at, updated_at)
		VALUES ('t1', 'p1', 'T', 'Blocked', 'x', 'x')`)
	require.Error(t, err, "unknown status must be rejected")

	_, err = db.Exec(`INSERT INTO tasks (id, project_id, title, status, created_at, updated_at)
		VALUES ('t1', 'p1', 'T', 'In Progress', 'x', 'x')`)
	require.NoError(t, err)
}

func TestMigrate_ForeignKeysCascade(t *testing.T) {
	db := openTestDB(t)

	stmts := []string{
		`INSERT INTO users (id, name, created_at, updated_at) VALUES ('u1', 'Ana', 'x', 'x')`,
		`INSERT INTO projects (id, name, created_at, updated_at) VALUES ('p1', 'P', 'x', 'x')`,
		`INSERT INTO tasks (id, project_id, title, developer_id, created_at, updated_at) VALUES ('t1', 'p1', 'T', 'u1', 'x', 'x')`,
		`INSERT INTO timesheet_entries (id, task_id, user_id, entry_date, total_hours, created_at) VALUES ('e1', 't1', 'u1', '2025-03-10', 4, 'x')`,
	}
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err)
	}

	_, err := db.Exec(`DELETE FROM projects WHERE id = 'p1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM timesheet_entries`).Scan(&n))
	assert.Equal(t, 0, n, "entries cascade through task deletion")
}
