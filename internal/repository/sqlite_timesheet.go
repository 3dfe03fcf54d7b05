package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/capacity/internal/db"
	"github.com/alexanderramin/capacity/internal/domain"
)

// SQLiteTimesheetRepo implements TimesheetRepo using a SQLite database.
type SQLiteTimesheetRepo struct {
	db db.DBTX
}

// NewSQLiteTimesheetRepo creates a new SQLiteTimesheetRepo.
func NewSQLiteTimesheetRepo(db db.DBTX) *SQLiteTimesheetRepo {
	return &SQLiteTimesheetRepo{db: db}
}

const timesheetColumns = `id, task_id, user_id, entry_date, total_hours, note, created_at`

func (r *SQLiteTimesheetRepo) Create(ctx context.Context, e *domain.TimesheetEntry) error {
	created, _ := timestamps(e.CreatedAt, e.CreatedAt)
	query := `INSERT INTO timesheet_entries (` + timesheetColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.TaskID,
		e.UserID,
		e.Date.Format(dateLayout),
		e.TotalHours,
		e.Note,
		created,
	)
	if err != nil {
		return fmt.Errorf("inserting timesheet entry: %w", err)
	}
	return nil
}

func (r *SQLiteTimesheetRepo) ListByUser(ctx context.Context, userID string) ([]domain.TimesheetEntry, error) {
	return r.list(ctx, `SELECT `+timesheetColumns+` FROM timesheet_entries
		WHERE user_id = ? ORDER BY entry_date, created_at`, userID)
}

func (r *SQLiteTimesheetRepo) List(ctx context.Context) ([]domain.TimesheetEntry, error) {
	return r.list(ctx, `SELECT `+timesheetColumns+` FROM timesheet_entries ORDER BY entry_date, created_at`)
}

func (r *SQLiteTimesheetRepo) list(ctx context.Context, query string, args ...any) ([]domain.TimesheetEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing timesheet entries: %w", err)
	}
	defer rows.Close()

	var out []domain.TimesheetEntry
	for rows.Next() {
		e, err := scanTimesheet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timesheet entries: %w", err)
	}
	return out, nil
}

func scanTimesheet(rows *sql.Rows) (*domain.TimesheetEntry, error) {
	var e domain.TimesheetEntry
	var dateStr, createdStr string
	if err := rows.Scan(&e.ID, &e.TaskID, &e.UserID, &dateStr, &e.TotalHours, &e.Note, &createdStr); err != nil {
		return nil, fmt.Errorf("scanning timesheet entry: %w", err)
	}
	var err error
	if e.Date, err = time.Parse(dateLayout, dateStr); err != nil {
		return nil, fmt.Errorf("parsing entry_date: %w", err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &e, nil
}
