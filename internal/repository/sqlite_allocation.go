package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/capacity/internal/db"
	"github.com/alexanderramin/capacity/internal/domain"
)

// SQLiteAllocationRepo implements AllocationRepo using a SQLite database.
type SQLiteAllocationRepo struct {
	db db.DBTX
}

// NewSQLiteAllocationRepo creates a new SQLiteAllocationRepo.
func NewSQLiteAllocationRepo(db db.DBTX) *SQLiteAllocationRepo {
	return &SQLiteAllocationRepo{db: db}
}

func (r *SQLiteAllocationRepo) Upsert(ctx context.Context, a domain.TaskMemberAllocation) error {
	query := `INSERT INTO task_allocations (task_id, user_id, reserved_hours)
		VALUES (?, ?, ?)
		ON CONFLICT(task_id, user_id) DO UPDATE SET reserved_hours = excluded.reserved_hours`
	if _, err := r.db.ExecContext(ctx, query, a.TaskID, a.UserID, a.ReservedHours); err != nil {
		return fmt.Errorf("upserting task allocation: %w", err)
	}
	return nil
}

func (r *SQLiteAllocationRepo) Delete(ctx context.Context, taskID, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM task_allocations WHERE task_id = ? AND user_id = ?`, taskID, userID)
	if err != nil {
		return fmt.Errorf("deleting task allocation: %w", err)
	}
	return nil
}

func (r *SQLiteAllocationRepo) ListByTask(ctx context.Context, taskID string) ([]domain.TaskMemberAllocation, error) {
	return r.list(ctx, `SELECT task_id, user_id, reserved_hours FROM task_allocations
		WHERE task_id = ? ORDER BY user_id`, taskID)
}

func (r *SQLiteAllocationRepo) List(ctx context.Context) ([]domain.TaskMemberAllocation, error) {
	return r.list(ctx, `SELECT task_id, user_id, reserved_hours FROM task_allocations ORDER BY task_id, user_id`)
}

func (r *SQLiteAllocationRepo) list(ctx context.Context, query string, args ...any) ([]domain.TaskMemberAllocation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing task allocations: %w", err)
	}
	defer rows.Close()

	var out []domain.TaskMemberAllocation
	for rows.Next() {
		var a domain.TaskMemberAllocation
		if err := rows.Scan(&a.TaskID, &a.UserID, &a.ReservedHours); err != nil {
			return nil, fmt.Errorf("scanning task allocation: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task allocations: %w", err)
	}
	return out, nil
}
