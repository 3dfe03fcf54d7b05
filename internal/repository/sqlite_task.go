package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/capacity/internal/db"
	"github.com/alexanderramin/capacity/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(db db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

const taskColumns = `id, project_id, title, developer_id, status, deleted_at, estimated_hours, progress,
	scheduled_start, actual_start, estimated_delivery, actual_delivery, created_at, updated_at`

func (r *SQLiteTaskRepo) Upsert(ctx context.Context, t *domain.Task) error {
	created, updated := timestamps(t.CreatedAt, t.UpdatedAt)
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id,
			title = excluded.title,
			developer_id = excluded.developer_id,
			status = excluded.status,
			deleted_at = excluded.deleted_at,
			estimated_hours = excluded.estimated_hours,
			progress = excluded.progress,
			scheduled_start = excluded.scheduled_start,
			actual_start = excluded.actual_start,
			estimated_delivery = excluded.estimated_delivery,
			actual_delivery = excluded.actual_delivery,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.Title,
		nullableString(t.DeveloperID),
		string(t.Status),
		nullableTimeToString(t.DeletedAt, time.RFC3339),
		t.EstimatedHours,
		t.Progress,
		nullableTimeToString(t.ScheduledStart, dateLayout),
		nullableTimeToString(t.ActualStart, dateLayout),
		nullableTimeToString(t.EstimatedDelivery, dateLayout),
		nullableTimeToString(t.ActualDelivery, dateLayout),
		created,
		updated,
	)
	if err != nil {
		return fmt.Errorf("upserting task: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM task_collaborators WHERE task_id = ?`, t.ID); err != nil {
		return fmt.Errorf("clearing task collaborators: %w", err)
	}
	for _, userID := range t.CollaboratorIDs {
		if userID == "" {
			continue
		}
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO task_collaborators (task_id, user_id) VALUES (?, ?)`, t.ID, userID)
		if err != nil {
			return fmt.Errorf("inserting task collaborator: %w", err)
		}
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	collaborators, err := r.collaborators(ctx, `WHERE task_id = ?`, id)
	if err != nil {
		return nil, err
	}
	t.CollaboratorIDs = collaborators[id]
	return t, nil
}

func (r *SQLiteTaskRepo) List(ctx context.Context) ([]domain.Task, error) {
	tasks, err := r.listTasks(ctx)
	if err != nil {
		return nil, err
	}
	// Collaborators are read after the task cursor is closed; an in-memory
	// store has a single connection.
	collaborators, err := r.collaborators(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].CollaboratorIDs = collaborators[tasks[i].ID]
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := t.MarkDeleted(at.UTC()); err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `UPDATE tasks SET deleted_at = ?, updated_at = ? WHERE id = ?`,
		t.DeletedAt.Format(time.RFC3339), t.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) listTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// collaborators returns collaborator IDs keyed by task, in insertion order.
func (r *SQLiteTaskRepo) collaborators(ctx context.Context, where string, args ...any) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT task_id, user_id FROM task_collaborators `+where+` ORDER BY task_id, rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing task collaborators: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var taskID, userID string
		if err := rows.Scan(&taskID, &userID); err != nil {
			return nil, fmt.Errorf("scanning task collaborator: %w", err)
		}
		out[taskID] = append(out[taskID], userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task collaborators: %w", err)
	}
	return out, nil
}

func scanTask(s scanner) (*domain.Task, error) {
	var t domain.Task
	var statusStr, createdStr, updatedStr string
	var developerID, deletedStr, scheduledStr, startStr, deliveryStr, deliveredStr sql.NullString

	err := s.Scan(
		&t.ID, &t.ProjectID, &t.Title, &developerID, &statusStr, &deletedStr,
		&t.EstimatedHours, &t.Progress,
		&scheduledStr, &startStr, &deliveryStr, &deliveredStr,
		&createdStr, &updatedStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.DeveloperID = developerID.String
	t.Status = domain.TaskStatus(statusStr)
	t.DeletedAt = parseNullableTime(deletedStr, time.RFC3339)
	t.ScheduledStart = parseNullableTime(scheduledStr, dateLayout)
	t.ActualStart = parseNullableTime(startStr, dateLayout)
	t.EstimatedDelivery = parseNullableTime(deliveryStr, dateLayout)
	t.ActualDelivery = parseNullableTime(deliveredStr, dateLayout)
	if err := parseTimestamps(createdStr, updatedStr, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
