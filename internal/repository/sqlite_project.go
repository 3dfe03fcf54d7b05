package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/capacity/internal/db"
	"github.com/alexanderramin/capacity/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(db db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: db}
}

const projectColumns = `id, name, client, project_type, start_date, estimated_delivery, active, created_at, updated_at`

func (r *SQLiteProjectRepo) Upsert(ctx context.Context, p *domain.Project) error {
	created, updated := timestamps(p.CreatedAt, p.UpdatedAt)
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			client = excluded.client,
			project_type = excluded.project_type,
			start_date = excluded.start_date,
			estimated_delivery = excluded.estimated_delivery,
			active = excluded.active,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Client,
		string(p.Type),
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.EstimatedDelivery, dateLayout),
		boolToInt(p.Active),
		created,
		updated,
	)
	if err != nil {
		return fmt.Errorf("upserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return p, err
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func scanProject(s scanner) (*domain.Project, error) {
	var p domain.Project
	var typeStr, createdStr, updatedStr string
	var startStr, deliveryStr sql.NullString
	var active int

	err := s.Scan(&p.ID, &p.Name, &p.Client, &typeStr, &startStr, &deliveryStr, &active, &createdStr, &updatedStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Type = domain.ProjectType(typeStr)
	p.Active = intToBool(active)
	p.StartDate = parseNullableTime(startStr, dateLayout)
	p.EstimatedDelivery = parseNullableTime(deliveryStr, dateLayout)
	if err := parseTimestamps(createdStr, updatedStr, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// SQLiteProjectMemberRepo implements ProjectMemberRepo using a SQLite database.
type SQLiteProjectMemberRepo struct {
	db db.DBTX
}

// NewSQLiteProjectMemberRepo creates a new SQLiteProjectMemberRepo.
func NewSQLiteProjectMemberRepo(db db.DBTX) *SQLiteProjectMemberRepo {
	return &SQLiteProjectMemberRepo{db: db}
}

func (r *SQLiteProjectMemberRepo) Upsert(ctx context.Context, m domain.ProjectMember) error {
	query := `INSERT INTO project_members (project_id, user_id, allocation_percentage)
		VALUES (?, ?, ?)
		ON CONFLICT(project_id, user_id) DO UPDATE SET allocation_percentage = excluded.allocation_percentage`
	if _, err := r.db.ExecContext(ctx, query, m.ProjectID, m.UserID, m.AllocationPercentage); err != nil {
		return fmt.Errorf("upserting project member: %w", err)
	}
	return nil
}

func (r *SQLiteProjectMemberRepo) ListByProject(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	return r.list(ctx, `SELECT project_id, user_id, allocation_percentage
		FROM project_members WHERE project_id = ? ORDER BY user_id`, projectID)
}

func (r *SQLiteProjectMemberRepo) List(ctx context.Context) ([]domain.ProjectMember, error) {
	return r.list(ctx, `SELECT project_id, user_id, allocation_percentage
		FROM project_members ORDER BY project_id, user_id`)
}

func (r *SQLiteProjectMemberRepo) list(ctx context.Context, query string, args ...any) ([]domain.ProjectMember, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing project members: %w", err)
	}
	defer rows.Close()

	var members []domain.ProjectMember
	for rows.Next() {
		var m domain.ProjectMember
		if err := rows.Scan(&m.ProjectID, &m.UserID, &m.AllocationPercentage); err != nil {
			return nil, fmt.Errorf("scanning project member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project members: %w", err)
	}
	return members, nil
}
