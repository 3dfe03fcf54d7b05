package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/capacity/internal/domain"
)

// ErrNotFound is wrapped by every GetByID when the row does not exist.
var ErrNotFound = errors.New("not found")

type UserRepo interface {
	Upsert(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type ProjectRepo interface {
	Upsert(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
}

type ProjectMemberRepo interface {
	Upsert(ctx context.Context, m domain.ProjectMember) error
	ListByProject(ctx context.Context, projectID string) ([]domain.ProjectMember, error)
	List(ctx context.Context) ([]domain.ProjectMember, error)
}

// TaskRepo persists tasks together with their collaborator lists.
// List includes soft-deleted rows; consumers decide whether they count.
type TaskRepo interface {
	Upsert(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
}

type AllocationRepo interface {
	Upsert(ctx context.Context, a domain.TaskMemberAllocation) error
	Delete(ctx context.Context, taskID, userID string) error
	ListByTask(ctx context.Context, taskID string) ([]domain.TaskMemberAllocation, error)
	List(ctx context.Context) ([]domain.TaskMemberAllocation, error)
}

type TimesheetRepo interface {
	Create(ctx context.Context, e *domain.TimesheetEntry) error
	ListByUser(ctx context.Context, userID string) ([]domain.TimesheetEntry, error)
	List(ctx context.Context) ([]domain.TimesheetEntry, error)
}

type HolidayRepo interface {
	Upsert(ctx context.Context, h *domain.Holiday) error
	List(ctx context.Context) ([]domain.Holiday, error)
}
