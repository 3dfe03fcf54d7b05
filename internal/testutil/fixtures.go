package testutil

import (
	"time"

	"github.com/alexanderramin/capacity/internal/domain"
	"github.com/google/uuid"
)

// Date returns UTC midnight for the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// User options
type UserOption func(*domain.User)

func WithDailyHours(h float64) UserOption {
	return func(u *domain.User) {
		u.DailyAvailableHours = h
	}
}

func WithTorre(torre string) UserOption {
	return func(u *domain.User) {
		u.Torre = torre
	}
}

func WithUserInactive() UserOption {
	return func(u *domain.User) {
		u.Active = false
	}
}

func NewTestUser(name string, opts ...UserOption) *domain.User {
	now := time.Now().UTC()
	u := &domain.User{
		ID:                  uuid.New().String(),
		Name:                name,
		DailyAvailableHours: domain.DefaultDailyHours,
		Torre:               "Dev",
		Active:              true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectType(t domain.ProjectType) ProjectOption {
	return func(p *domain.Project) {
		p.Type = t
	}
}

func WithProjectWindow(start, delivery time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = &start
		p.EstimatedDelivery = &delivery
	}
}

func WithProjectInactive() ProjectOption {
	return func(p *domain.Project) {
		p.Active = false
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Client:    "ACME",
		Type:      domain.ProjectPlanned,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithDeveloper(userID string) TaskOption {
	return func(t *domain.Task) {
		t.DeveloperID = userID
	}
}

func WithCollaborators(userIDs ...string) TaskOption {
	return func(t *domain.Task) {
		t.CollaboratorIDs = userIDs
	}
}

func WithEstimatedHours(h float64) TaskOption {
	return func(t *domain.Task) {
		t.EstimatedHours = h
	}
}

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithTaskWindow(start, delivery time.Time) TaskOption {
	return func(t *domain.Task) {
		t.ScheduledStart = &start
		t.EstimatedDelivery = &delivery
	}
}

func WithProgress(p int) TaskOption {
	return func(t *domain.Task) {
		t.Progress = p
	}
}

func NewTestTask(projectID, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:             uuid.New().String(),
		ProjectID:      projectID,
		Title:          title,
		Status:         domain.TaskTodo,
		EstimatedHours: 8,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Timesheet options
type TimesheetOption func(*domain.TimesheetEntry)

func WithNote(n string) TimesheetOption {
	return func(e *domain.TimesheetEntry) {
		e.Note = n
	}
}

func NewTestTimesheet(taskID, userID string, date time.Time, hours float64, opts ...TimesheetOption) *domain.TimesheetEntry {
	e := &domain.TimesheetEntry{
		ID:         uuid.New().String(),
		TaskID:     taskID,
		UserID:     userID,
		Date:       date,
		TotalHours: hours,
		CreatedAt:  time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
