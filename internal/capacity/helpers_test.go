package capacity

import (
	"time"

	"github.com/alexanderramin/capacity/internal/domain"
)

// testToday is a Monday.
var testToday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func dp(y int, m time.Month, day int) *time.Time {
	t := d(y, m, day)
	return &t
}

func user(id string) domain.User {
	return domain.User{ID: id, Name: "User " + id, DailyAvailableHours: 8, Torre: "Dev", Active: true}
}

func plannedProject(id string) domain.Project {
	return domain.Project{ID: id, Name: "Project " + id, Type: domain.ProjectPlanned, Active: true}
}

func continuousProject(id string) domain.Project {
	return domain.Project{ID: id, Name: "Project " + id, Type: domain.ProjectContinuous, Active: true}
}

type taskOpt func(*domain.Task)

func window(start, end *time.Time) taskOpt {
	return func(t *domain.Task) {
		t.ScheduledStart = start
		t.EstimatedDelivery = end
	}
}

func collaborators(ids ...string) taskOpt {
	return func(t *domain.Task) { t.CollaboratorIDs = ids }
}

func status(s domain.TaskStatus) taskOpt {
	return func(t *domain.Task) { t.Status = s }
}

func task(id, projectID, owner string, hours float64, opts ...taskOpt) domain.Task {
	t := domain.Task{
		ID:             id,
		ProjectID:      projectID,
		Title:          "Task " + id,
		DeveloperID:    owner,
		Status:         domain.TaskTodo,
		EstimatedHours: hours,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func logged(taskID, userID string, hours float64) domain.TimesheetEntry {
	return domain.TimesheetEntry{TaskID: taskID, UserID: userID, Date: testToday.AddDate(0, 0, -3), TotalHours: hours}
}

// fixedCommitment reserves the same hours every day.
type fixedCommitment float64

func (f fixedCommitment) DailyCommitment(string, []domain.Project, []domain.ProjectMember, float64, *time.Time) float64 {
	return float64(f)
}
