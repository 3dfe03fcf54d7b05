package domain

import (
	"fmt"
	"time"
)

type Task struct {
	ID              string
	ProjectID       string
	Title           string
	DeveloperID     string
	CollaboratorIDs []string
	Status          TaskStatus
	DeletedAt       *time.Time

	EstimatedHours float64
	Progress       int

	ScheduledStart    *time.Time
	ActualStart       *time.Time
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsClosed reports whether the task can no longer consume anyone's capacity.
func (t *Task) IsClosed() bool {
	return t.Status == TaskDone || t.Status == TaskCancelled || t.DeletedAt != nil
}

// Team returns the distinct non-empty member IDs: owner first, then collaborators.
func (t *Task) Team() []string {
	seen := make(map[string]bool, len(t.CollaboratorIDs)+1)
	var team []string
	for _, id := range append([]string{t.DeveloperID}, t.CollaboratorIDs...) {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		team = append(team, id)
	}
	return team
}

// HasMember reports whether userID owns or collaborates on the task.
func (t *Task) HasMember(userID string) bool {
	if userID == "" {
		return false
	}
	if t.DeveloperID == userID {
		return true
	}
	for _, id := range t.CollaboratorIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// MarkDeleted soft-deletes the task.
func (t *Task) MarkDeleted(now time.Time) error {
	if t.DeletedAt != nil {
		return fmt.Errorf("task %s is already deleted", t.ID)
	}
	t.DeletedAt = &now
	t.UpdatedAt = now
	return nil
}

// TaskMemberAllocation is an explicit per-user hour reservation on a task.
// When any row exists for a task it replaces the even split of EstimatedHours.
type TaskMemberAllocation struct {
	TaskID        string
	UserID        string
	ReservedHours float64
}
