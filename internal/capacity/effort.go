package capacity

import (
	"math"

	"github.com/alexanderramin/capacity/internal/domain"
)

// EffortSource tags how a user's share of a task was resolved.
type EffortSource string

const (
	// EffortExplicit: the user has a TaskMemberAllocation with positive hours.
	EffortExplicit EffortSource = "explicit"
	// EffortEvenSplit: the task has no allocation rows; estimate split across the team.
	EffortEvenSplit EffortSource = "even_split"
	// EffortNone: other members hold explicit allocations and this user does not,
	// or the user is not on the task.
	EffortNone EffortSource = "none"
)

type Effort struct {
	Hours  float64
	Source EffortSource
}

// ResolveEffort applies the allocation precedence for one user on one task.
// allocations may contain rows for other tasks; they are ignored.
func ResolveEffort(task *domain.Task, userID string, allocations []domain.TaskMemberAllocation) Effort {
	hasRows := false
	for _, a := range allocations {
		if a.TaskID != task.ID {
			continue
		}
		hasRows = true
		if a.UserID == userID && a.ReservedHours > 0 {
			return Effort{Hours: a.ReservedHours, Source: EffortExplicit}
		}
	}
	if hasRows || !task.HasMember(userID) {
		return Effort{Source: EffortNone}
	}
	team := len(task.Team())
	return Effort{
		Hours:  task.EstimatedHours / float64(max(1, team)),
		Source: EffortEvenSplit,
	}
}

// RemainingEffort is the user's resolved effort minus hours already logged,
// floored at zero. Closed tasks have nothing remaining.
func RemainingEffort(task *domain.Task, userID string, allocations []domain.TaskMemberAllocation, loggedHours float64) float64 {
	if task.IsClosed() {
		return 0
	}
	effort := ResolveEffort(task, userID, allocations)
	return math.Max(0, effort.Hours-loggedHours)
}
