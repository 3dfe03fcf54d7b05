// Package capacity forecasts collaborator availability: committed versus free
// hours per month, task and backlog delivery dates, team saturation and the
// schedule impact of new work.
//
// Every computation is a pure function of an immutable Snapshot and the
// engine's notion of today. Nothing here performs I/O or returns errors;
// degenerate inputs produce zero counts and floored divisors instead.
package capacity

import (
	"math"
	"time"

	"github.com/alexanderramin/capacity/internal/calendar"
	"github.com/alexanderramin/capacity/internal/domain"
)

// Snapshot is a consistent read of every record the engine consumes.
type Snapshot struct {
	Users       []domain.User
	Projects    []domain.Project
	Members     []domain.ProjectMember
	Tasks       []domain.Task
	Timesheets  []domain.TimesheetEntry
	Holidays    []domain.Holiday
	Allocations []domain.TaskMemberAllocation
}

// Engine evaluates forecasts relative to a fixed "today".
type Engine struct {
	today      time.Time
	commitment CommitmentStrategy
}

type Option func(*Engine)

// WithCommitment replaces the continuous-commitment strategy.
func WithCommitment(s CommitmentStrategy) Option {
	return func(e *Engine) {
		if s != nil {
			e.commitment = s
		}
	}
}

// New creates an engine anchored at today's calendar date.
func New(today time.Time, opts ...Option) *Engine {
	e := &Engine{
		today:      calendar.Day(today),
		commitment: NoCommitment{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Today returns the anchor date.
func (e *Engine) Today() time.Time {
	return e.today
}

// minRealisticCap keeps realistic-date divisions finite when commitment
// consumes the whole day. It is not a capacity signal; IsSaturated is.
const minRealisticCap = 0.1

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// businessDaysFor converts hours into whole business days at the given rate.
func businessDaysFor(hours, perDay float64) int {
	return int(math.Ceil(hours / math.Max(minRealisticCap, perDay)))
}

type taskUser struct {
	taskID string
	userID string
}

// index holds per-call lookups built once from a snapshot.
type index struct {
	snap     Snapshot
	projects map[string]*domain.Project
	logged   map[taskUser]float64
	allocs   map[string][]domain.TaskMemberAllocation
}

func newIndex(snap Snapshot) *index {
	idx := &index{
		snap:     snap,
		projects: make(map[string]*domain.Project, len(snap.Projects)),
		logged:   make(map[taskUser]float64),
		allocs:   make(map[string][]domain.TaskMemberAllocation),
	}
	for i := range snap.Projects {
		idx.projects[snap.Projects[i].ID] = &snap.Projects[i]
	}
	for _, e := range snap.Timesheets {
		idx.logged[taskUser{e.TaskID, e.UserID}] += e.TotalHours
	}
	for _, a := range snap.Allocations {
		idx.allocs[a.TaskID] = append(idx.allocs[a.TaskID], a)
	}
	return idx
}

func (idx *index) project(id string) *domain.Project {
	return idx.projects[id]
}

// remaining returns the user's outstanding hours on the task.
func (idx *index) remaining(task *domain.Task, userID string) float64 {
	return RemainingEffort(task, userID, idx.allocs[task.ID], idx.logged[taskUser{task.ID, userID}])
}

// tasksOf returns the user's tasks in snapshot order.
func (idx *index) tasksOf(userID string) []*domain.Task {
	var tasks []*domain.Task
	for i := range idx.snap.Tasks {
		if idx.snap.Tasks[i].HasMember(userID) {
			tasks = append(tasks, &idx.snap.Tasks[i])
		}
	}
	return tasks
}
