package capacity

import (
	"math"
	"time"

	"github.com/alexanderramin/capacity/internal/calendar"
	"github.com/alexanderramin/capacity/internal/domain"
)

// DayAllocation splits one day of a user's capacity between planned work,
// continuous commitment and free buffer.
type DayAllocation struct {
	Date            time.Time
	IsWorkingDay    bool
	PlannedHours    float64
	ContinuousHours float64
	BufferHours     float64
	TotalOccupancy  float64
	ActiveTaskIDs   []string
}

// SimulateDailyAllocation projects the user's day-by-day occupancy over
// [start, end]. A working day with any active planned task is fully booked
// for planned work after continuous commitment.
func (e *Engine) SimulateDailyAllocation(userID string, start, end time.Time, snap Snapshot, dailyCap float64) []DayAllocation {
	idx := newIndex(snap)
	candidates := idx.plannedOpenTasks(userID)

	days := calendar.Days(start, end)
	out := make([]DayAllocation, 0, len(days))
	for _, day := range days {
		alloc := DayAllocation{Date: day}
		if !calendar.IsBusinessDay(day, snap.Holidays) {
			out = append(out, alloc)
			continue
		}
		alloc.IsWorkingDay = true

		for _, t := range candidates {
			if idx.activeOn(t, day) {
				alloc.ActiveTaskIDs = append(alloc.ActiveTaskIDs, t.ID)
			}
		}

		d := day
		commitment := e.commitmentFor(userID, snap, dailyCap, &d)
		availableForPlanned := math.Max(0, dailyCap-commitment)

		alloc.ContinuousHours = round2(commitment)
		if len(alloc.ActiveTaskIDs) > 0 {
			alloc.PlannedHours = round2(availableForPlanned)
		} else {
			alloc.BufferHours = round2(math.Max(0, dailyCap-commitment))
		}
		alloc.TotalOccupancy = round2(alloc.PlannedHours + alloc.ContinuousHours)
		out = append(out, alloc)
	}
	return out
}

// plannedOpenTasks returns the user's open tasks on planned projects.
func (idx *index) plannedOpenTasks(userID string) []*domain.Task {
	var out []*domain.Task
	for _, t := range idx.tasksOf(userID) {
		if t.IsClosed() {
			continue
		}
		p := idx.project(t.ProjectID)
		if p == nil || p.Type != domain.ProjectPlanned {
			continue
		}
		out = append(out, t)
	}
	return out
}

// activeOn reports whether day falls in the task's planned window
// [scheduledStart ?? actualStart ?? projectStart, estimatedDelivery].
// A task without a delivery date has no window; a missing start leaves the
// window open on the left.
func (idx *index) activeOn(t *domain.Task, day time.Time) bool {
	if t.EstimatedDelivery == nil {
		return false
	}
	var projectStart *time.Time
	if p := idx.project(t.ProjectID); p != nil {
		projectStart = p.StartDate
	}
	if start := domain.CoalesceTime(t.ScheduledStart, t.ActualStart, projectStart); start != nil &&
		day.Before(calendar.Day(*start)) {
		return false
	}
	return !day.After(calendar.Day(*t.EstimatedDelivery))
}
