package capacity

import (
	"sort"
	"time"

	"github.com/alexanderramin/capacity/internal/calendar"
	"github.com/alexanderramin/capacity/internal/domain"
)

const (
	highOccupancyRate       = 0.85
	overloadedOccupancyRate = 1.0
)

// StatusForRate classifies an occupancy rate (1.0 = fully booked).
func StatusForRate(rate float64) domain.OccupancyStatus {
	switch {
	case rate > overloadedOccupancyRate:
		return domain.OccupancyOverloaded
	case rate >= highOccupancyRate:
		return domain.OccupancyHigh
	default:
		return domain.OccupancyAvailable
	}
}

// ProjectHours is one project's share of a user's monthly occupancy.
type ProjectHours struct {
	ProjectID   string
	ProjectName string
	Hours       float64
}

type Breakdown struct {
	Planned    []ProjectHours
	Continuous []ProjectHours
}

// MonthlyAvailability is a user's capacity and forecast occupancy for the
// not-yet-elapsed part of a month. Allocated mirrors TotalOccupancy and
// Available mirrors Balance.
type MonthlyAvailability struct {
	UserID          string
	Month           calendar.Month
	Start           time.Time
	End             time.Time
	Capacity        float64
	PlannedHours    float64
	ContinuousHours float64
	TotalOccupancy  float64
	OccupancyRate   float64
	Balance         float64
	Status          domain.OccupancyStatus
	Allocated       float64
	Available       float64
	Breakdown       Breakdown
}

// MonthlyAvailability spreads each open task's remaining effort evenly over the
// business days of its window and sums the share falling into the month.
// For the current month only days from today onward count. Overdue effort
// collapses onto today.
func (e *Engine) MonthlyAvailability(user domain.User, month calendar.Month, snap Snapshot) MonthlyAvailability {
	a, _ := e.monthly(user, month, snap)
	return a
}

// monthly also returns the unrounded occupancy rate for threshold checks.
func (e *Engine) monthly(user domain.User, month calendar.Month, snap Snapshot) (MonthlyAvailability, float64) {
	idx := newIndex(snap)

	monthStart, monthEnd := month.First(), month.Last()
	start := monthStart
	if calendar.MonthOf(e.today) == month {
		start = e.today
	}
	end := monthEnd

	capacity := user.DailyCapacity() * float64(calendar.WorkingDaysInRange(start, end, snap.Holidays))

	planned := newHoursAccumulator()
	continuous := newHoursAccumulator()

	for _, t := range idx.tasksOf(user.ID) {
		if t.IsClosed() {
			continue
		}
		remaining := idx.remaining(t, user.ID)
		if remaining <= 0 {
			continue
		}

		p := idx.project(t.ProjectID)
		var projectStart, projectEnd *time.Time
		if p != nil {
			projectStart, projectEnd = p.StartDate, p.EstimatedDelivery
		}
		taskStart := calendar.Day(*domain.CoalesceTime(t.ScheduledStart, t.ActualStart, projectStart, &monthStart))
		taskEnd := calendar.Day(*domain.CoalesceTime(t.EstimatedDelivery, projectEnd, &monthEnd))

		effStart := calendar.MaxDay(taskStart, e.today)
		effEnd := calendar.MaxDay(taskEnd, e.today)

		taskDays := max(1, calendar.WorkingDaysInRange(effStart, effEnd, snap.Holidays))
		perDay := remaining / float64(taskDays)

		overlap := calendar.WorkingDaysInRange(
			calendar.MaxDay(effStart, start),
			calendar.MinDay(effEnd, end),
			snap.Holidays,
		)
		hours := perDay * float64(overlap)
		if hours == 0 {
			continue
		}

		projectID, projectName := t.ProjectID, t.ProjectID
		if p != nil {
			projectName = p.Name
		}
		if p != nil && p.IsContinuous() {
			continuous.add(projectID, projectName, hours)
		} else {
			planned.add(projectID, projectName, hours)
		}
	}

	total := planned.total + continuous.total
	var rate float64
	if capacity > 0 {
		rate = total / capacity
	}
	balance := capacity - total

	return MonthlyAvailability{
		UserID:          user.ID,
		Month:           month,
		Start:           start,
		End:             end,
		Capacity:        round2(capacity),
		PlannedHours:    round2(planned.total),
		ContinuousHours: round2(continuous.total),
		TotalOccupancy:  round2(total),
		OccupancyRate:   round2(rate),
		Balance:         round2(balance),
		Status:          StatusForRate(rate),
		Allocated:       round2(total),
		Available:       round2(balance),
		Breakdown: Breakdown{
			Planned:    planned.list(),
			Continuous: continuous.list(),
		},
	}, rate
}

type hoursAccumulator struct {
	total float64
	order []string
	byID  map[string]*ProjectHours
}

func newHoursAccumulator() *hoursAccumulator {
	return &hoursAccumulator{byID: make(map[string]*ProjectHours)}
}

func (a *hoursAccumulator) add(projectID, name string, hours float64) {
	a.total += hours
	ph, ok := a.byID[projectID]
	if !ok {
		ph = &ProjectHours{ProjectID: projectID, ProjectName: name}
		a.byID[projectID] = ph
		a.order = append(a.order, projectID)
	}
	ph.Hours += hours
}

// list returns per-project hours, largest first.
func (a *hoursAccumulator) list() []ProjectHours {
	out := make([]ProjectHours, 0, len(a.order))
	for _, id := range a.order {
		ph := *a.byID[id]
		ph.Hours = round2(ph.Hours)
		out = append(out, ph)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Hours != out[j].Hours {
			return out[i].Hours > out[j].Hours
		}
		return out[i].ProjectName < out[j].ProjectName
	})
	return out
}
