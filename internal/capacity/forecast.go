package capacity

import (
	"time"

	"github.com/alexanderramin/capacity/internal/calendar"
	"github.com/alexanderramin/capacity/internal/domain"
)

// TaskForecast holds the delivery projections for a single task.
// IsSaturated is authoritative: when set, Realistic is only finite because of
// the minimum-capacity floor.
type TaskForecast struct {
	Ideal          *time.Time
	Realistic      *time.Time
	IsSaturated    bool
	RemainingHours float64
}

// ForecastTask projects when the task owner finishes the remaining effort,
// once at full focus (Ideal) and once net of continuous commitment (Realistic).
// Tasks without an owner or outside a planned project keep their estimated
// delivery for both dates.
func (e *Engine) ForecastTask(task domain.Task, snap Snapshot, dailyCap float64) TaskForecast {
	idx := newIndex(snap)

	p := idx.project(task.ProjectID)
	if task.DeveloperID == "" || p == nil || p.Type != domain.ProjectPlanned {
		return TaskForecast{Ideal: task.EstimatedDelivery, Realistic: task.EstimatedDelivery}
	}

	remaining := idx.remaining(&task, task.DeveloperID)
	if remaining <= 0 {
		done := domain.CoalesceTime(task.ActualDelivery, task.EstimatedDelivery)
		return TaskForecast{Ideal: done, Realistic: done}
	}

	ideal := calendar.AddBusinessDays(e.today, businessDaysFor(remaining, dailyCap), snap.Holidays)

	commitment := e.commitmentFor(task.DeveloperID, snap, dailyCap, nil)
	realisticCap := dailyCap - commitment
	realistic := calendar.AddBusinessDays(e.today, businessDaysFor(remaining, realisticCap), snap.Holidays)

	return TaskForecast{
		Ideal:          &ideal,
		Realistic:      &realistic,
		IsSaturated:    commitment >= dailyCap,
		RemainingHours: round2(remaining),
	}
}
