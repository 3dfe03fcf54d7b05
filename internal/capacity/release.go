package capacity

import (
	"time"

	"github.com/alexanderramin/capacity/internal/calendar"
	"github.com/alexanderramin/capacity/internal/domain"
)

// ReleaseForecast is the date a user clears their whole active backlog.
type ReleaseForecast struct {
	Ideal          time.Time
	Realistic      time.Time
	IsSaturated    bool
	RemainingHours float64
	TaskCount      int
}

// IndividualReleaseDate rolls every open task the user works on, in active
// projects, into one backlog and projects when it clears. It returns nil when
// the user has no such task or nothing left to do.
func (e *Engine) IndividualReleaseDate(user domain.User, snap Snapshot) *ReleaseForecast {
	idx := newIndex(snap)

	var total float64
	count := 0
	for _, t := range idx.tasksOf(user.ID) {
		if t.IsClosed() {
			continue
		}
		p := idx.project(t.ProjectID)
		if p == nil || !p.Active {
			continue
		}
		count++
		total += idx.remaining(t, user.ID)
	}
	if count == 0 || total <= 0 {
		return nil
	}

	dailyCap := user.DailyCapacity()
	commitment := e.commitmentFor(user.ID, snap, dailyCap, nil)

	return &ReleaseForecast{
		Ideal:          calendar.AddBusinessDays(e.today, businessDaysFor(total, dailyCap), snap.Holidays),
		Realistic:      calendar.AddBusinessDays(e.today, businessDaysFor(total, dailyCap-commitment), snap.Holidays),
		IsSaturated:    commitment >= dailyCap,
		RemainingHours: round2(total),
		TaskCount:      count,
	}
}
