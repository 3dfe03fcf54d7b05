package domain

import "time"

type TimesheetEntry struct {
	ID         string
	TaskID     string
	UserID     string
	Date       time.Time
	TotalHours float64
	Note       string
	CreatedAt  time.Time
}

// Holiday is a closed date interval excluded from business days.
// A nil EndDate means a single day.
type Holiday struct {
	ID      string
	Name    string
	Date    time.Time
	EndDate *time.Time
}

// Last returns the inclusive end of the holiday interval.
func (h Holiday) Last() time.Time {
	if h.EndDate != nil {
		return *h.EndDate
	}
	return h.Date
}
