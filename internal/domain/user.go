package domain

import "time"

type User struct {
	ID                  string
	Name                string
	Email               string
	DailyAvailableHours float64
	Torre               string
	Active              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DailyCapacity returns the configured daily hours, defaulting to 8.
func (u *User) DailyCapacity() float64 {
	if u.DailyAvailableHours > 0 {
		return u.DailyAvailableHours
	}
	return DefaultDailyHours
}

// IsOperational reports whether the user counts toward team capacity.
func (u *User) IsOperational() bool {
	return u.Active && u.Torre != NonOperationalTorre
}
