package service

import (
	"fmt"
	"time"

	"github.com/alexanderramin/capacity/internal/app"
	"github.com/alexanderramin/capacity/internal/calendar"
	"github.com/alexanderramin/capacity/internal/capacity"
	"github.com/alexanderramin/capacity/internal/domain"
)

// Clock returns the current calendar date.
type Clock func() time.Time

// UTCClock reads today's date from the system clock in UTC.
func UTCClock() time.Time {
	return calendar.Day(time.Now().UTC())
}

// resolveToday prefers the request override, then the service clock.
func resolveToday(now *time.Time, clock Clock) time.Time {
	if now != nil {
		return calendar.Day(*now)
	}
	if clock == nil {
		return UTCClock()
	}
	return calendar.Day(clock())
}

// resolveMonth parses YYYY-MM, defaulting to the month containing today.
func resolveMonth(s string, today time.Time) (calendar.Month, error) {
	if s == "" {
		return calendar.MonthOf(today), nil
	}
	m, err := calendar.ParseMonth(s)
	if err != nil {
		return calendar.Month{}, &app.CapacityError{Code: app.CapacityErrInvalidMonth, Message: err.Error()}
	}
	return m, nil
}

// resolveDate parses YYYY-MM-DD, defaulting to fallback.
func resolveDate(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	d, err := calendar.ParseDate(s)
	if err != nil {
		return time.Time{}, &app.CapacityError{Code: app.CapacityErrInvalidDate, Message: err.Error()}
	}
	return d, nil
}

func findUser(snap capacity.Snapshot, id string) (domain.User, error) {
	for _, u := range snap.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, &app.CapacityError{
		Code:    app.CapacityErrUserNotFound,
		Message: fmt.Sprintf("user %q not found", id),
	}
}

func findTask(snap capacity.Snapshot, id string) (domain.Task, error) {
	for _, t := range snap.Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Task{}, &app.CapacityError{
		Code:    app.CapacityErrTaskNotFound,
		Message: fmt.Sprintf("task %q not found", id),
	}
}
