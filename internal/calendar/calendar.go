// Package calendar implements business-day arithmetic over holiday-adjusted
// date ranges. All dates are normalized to UTC midnight; bounds are inclusive.
package calendar

import (
	"fmt"
	"time"

	"github.com/alexanderramin/capacity/internal/domain"
)

const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC, keeping its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalized day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// MaxDay returns the later of a and b.
func MaxDay(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// MinDay returns the earlier of a and b.
func MinDay(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// Within reports whether day lies in [start, end].
func Within(day, start, end time.Time) bool {
	return !day.Before(start) && !day.After(end)
}

// IsHoliday reports whether day falls inside any holiday interval.
func IsHoliday(day time.Time, holidays []domain.Holiday) bool {
	day = Day(day)
	for _, h := range holidays {
		if Within(day, Day(h.Date), Day(h.Last())) {
			return true
		}
	}
	return false
}

// IsBusinessDay reports whether day is a weekday outside every holiday.
func IsBusinessDay(day time.Time, holidays []domain.Holiday) bool {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !IsHoliday(day, holidays)
}

// WorkingDaysInRange counts business days in [start, end]. A reversed range
// counts zero.
func WorkingDaysInRange(start, end time.Time, holidays []domain.Holiday) int {
	start, end = Day(start), Day(end)
	if start.After(end) {
		return 0
	}
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d, holidays) {
			count++
		}
	}
	return count
}

// WorkingDaysInMonth counts business days in the calendar month.
func WorkingDaysInMonth(m Month, holidays []domain.Holiday) int {
	return WorkingDaysInRange(m.First(), m.Last(), holidays)
}

// AddBusinessDays advances from start by n business days. The start day itself
// is never counted; n <= 0 returns start unchanged.
func AddBusinessDays(start time.Time, n int, holidays []domain.Holiday) time.Time {
	d := Day(start)
	for added := 0; added < n; {
		d = d.AddDate(0, 0, 1)
		if IsBusinessDay(d, holidays) {
			added++
		}
	}
	return d
}

// Days lists every calendar day in [start, end].
func Days(start, end time.Time) []time.Time {
	start, end = Day(start), Day(end)
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
