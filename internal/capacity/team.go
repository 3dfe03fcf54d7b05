package capacity

import (
	"math"
	"sort"

	"github.com/alexanderramin/capacity/internal/calendar"
	"github.com/alexanderramin/capacity/internal/domain"
)

// trendMonths is the current month plus the three that follow.
const trendMonths = 4

// TrendPoint summarizes team load for one month.
type TrendPoint struct {
	Month calendar.Month
	// SaturationRate is the percentage (0-100) of users at or above full occupancy.
	SaturationRate float64
	// AvgLoad is the mean occupancy rate expressed as a percentage, so 100
	// means the average user is fully booked. It can exceed 100.
	AvgLoad float64
}

// OperationalUsers filters out inactive users and the non-operational torre.
func OperationalUsers(users []domain.User) []domain.User {
	var out []domain.User
	for _, u := range users {
		if u.IsOperational() {
			out = append(out, u)
		}
	}
	return out
}

// UserAvailability pairs a user with their monthly availability.
type UserAvailability struct {
	User         domain.User
	Availability MonthlyAvailability
}

// TeamAvailability computes the month for every operational user, busiest first.
func (e *Engine) TeamAvailability(month calendar.Month, snap Snapshot) []UserAvailability {
	users := OperationalUsers(snap.Users)
	out := make([]UserAvailability, 0, len(users))
	for _, u := range users {
		out = append(out, UserAvailability{User: u, Availability: e.MonthlyAvailability(u, month, snap)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Availability.OccupancyRate, out[j].Availability.OccupancyRate
		if ri != rj {
			return ri > rj
		}
		return out[i].User.Name < out[j].User.Name
	})
	return out
}

// SaturationTrend reports, for the current month and the next three, the share
// of operational users at or above full occupancy and the mean occupancy.
func (e *Engine) SaturationTrend(snap Snapshot) []TrendPoint {
	users := OperationalUsers(snap.Users)
	current := calendar.MonthOf(e.today)

	points := make([]TrendPoint, 0, trendMonths)
	for i := 0; i < trendMonths; i++ {
		month := current.Add(i)
		point := TrendPoint{Month: month}
		if len(users) > 0 {
			saturated := 0
			var loadSum float64
			for _, u := range users {
				_, rate := e.monthly(u, month, snap)
				if rate >= overloadedOccupancyRate {
					saturated++
				}
				loadSum += rate
			}
			n := float64(len(users))
			point.SaturationRate = round2(float64(saturated) / n * 100)
			point.AvgLoad = round2(loadSum / n * 100)
		}
		points = append(points, point)
	}
	return points
}

// TeamElasticity is the percentage of operational capacity still free in the
// month. Overloaded users contribute zero, never a negative share.
func (e *Engine) TeamElasticity(month calendar.Month, snap Snapshot) float64 {
	var free, capacity float64
	for _, u := range OperationalUsers(snap.Users) {
		a := e.MonthlyAvailability(u, month, snap)
		free += math.Max(0, a.Available)
		capacity += a.Capacity
	}
	if capacity == 0 {
		return 0
	}
	return round2(free / capacity * 100)
}
