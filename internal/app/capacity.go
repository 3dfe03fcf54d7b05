package app

import (
	"time"

	"github.com/alexanderramin/capacity/internal/capacity"
	"github.com/alexanderramin/capacity/internal/domain"
)

// Month fields use YYYY-MM and date fields YYYY-MM-DD. Empty values default
// relative to Now, which itself defaults to the configured today.

type AvailabilityRequest struct {
	Now    *time.Time
	UserID string
	Month  string
}

type AvailabilityResponse struct {
	User         domain.User
	Availability capacity.MonthlyAvailability
}

type TeamOverviewRequest struct {
	Now   *time.Time
	Month string
}

type TeamOverviewResponse struct {
	Month      string
	Members    []capacity.UserAvailability
	Elasticity float64
}

type DailyAllocationRequest struct {
	Now    *time.Time
	UserID string
	From   string
	To     string
}

// DefaultDailyWindow is the number of calendar days simulated when To is empty.
const DefaultDailyWindow = 14

type DailyAllocationResponse struct {
	User          domain.User
	DailyCapacity float64
	Days          []capacity.DayAllocation
}

// ForecastTaskRequest forecasts a task at the daily capacity of UserID,
// or of the task owner when UserID is empty. The remaining effort is always
// the owner's; UserID only changes the daily capacity used to burn it down.
type ForecastTaskRequest struct {
	Now    *time.Time
	TaskID string
	UserID string
}

type ForecastTaskResponse struct {
	Task          domain.Task
	UserID        string
	DailyCapacity float64
	Forecast      capacity.TaskForecast
}

type ReleaseDateRequest struct {
	Now    *time.Time
	UserID string
}

// ReleaseDateResponse carries a nil Forecast when the user has no open backlog.
type ReleaseDateResponse struct {
	User     domain.User
	Forecast *capacity.ReleaseForecast
}

type TrendRequest struct {
	Now *time.Time
}

type TrendResponse struct {
	Points []capacity.TrendPoint
}

type ElasticityRequest struct {
	Now   *time.Time
	Month string
}

// ElasticityResponse carries the share of team capacity still free, in percent.
type ElasticityResponse struct {
	Month   string
	Percent float64
}

type SimulationRequest struct {
	Now   *time.Time
	Hours float64
}

type SimulationResponse struct {
	Hours   float64
	Impacts []capacity.Impact
}

type LogTimesheetRequest struct {
	TaskID string
	UserID string
	Date   string
	Hours  float64
	Note   string
}

// SetAllocationRequest reserves Hours of a task for a user. Hours <= 0 removes
// the reservation.
type SetAllocationRequest struct {
	TaskID string
	UserID string
	Hours  float64
}

type AddHolidayRequest struct {
	Name    string
	Date    string
	EndDate *string
}
