package api

import (
	"time"

	"github.com/alexanderramin/capacity/internal/app"
	"github.com/alexanderramin/capacity/internal/calendar"
	"github.com/alexanderramin/capacity/internal/capacity"
	"github.com/alexanderramin/capacity/internal/domain"
)

// Dates are rendered YYYY-MM-DD and months YYYY-MM.

func formatDate(t time.Time) string {
	return t.Format(calendar.DateLayout)
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}

type projectHoursView struct {
	ProjectID   string  `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Hours       float64 `json:"hours"`
}

type breakdownView struct {
	Planned    []projectHoursView `json:"planned"`
	Continuous []projectHoursView `json:"continuous"`
}

type availabilityView struct {
	UserID          string        `json:"user_id"`
	Name            string        `json:"name"`
	Month           string        `json:"month"`
	Start           string        `json:"start"`
	End             string        `json:"end"`
	Capacity        float64       `json:"capacity"`
	PlannedHours    float64       `json:"planned_hours"`
	ContinuousHours float64       `json:"continuous_hours"`
	TotalOccupancy  float64       `json:"total_occupancy"`
	OccupancyRate   float64       `json:"occupancy_rate"`
	Balance         float64       `json:"balance"`
	Status          string        `json:"status"`
	Allocated       float64       `json:"allocated"`
	Available       float64       `json:"available"`
	Breakdown       breakdownView `json:"breakdown"`
}

func newProjectHoursViews(in []capacity.ProjectHours) []projectHoursView {
	out := make([]projectHoursView, 0, len(in))
	for _, p := range in {
		out = append(out, projectHoursView{ProjectID: p.ProjectID, ProjectName: p.ProjectName, Hours: p.Hours})
	}
	return out
}

func newAvailabilityView(u domain.User, a capacity.MonthlyAvailability) availabilityView {
	return availabilityView{
		UserID:          u.ID,
		Name:            u.Name,
		Month:           a.Month.String(),
		Start:           formatDate(a.Start),
		End:             formatDate(a.End),
		Capacity:        a.Capacity,
		PlannedHours:    a.PlannedHours,
		ContinuousHours: a.ContinuousHours,
		TotalOccupancy:  a.TotalOccupancy,
		OccupancyRate:   a.OccupancyRate,
		Balance:         a.Balance,
		Status:          string(a.Status),
		Allocated:       a.Allocated,
		Available:       a.Available,
		Breakdown: breakdownView{
			Planned:    newProjectHoursViews(a.Breakdown.Planned),
			Continuous: newProjectHoursViews(a.Breakdown.Continuous),
		},
	}
}

type teamView struct {
	Month      string             `json:"month"`
	Elasticity float64            `json:"elasticity_percent"`
	Members    []availabilityView `json:"members"`
}

func newTeamView(resp *app.TeamOverviewResponse) teamView {
	members := make([]availabilityView, 0, len(resp.Members))
	for _, m := range resp.Members {
		members = append(members, newAvailabilityView(m.User, m.Availability))
	}
	return teamView{Month: resp.Month, Elasticity: resp.Elasticity, Members: members}
}

type dayView struct {
	Date            string   `json:"date"`
	IsWorkingDay    bool     `json:"is_working_day"`
	PlannedHours    float64  `json:"planned_hours"`
	ContinuousHours float64  `json:"continuous_hours"`
	BufferHours     float64  `json:"buffer_hours"`
	TotalOccupancy  float64  `json:"total_occupancy"`
	ActiveTaskIDs   []string `json:"active_task_ids"`
}

type dailyView struct {
	UserID        string    `json:"user_id"`
	DailyCapacity float64   `json:"daily_capacity"`
	Days          []dayView `json:"days"`
}

func newDailyView(resp *app.DailyAllocationResponse) dailyView {
	days := make([]dayView, 0, len(resp.Days))
	for _, d := range resp.Days {
		ids := d.ActiveTaskIDs
		if ids == nil {
			ids = []string{}
		}
		days = append(days, dayView{
			Date:            formatDate(d.Date),
			IsWorkingDay:    d.IsWorkingDay,
			PlannedHours:    d.PlannedHours,
			ContinuousHours: d.ContinuousHours,
			BufferHours:     d.BufferHours,
			TotalOccupancy:  d.TotalOccupancy,
			ActiveTaskIDs:   ids,
		})
	}
	return dailyView{UserID: resp.User.ID, DailyCapacity: resp.DailyCapacity, Days: days}
}

type forecastView struct {
	TaskID         string  `json:"task_id"`
	Title          string  `json:"title"`
	UserID         string  `json:"user_id"`
	DailyCapacity  float64 `json:"daily_capacity"`
	Ideal          *string `json:"ideal"`
	Realistic      *string `json:"realistic"`
	IsSaturated    bool    `json:"is_saturated"`
	RemainingHours float64 `json:"remaining_hours"`
}

func newForecastView(resp *app.ForecastTaskResponse) forecastView {
	return forecastView{
		TaskID:         resp.Task.ID,
		Title:          resp.Task.Title,
		UserID:         resp.UserID,
		DailyCapacity:  resp.DailyCapacity,
		Ideal:          formatOptionalDate(resp.Forecast.Ideal),
		Realistic:      formatOptionalDate(resp.Forecast.Realistic),
		IsSaturated:    resp.Forecast.IsSaturated,
		RemainingHours: resp.Forecast.RemainingHours,
	}
}

type releaseForecastView struct {
	Ideal          string  `json:"ideal"`
	Realistic      string  `json:"realistic"`
	IsSaturated    bool    `json:"is_saturated"`
	RemainingHours float64 `json:"remaining_hours"`
	TaskCount      int     `json:"task_count"`
}

type releaseView struct {
	UserID   string               `json:"user_id"`
	Name     string               `json:"name"`
	Forecast *releaseForecastView `json:"forecast"`
}

func newReleaseView(resp *app.ReleaseDateResponse) releaseView {
	v := releaseView{UserID: resp.User.ID, Name: resp.User.Name}
	if f := resp.Forecast; f != nil {
		v.Forecast = &releaseForecastView{
			Ideal:          formatDate(f.Ideal),
			Realistic:      formatDate(f.Realistic),
			IsSaturated:    f.IsSaturated,
			RemainingHours: f.RemainingHours,
			TaskCount:      f.TaskCount,
		}
	}
	return v
}

type trendPointView struct {
	Month          string  `json:"month"`
	SaturationRate float64 `json:"saturation_rate"`
	// Percentage: 100 means the average user is fully booked.
	AvgLoad        float64 `json:"avg_load"`
}

type trendView struct {
	Points []trendPointView `json:"points"`
}

func newTrendView(resp *app.TrendResponse) trendView {
	points := make([]trendPointView, 0, len(resp.Points))
	for _, p := range resp.Points {
		points = append(points, trendPointView{Month: p.Month.String(), SaturationRate: p.SaturationRate, AvgLoad: p.AvgLoad})
	}
	return trendView{Points: points}
}

type elasticityView struct {
	Month   string  `json:"month"`
	Percent float64 `json:"percent"`
}

type impactView struct {
	UserID            string `json:"user_id"`
	Name              string `json:"name"`
	ReleaseDateBefore string `json:"release_date_before"`
	ReleaseDateAfter  string `json:"release_date_after"`
	IsNewSaturated    bool   `json:"is_new_saturated"`
}

type simulationView struct {
	Hours   float64      `json:"hours"`
	Impacts []impactView `json:"impacts"`
}

func newSimulationView(resp *app.SimulationResponse) simulationView {
	impacts := make([]impactView, 0, len(resp.Impacts))
	for _, i := range resp.Impacts {
		impacts = append(impacts, impactView{
			UserID:            i.UserID,
			Name:              i.Name,
			ReleaseDateBefore: formatDate(i.ReleaseDateBefore),
			ReleaseDateAfter:  formatDate(i.ReleaseDateAfter),
			IsNewSaturated:    i.IsNewSaturated,
		})
	}
	return simulationView{Hours: resp.Hours, Impacts: impacts}
}

type timesheetView struct {
	ID     string  `json:"id"`
	TaskID string  `json:"task_id"`
	UserID string  `json:"user_id"`
	Date   string  `json:"date"`
	Hours  float64 `json:"hours"`
	Note   string  `json:"note,omitempty"`
}

func newTimesheetView(e *domain.TimesheetEntry) timesheetView {
	return timesheetView{
		ID:     e.ID,
		TaskID: e.TaskID,
		UserID: e.UserID,
		Date:   formatDate(e.Date),
		Hours:  e.TotalHours,
		Note:   e.Note,
	}
}
