package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/capacity/internal/app"
	"github.com/alexanderramin/capacity/internal/capacity"
	"github.com/alexanderramin/capacity/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func requireCapacityError(t *testing.T, err error, code app.CapacityErrorCode) {
	t.Helper()
	require.Error(t, err)
	var ce *app.CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, code, ce.Code)
}

func TestMonthlyAvailability_CurrentMonth(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.capacity.MonthlyAvailability(context.Background(), app.AvailabilityRequest{UserID: "ana"})
	require.NoError(t, err)

	a := resp.Availability
	assert.Equal(t, "2025-03", a.Month.String())
	// 16 business days from Mar 10 to Mar 31 at 8h.
	assert.Equal(t, 128.0, a.Capacity)
	assert.Equal(t, 32.0, a.PlannedHours)
	assert.Equal(t, 0.25, a.OccupancyRate)
	assert.Equal(t, 96.0, a.Balance)
	assert.Equal(t, domain.OccupancyAvailable, a.Status)
	require.Len(t, a.Breakdown.Planned, 1)
	assert.Equal(t, "Portal", a.Breakdown.Planned[0].ProjectName)
}

func TestMonthlyAvailability_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.capacity.MonthlyAvailability(ctx, app.AvailabilityRequest{UserID: "ana", Month: "2025-13"})
	requireCapacityError(t, err, app.CapacityErrInvalidMonth)

	_, err = env.capacity.MonthlyAvailability(ctx, app.AvailabilityRequest{UserID: "nobody"})
	requireCapacityError(t, err, app.CapacityErrUserNotFound)
}

func TestMonthlyAvailability_NowOverride(t *testing.T) {
	env := newTestEnv(t)
	now := day(4, 1)

	resp, err := env.capacity.MonthlyAvailability(context.Background(), app.AvailabilityRequest{UserID: "bia", Now: &now})
	require.NoError(t, err)
	assert.Equal(t, "2025-04", resp.Availability.Month.String())
	// 22 business days in April at 6h.
	assert.Equal(t, 132.0, resp.Availability.Capacity)
}

func TestTeamOverview_ExcludesNonOperationalAndSorts(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.capacity.TeamOverview(context.Background(), app.TeamOverviewRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2025-03", resp.Month)
	require.Len(t, resp.Members, 2)
	assert.Equal(t, "ana", resp.Members[0].User.ID, "busiest first")
	assert.Equal(t, "bia", resp.Members[1].User.ID)
	// (96 + 96) free of (128 + 96).
	assert.Equal(t, 85.71, resp.Elasticity)
}

func TestDailyAllocation_DefaultWindow(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.capacity.DailyAllocation(context.Background(), app.DailyAllocationRequest{UserID: "ana"})
	require.NoError(t, err)
	assert.Equal(t, 8.0, resp.DailyCapacity)
	require.Len(t, resp.Days, app.DefaultDailyWindow)
	assert.Equal(t, testToday, resp.Days[0].Date)
	assert.True(t, resp.Days[0].IsWorkingDay)
	assert.Equal(t, 8.0, resp.Days[0].PlannedHours)
	assert.Equal(t, []string{"login"}, resp.Days[0].ActiveTaskIDs)

	saturday := resp.Days[5]
	assert.Equal(t, day(3, 15), saturday.Date)
	assert.False(t, saturday.IsWorkingDay)
	assert.Zero(t, saturday.TotalOccupancy)
}

func TestDailyAllocation_RangeValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.capacity.DailyAllocation(ctx, app.DailyAllocationRequest{UserID: "ana", From: "2025-03-20", To: "2025-03-10"})
	requireCapacityError(t, err, app.CapacityErrInvalidDate)

	_, err = env.capacity.DailyAllocation(ctx, app.DailyAllocationRequest{UserID: "ana", From: "10/03/2025"})
	requireCapacityError(t, err, app.CapacityErrInvalidDate)

	_, err = env.capacity.DailyAllocation(ctx, app.DailyAllocationRequest{UserID: "ana", From: "2025-01-01", To: "2027-01-01"})
	requireCapacityError(t, err, app.CapacityErrInvalidDate)
}

func TestForecastTask_UsesOwnerCapacity(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.capacity.ForecastTask(context.Background(), app.ForecastTaskRequest{TaskID: "login"})
	require.NoError(t, err)
	assert.Equal(t, "ana", resp.UserID)
	assert.Equal(t, 32.0, resp.Forecast.RemainingHours)
	require.NotNil(t, resp.Forecast.Ideal)
	require.NotNil(t, resp.Forecast.Realistic)
	// 32h at 8h/day is 4 business days after Monday.
	assert.Equal(t, day(3, 14), *resp.Forecast.Ideal)
	assert.Equal(t, day(3, 14), *resp.Forecast.Realistic)
	assert.False(t, resp.Forecast.IsSaturated)
}

func TestForecastTask_OtherUserOnlyChangesCapacity(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.capacity.ForecastTask(context.Background(), app.ForecastTaskRequest{TaskID: "login", UserID: "bia"})
	require.NoError(t, err)
	assert.Equal(t, "bia", resp.UserID)
	assert.Equal(t, 6.0, resp.DailyCapacity)
	// Ana's 32h still remain; at 6h/day that takes 6 business days.
	assert.Equal(t, 32.0, resp.Forecast.RemainingHours)
	require.NotNil(t, resp.Forecast.Ideal)
	assert.Equal(t, day(3, 18), *resp.Forecast.Ideal)
}

func TestForecastTask_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.capacity.ForecastTask(ctx, app.ForecastTaskRequest{TaskID: "missing"})
	requireCapacityError(t, err, app.CapacityErrTaskNotFound)

	_, err = env.capacity.ForecastTask(ctx, app.ForecastTaskRequest{TaskID: "login", UserID: "ghost"})
	requireCapacityError(t, err, app.CapacityErrUserNotFound)
}

func TestReleaseDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.capacity.ReleaseDate(ctx, app.ReleaseDateRequest{UserID: "ana"})
	require.NoError(t, err)
	require.NotNil(t, resp.Forecast)
	assert.Equal(t, day(3, 14), resp.Forecast.Realistic)
	assert.Equal(t, 1, resp.Forecast.TaskCount)

	resp, err = env.capacity.ReleaseDate(ctx, app.ReleaseDateRequest{UserID: "bia"})
	require.NoError(t, err)
	assert.Nil(t, resp.Forecast, "no backlog means no release date")
}

type gaugeRecorder struct {
	trend      []capacity.TrendPoint
	elasticity map[string]float64
	events     []UseCaseEvent
}

func (g *gaugeRecorder) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	g.events = append(g.events, e)
}

func (g *gaugeRecorder) SetTeamTrend(points []capacity.TrendPoint) { g.trend = points }

func (g *gaugeRecorder) SetTeamElasticity(month string, pct float64) {
	if g.elasticity == nil {
		g.elasticity = map[string]float64{}
	}
	g.elasticity[month] = pct
}

func TestSaturationTrend_PublishesGauges(t *testing.T) {
	rec := &gaugeRecorder{}
	env := newTestEnv(t, rec)

	resp, err := env.capacity.SaturationTrend(context.Background(), app.TrendRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Points, 4)
	assert.Equal(t, "2025-03", resp.Points[0].Month.String())
	assert.Equal(t, "2025-06", resp.Points[3].Month.String())
	assert.Equal(t, 0.0, resp.Points[0].SaturationRate)
	assert.Equal(t, 12.5, resp.Points[0].AvgLoad)
	assert.Equal(t, resp.Points, rec.trend)
}

func TestTeamElasticity_PublishesGauge(t *testing.T) {
	rec := &gaugeRecorder{}
	env := newTestEnv(t, rec)

	resp, err := env.capacity.TeamElasticity(context.Background(), app.ElasticityRequest{Month: "2025-03"})
	require.NoError(t, err)
	assert.Equal(t, 85.71, resp.Percent)
	assert.Equal(t, 85.71, rec.elasticity["2025-03"])
}

func TestSimulateImpact(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.capacity.SimulateImpact(ctx, app.SimulationRequest{Hours: 16})
	require.NoError(t, err)
	require.Len(t, resp.Impacts, 1, "users without backlog are excluded")
	impact := resp.Impacts[0]
	assert.Equal(t, "ana", impact.UserID)
	assert.Equal(t, day(3, 14), impact.ReleaseDateBefore)
	// 48h at 8h/day is 6 business days.
	assert.Equal(t, day(3, 18), impact.ReleaseDateAfter)
	assert.False(t, impact.IsNewSaturated)

	_, err = env.capacity.SimulateImpact(ctx, app.SimulationRequest{Hours: 0})
	requireCapacityError(t, err, app.CapacityErrInvalidHours)
}

func TestCapacityService_ObservesUseCases(t *testing.T) {
	rec := &gaugeRecorder{}
	env := newTestEnv(t, rec)
	rec.events = nil

	_, _ = env.capacity.MonthlyAvailability(context.Background(), app.AvailabilityRequest{UserID: "ghost"})

	require.Len(t, rec.events, 1)
	ev := rec.events[0]
	assert.Equal(t, "monthly-availability", ev.Name)
	assert.False(t, ev.Success)
	assert.Equal(t, "ghost", ev.Fields["user"])
}
