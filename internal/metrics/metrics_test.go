package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/capacity/internal/calendar"
	"github.com/alexanderramin/capacity/internal/capacity"
	"github.com/alexanderramin/capacity/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, o *Observer) string {
	t.Helper()
	rec := httptest.NewRecorder()
	o.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestObserver_CountsUseCases(t *testing.T) {
	o := NewObserver()
	ctx := context.Background()

	o.ObserveUseCase(ctx, service.UseCaseEvent{Name: "release-date", Success: true, Duration: 2 * time.Millisecond})
	o.ObserveUseCase(ctx, service.UseCaseEvent{Name: "release-date", Success: true, Duration: time.Millisecond})
	o.ObserveUseCase(ctx, service.UseCaseEvent{Name: "log-timesheet", Err: errors.New("bad hours")})

	out := scrape(t, o)
	assert.Contains(t, out, `capacity_use_cases_total{success="true",use_case="release-date"} 2`)
	assert.Contains(t, out, `capacity_use_cases_total{success="false",use_case="log-timesheet"} 1`)
	assert.Contains(t, out, `capacity_use_case_duration_seconds_count{use_case="release-date"} 2`)
	assert.Contains(t, out, "go_goroutines")
}

func TestObserver_TeamGauges(t *testing.T) {
	o := NewObserver()
	march := calendar.Month{Year: 2025, Month: time.March}

	o.SetTeamTrend([]capacity.TrendPoint{
		{Month: march.Add(-1), SaturationRate: 1, AvgLoad: 110},
		{Month: march, SaturationRate: 0.5, AvgLoad: 62.5},
	})
	o.SetTeamTrend([]capacity.TrendPoint{{Month: march, SaturationRate: 0.25, AvgLoad: 40}})
	o.SetTeamElasticity("2025-03", 85.71)

	out := scrape(t, o)
	assert.Contains(t, out, `capacity_team_saturation_rate{month="2025-03"} 0.25`)
	assert.Contains(t, out, `capacity_team_avg_load_percent{month="2025-03"} 40`)
	assert.NotContains(t, out, `month="2025-02"`, "trend gauges are replaced on every update")
	assert.Contains(t, out, `capacity_team_elasticity_percent{month="2025-03"} 85.71`)
}

func TestObserver_SeparateRegistries(t *testing.T) {
	a, b := NewObserver(), NewObserver()
	a.ObserveUseCase(context.Background(), service.UseCaseEvent{Name: "trend", Success: true})

	assert.Contains(t, scrape(t, a), `use_case="trend"`)
	assert.NotContains(t, scrape(t, b), `use_case="trend"`)
}
