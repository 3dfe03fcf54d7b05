package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/capacity/internal/db"
	"github.com/alexanderramin/capacity/internal/importer"
	"github.com/alexanderramin/capacity/internal/metrics"
	"github.com/alexanderramin/capacity/internal/service"
	"github.com/alexanderramin/capacity/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const teamImport = `{
  "users": [
    {"ref": "ana", "id": "ana", "name": "Ana", "torre": "Dev"},
    {"ref": "bia", "id": "bia", "name": "Bia", "torre": "Dev", "daily_available_hours": 6}
  ],
  "projects": [
    {"ref": "portal", "id": "portal", "name": "Portal", "type": "planned",
     "start_date": "2025-03-03", "estimated_delivery": "2025-04-30"}
  ],
  "tasks": [
    {"ref": "login", "id": "login", "project_ref": "portal", "title": "Login", "developer_ref": "ana",
     "status": "In Progress", "estimated_hours": 40,
     "scheduled_start": "2025-03-10", "estimated_delivery": "2025-03-21"}
  ],
  "timesheets": [
    {"task_ref": "login", "user_ref": "ana", "date": "2025-03-07", "hours": 8}
  ]
}`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	schema, err := importer.ParseImportSchema([]byte(teamImport))
	require.NoError(t, err)
	_, err = service.NewImportService(uow).ImportSchema(context.Background(), schema)
	require.NoError(t, err)

	clock := func() time.Time { return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) }
	obs := metrics.NewObserver()
	source := service.NewSnapshotSource(service.NewSQLiteRepos(database), uow, 8)

	return NewRouter(Deps{
		Capacity:   service.NewCapacityService(source, clock, obs),
		Timesheets: service.NewTimesheetService(uow, clock, obs),
		Metrics:    obs.Handler(),
	})
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAvailability(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/api/users/ana/availability?month=2025-03", "")
	require.Equal(t, http.StatusOK, rec.Code)
	v := decode[availabilityView](t, rec)
	assert.Equal(t, "2025-03", v.Month)
	assert.Equal(t, 128.0, v.Capacity)
	assert.Equal(t, 32.0, v.PlannedHours)
	assert.Equal(t, 96.0, v.Balance)
	require.Len(t, v.Breakdown.Planned, 1)
	assert.Equal(t, "Portal", v.Breakdown.Planned[0].ProjectName)
}

func TestAvailability_Errors(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/api/users/ana/availability?month=march", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_MONTH", decode[map[string]string](t, rec)["code"])

	rec = do(t, r, http.MethodGet, "/api/users/ghost/availability", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "USER_NOT_FOUND", decode[map[string]string](t, rec)["code"])
}

func TestDaily(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/users/ana/daily?from=2025-03-10&to=2025-03-11", "")
	require.Equal(t, http.StatusOK, rec.Code)

	v := decode[dailyView](t, rec)
	require.Len(t, v.Days, 2)
	assert.Equal(t, "2025-03-10", v.Days[0].Date)
	assert.Equal(t, []string{"login"}, v.Days[0].ActiveTaskIDs)
	assert.Equal(t, 8.0, v.DailyCapacity)
}

func TestReleaseAndForecast(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/api/users/ana/release", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rel := decode[releaseView](t, rec)
	require.NotNil(t, rel.Forecast)
	assert.Equal(t, "2025-03-14", rel.Forecast.Realistic)
	assert.Equal(t, 32.0, rel.Forecast.RemainingHours)

	rec = do(t, r, http.MethodGet, "/api/users/bia/release", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[releaseView](t, rec).Forecast)

	rec = do(t, r, http.MethodGet, "/api/tasks/login/forecast", "")
	require.Equal(t, http.StatusOK, rec.Code)
	fc := decode[forecastView](t, rec)
	assert.Equal(t, "ana", fc.UserID)
	require.NotNil(t, fc.Realistic)
	assert.Equal(t, "2025-03-14", *fc.Realistic)

	rec = do(t, r, http.MethodGet, "/api/tasks/ghost/forecast", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTeamEndpoints(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/api/team/availability?month=2025-03", "")
	require.Equal(t, http.StatusOK, rec.Code)
	team := decode[teamView](t, rec)
	require.Len(t, team.Members, 2)
	assert.Equal(t, "ana", team.Members[0].UserID, "busiest first")

	rec = do(t, r, http.MethodGet, "/api/team/elasticity?month=2025-03", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 85.71, decode[elasticityView](t, rec).Percent, 0.001)

	rec = do(t, r, http.MethodGet, "/api/team/trend", "")
	require.Equal(t, http.StatusOK, rec.Code)
	trend := decode[trendView](t, rec)
	require.NotEmpty(t, trend.Points)
}

func TestSimulation(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/api/simulations", `{"hours": 16}`)
	require.Equal(t, http.StatusOK, rec.Code)
	v := decode[simulationView](t, rec)
	require.Len(t, v.Impacts, 1)
	assert.Equal(t, "2025-03-14", v.Impacts[0].ReleaseDateBefore)
	assert.Equal(t, "2025-03-18", v.Impacts[0].ReleaseDateAfter)

	rec = do(t, r, http.MethodPost, "/api/simulations", `{"hours": 0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodPost, "/api/simulations", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogTimesheet(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/api/timesheets", `{"task_id": "login", "user_id": "ana", "hours": 8}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	entry := decode[timesheetView](t, rec)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "2025-03-10", entry.Date)

	rec = do(t, r, http.MethodGet, "/api/users/ana/release", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-03-13", decode[releaseView](t, rec).Forecast.Realistic)

	rec = do(t, r, http.MethodPost, "/api/timesheets", `{"user_id": "ana", "hours": 8}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "task_id is required")

	rec = do(t, r, http.MethodPost, "/api/timesheets", `{"task_id": "ghost", "user_id": "ana", "hours": 8}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodGet, "/api/users/ana/release", "")

	rec := do(t, r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `capacity_use_cases_total{success="true",use_case="release-date"} 1`)
}

func TestStart_RequiresServices(t *testing.T) {
	err := Start(context.Background(), StartOpts{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "services are required")
}
