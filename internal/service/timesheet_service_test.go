package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/capacity/internal/app"
	"github.com/alexanderramin/capacity/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogTimesheet_PersistsAndInvalidatesSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	before, err := env.capacity.ReleaseDate(ctx, app.ReleaseDateRequest{UserID: "ana"})
	require.NoError(t, err)
	require.Equal(t, 32.0, before.Forecast.RemainingHours)

	entry, err := env.timesheets.LogTimesheet(ctx, app.LogTimesheetRequest{
		TaskID: "login", UserID: "ana", Hours: 8, Note: "pairing",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, testToday, entry.Date, "date defaults to today")

	after, err := env.capacity.ReleaseDate(ctx, app.ReleaseDateRequest{UserID: "ana"})
	require.NoError(t, err)
	assert.Equal(t, 24.0, after.Forecast.RemainingHours)
	assert.Equal(t, day(3, 13), after.Forecast.Realistic)

	stored, err := env.repos.Timesheets.ListByUser(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "pairing", stored[1].Note)
}

func TestLogTimesheet_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.timesheets.LogTimesheet(ctx, app.LogTimesheetRequest{TaskID: "login", UserID: "ana", Hours: 0})
	requireCapacityError(t, err, app.CapacityErrInvalidHours)

	_, err = env.timesheets.LogTimesheet(ctx, app.LogTimesheetRequest{TaskID: "login", UserID: "ana", Hours: 2, Date: "2025-02-30"})
	requireCapacityError(t, err, app.CapacityErrInvalidDate)

	_, err = env.timesheets.LogTimesheet(ctx, app.LogTimesheetRequest{TaskID: "ghost", UserID: "ana", Hours: 2})
	requireCapacityError(t, err, app.CapacityErrTaskNotFound)

	_, err = env.timesheets.LogTimesheet(ctx, app.LogTimesheetRequest{TaskID: "login", UserID: "ghost", Hours: 2})
	requireCapacityError(t, err, app.CapacityErrUserNotFound)
}

func TestLogTimesheet_RollbackOnWriteFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	_, err := NewImportService(testutil.NewTestUoW(database)).ImportSchema(ctx, scenarioSchema())
	require.NoError(t, err)

	failUoW := &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: fmt.Errorf("injected insert failure")}
	svc := NewTimesheetService(failUoW, fixedClock)

	_, err = svc.LogTimesheet(ctx, app.LogTimesheetRequest{TaskID: "login", UserID: "ana", Hours: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected insert failure")
	assert.Zero(t, failUoW.Version())

	entries, err := NewSQLiteRepos(database).Timesheets.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the imported entry remains")
}
