package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/capacity/internal/db"
	"github.com/alexanderramin/capacity/internal/importer"
	"github.com/alexanderramin/capacity/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testToday is a Monday.
var testToday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testToday }

func strPtr(s string) *string { return &s }

func float64Ptr(f float64) *float64 { return &f }

// scenarioSchema: Ana owns a 40h task (8h logged) spanning two weeks,
// Bia has no work and Gil is non-operational.
func scenarioSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		Users: []importer.UserImport{
			{Ref: "ana", ID: "ana", Name: "Ana", Torre: "Dev"},
			{Ref: "bia", ID: "bia", Name: "Bia", Torre: "Dev", DailyAvailableHours: float64Ptr(6)},
			{Ref: "gil", ID: "gil", Name: "Gil", Torre: "N/A"},
		},
		Projects: []importer.ProjectImport{
			{Ref: "portal", ID: "portal", Name: "Portal", Type: "planned",
				StartDate: strPtr("2025-03-03"), EstimatedDelivery: strPtr("2025-04-30")},
		},
		Tasks: []importer.TaskImport{
			{Ref: "login", ID: "login", ProjectRef: "portal", Title: "Login", DeveloperRef: "ana",
				Status: "In Progress", EstimatedHours: 40,
				ScheduledStart: strPtr("2025-03-10"), EstimatedDelivery: strPtr("2025-03-21")},
		},
		Timesheets: []importer.TimesheetImport{
			{TaskRef: "login", UserRef: "ana", Date: "2025-03-07", Hours: 8},
		},
	}
}

type testEnv struct {
	uow        *db.SQLiteUnitOfWork
	repos      Repos
	source     SnapshotSource
	capacity   CapacityService
	timesheets TimesheetService
	allocs     AllocationService
	holidays   HolidayService
	imports    ImportService
}

func newTestEnv(t *testing.T, observers ...UseCaseObserver) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	repos := NewSQLiteRepos(database)
	source := NewSnapshotSource(repos, uow, 8)

	env := &testEnv{
		uow:        uow,
		repos:      repos,
		source:     source,
		capacity:   NewCapacityService(source, fixedClock, observers...),
		timesheets: NewTimesheetService(uow, fixedClock, observers...),
		allocs:     NewAllocationService(uow, observers...),
		holidays:   NewHolidayService(repos.Holidays, uow, observers...),
		imports:    NewImportService(uow, observers...),
	}
	_, err := env.imports.ImportSchema(context.Background(), scenarioSchema())
	require.NoError(t, err)
	return env
}
