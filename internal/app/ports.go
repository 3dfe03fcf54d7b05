package app

import (
	"context"

	"github.com/alexanderramin/capacity/internal/domain"
	"github.com/alexanderramin/capacity/internal/importer"
)

type AvailabilityUseCase interface {
	MonthlyAvailability(ctx context.Context, req AvailabilityRequest) (*AvailabilityResponse, error)
	TeamOverview(ctx context.Context, req TeamOverviewRequest) (*TeamOverviewResponse, error)
}

type DailyAllocationUseCase interface {
	DailyAllocation(ctx context.Context, req DailyAllocationRequest) (*DailyAllocationResponse, error)
}

type ForecastUseCase interface {
	ForecastTask(ctx context.Context, req ForecastTaskRequest) (*ForecastTaskResponse, error)
	ReleaseDate(ctx context.Context, req ReleaseDateRequest) (*ReleaseDateResponse, error)
}

type TeamTrendUseCase interface {
	SaturationTrend(ctx context.Context, req TrendRequest) (*TrendResponse, error)
	TeamElasticity(ctx context.Context, req ElasticityRequest) (*ElasticityResponse, error)
}

type SimulationUseCase interface {
	SimulateImpact(ctx context.Context, req SimulationRequest) (*SimulationResponse, error)
}

type LogTimesheetUseCase interface {
	LogTimesheet(ctx context.Context, req LogTimesheetRequest) (*domain.TimesheetEntry, error)
}

type SetAllocationUseCase interface {
	SetAllocation(ctx context.Context, req SetAllocationRequest) error
}

type HolidayUseCase interface {
	AddHoliday(ctx context.Context, req AddHolidayRequest) (*domain.Holiday, error)
	ListHolidays(ctx context.Context) ([]domain.Holiday, error)
}

// ImportResult counts the records written by one import.
type ImportResult struct {
	Users       int
	Projects    int
	Members     int
	Tasks       int
	Allocations int
	Timesheets  int
	Holidays    int
}

type ImportUseCase interface {
	Import(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
