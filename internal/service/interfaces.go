package service

import "github.com/alexanderramin/capacity/internal/app"

// CapacityService answers every read-only forecasting question.
type CapacityService interface {
	app.AvailabilityUseCase
	app.DailyAllocationUseCase
	app.ForecastUseCase
	app.TeamTrendUseCase
	app.SimulationUseCase
}

type TimesheetService interface {
	app.LogTimesheetUseCase
}

type AllocationService interface {
	app.SetAllocationUseCase
}

type HolidayService interface {
	app.HolidayUseCase
}

type ImportService interface {
	app.ImportUseCase
}
