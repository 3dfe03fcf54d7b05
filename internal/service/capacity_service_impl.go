package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/capacity/internal/app"
	"github.com/alexanderramin/capacity/internal/capacity"
	"github.com/alexanderramin/capacity/internal/domain"
)

// maxDailyWindow bounds the day-by-day simulation range.
const maxDailyWindow = 366

type capacityService struct {
	source     SnapshotSource
	clock      Clock
	commitment capacity.CommitmentStrategy
	observer   UseCaseObserver
}

// NewCapacityService builds the forecasting use cases over source. clock
// supplies "today" for requests that do not carry one.
func NewCapacityService(source SnapshotSource, clock Clock, observers ...UseCaseObserver) CapacityService {
	return &capacityService{
		source:     source,
		clock:      clock,
		commitment: capacity.NoCommitment{},
		observer:   useCaseObserverOrNoop(observers),
	}
}

// load returns the snapshot and an engine anchored at the request's today.
func (s *capacityService) load(ctx context.Context, now *time.Time) (capacity.Snapshot, *capacity.Engine, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return capacity.Snapshot{}, nil, fmt.Errorf("loading snapshot: %w", err)
	}
	engine := capacity.New(resolveToday(now, s.clock), capacity.WithCommitment(s.commitment))
	return snap, engine, nil
}

func (s *capacityService) MonthlyAvailability(ctx context.Context, req app.AvailabilityRequest) (resp *app.AvailabilityResponse, err error) {
	fields := map[string]any{"user": req.UserID, "month": req.Month}
	defer observeUseCase(ctx, s.observer, "monthly-availability", time.Now(), fields, &err)

	snap, engine, err := s.load(ctx, req.Now)
	if err != nil {
		return nil, err
	}
	month, err := resolveMonth(req.Month, engine.Today())
	if err != nil {
		return nil, err
	}
	user, err := findUser(snap, req.UserID)
	if err != nil {
		return nil, err
	}

	availability := engine.MonthlyAvailability(user, month, snap)
	fields["occupancy_rate"] = availability.OccupancyRate
	return &app.AvailabilityResponse{User: user, Availability: availability}, nil
}

func (s *capacityService) TeamOverview(ctx context.Context, req app.TeamOverviewRequest) (resp *app.TeamOverviewResponse, err error) {
	fields := map[string]any{"month": req.Month}
	defer observeUseCase(ctx, s.observer, "team-overview", time.Now(), fields, &err)

	snap, engine, err := s.load(ctx, req.Now)
	if err != nil {
		return nil, err
	}
	month, err := resolveMonth(req.Month, engine.Today())
	if err != nil {
		return nil, err
	}

	members := engine.TeamAvailability(month, snap)
	elasticity := engine.TeamElasticity(month, snap)
	fields["members"] = len(members)
	return &app.TeamOverviewResponse{Month: month.String(), Members: members, Elasticity: elasticity}, nil
}

func (s *capacityService) DailyAllocation(ctx context.Context, req app.DailyAllocationRequest) (resp *app.DailyAllocationResponse, err error) {
	fields := map[string]any{"user": req.UserID, "from": req.From, "to": req.To}
	defer observeUseCase(ctx, s.observer, "daily-allocation", time.Now(), fields, &err)

	snap, engine, err := s.load(ctx, req.Now)
	if err != nil {
		return nil, err
	}
	from, err := resolveDate(req.From, engine.Today())
	if err != nil {
		return nil, err
	}
	to, err := resolveDate(req.To, from.AddDate(0, 0, app.DefaultDailyWindow-1))
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, &app.CapacityError{
			Code:    app.CapacityErrInvalidDate,
			Message: fmt.Sprintf("range end %s is before start %s", to.Format("2006-01-02"), from.Format("2006-01-02")),
		}
	}
	if to.Sub(from) > maxDailyWindow*24*time.Hour {
		return nil, &app.CapacityError{
			Code:    app.CapacityErrInvalidDate,
			Message: fmt.Sprintf("range exceeds %d days", maxDailyWindow),
		}
	}
	user, err := findUser(snap, req.UserID)
	if err != nil {
		return nil, err
	}

	dailyCap := user.DailyCapacity()
	return &app.DailyAllocationResponse{
		User:          user,
		DailyCapacity: dailyCap,
		Days:          engine.SimulateDailyAllocation(user.ID, from, to, snap, dailyCap),
	}, nil
}

func (s *capacityService) ForecastTask(ctx context.Context, req app.ForecastTaskRequest) (resp *app.ForecastTaskResponse, err error) {
	fields := map[string]any{"task": req.TaskID, "user": req.UserID}
	defer observeUseCase(ctx, s.observer, "forecast-task", time.Now(), fields, &err)

	snap, engine, err := s.load(ctx, req.Now)
	if err != nil {
		return nil, err
	}
	task, err := findTask(snap, req.TaskID)
	if err != nil {
		return nil, err
	}

	userID := domain.CoalesceStr(req.UserID, task.DeveloperID)
	dailyCap := domain.DefaultDailyHours
	if userID != "" {
		user, findErr := findUser(snap, userID)
		switch {
		case findErr == nil:
			dailyCap = user.DailyCapacity()
		case req.UserID != "":
			return nil, findErr
		}
	}

	forecast := engine.ForecastTask(task, snap, dailyCap)
	fields["saturated"] = forecast.IsSaturated
	return &app.ForecastTaskResponse{Task: task, UserID: userID, DailyCapacity: dailyCap, Forecast: forecast}, nil
}

func (s *capacityService) ReleaseDate(ctx context.Context, req app.ReleaseDateRequest) (resp *app.ReleaseDateResponse, err error) {
	fields := map[string]any{"user": req.UserID}
	defer observeUseCase(ctx, s.observer, "release-date", time.Now(), fields, &err)

	snap, engine, err := s.load(ctx, req.Now)
	if err != nil {
		return nil, err
	}
	user, err := findUser(snap, req.UserID)
	if err != nil {
		return nil, err
	}

	forecast := engine.IndividualReleaseDate(user, snap)
	fields["has_backlog"] = forecast != nil
	return &app.ReleaseDateResponse{User: user, Forecast: forecast}, nil
}

func (s *capacityService) SaturationTrend(ctx context.Context, req app.TrendRequest) (resp *app.TrendResponse, err error) {
	defer observeUseCase(ctx, s.observer, "saturation-trend", time.Now(), map[string]any{}, &err)

	snap, engine, err := s.load(ctx, req.Now)
	if err != nil {
		return nil, err
	}

	points := engine.SaturationTrend(snap)
	if sink, ok := s.observer.(TeamGaugeSink); ok {
		sink.SetTeamTrend(points)
	}
	return &app.TrendResponse{Points: points}, nil
}

func (s *capacityService) TeamElasticity(ctx context.Context, req app.ElasticityRequest) (resp *app.ElasticityResponse, err error) {
	fields := map[string]any{"month": req.Month}
	defer observeUseCase(ctx, s.observer, "team-elasticity", time.Now(), fields, &err)

	snap, engine, err := s.load(ctx, req.Now)
	if err != nil {
		return nil, err
	}
	month, err := resolveMonth(req.Month, engine.Today())
	if err != nil {
		return nil, err
	}

	pct := engine.TeamElasticity(month, snap)
	if sink, ok := s.observer.(TeamGaugeSink); ok {
		sink.SetTeamElasticity(month.String(), pct)
	}
	return &app.ElasticityResponse{Month: month.String(), Percent: pct}, nil
}

func (s *capacityService) SimulateImpact(ctx context.Context, req app.SimulationRequest) (resp *app.SimulationResponse, err error) {
	fields := map[string]any{"hours": req.Hours}
	defer observeUseCase(ctx, s.observer, "simulate-impact", time.Now(), fields, &err)

	if req.Hours <= 0 {
		return nil, &app.CapacityError{
			Code:    app.CapacityErrInvalidHours,
			Message: fmt.Sprintf("simulated hours must be > 0, got %g", req.Hours),
		}
	}
	snap, engine, err := s.load(ctx, req.Now)
	if err != nil {
		return nil, err
	}

	impacts := engine.SimulateNewProjectImpact(req.Hours, snap)
	fields["impacted"] = len(impacts)
	return &app.SimulationResponse{Hours: req.Hours, Impacts: impacts}, nil
}
