package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/capacity/internal/app"
	"github.com/alexanderramin/capacity/internal/db"
	"github.com/alexanderramin/capacity/internal/domain"
	"github.com/alexanderramin/capacity/internal/repository"
	"github.com/google/uuid"
)

type timesheetService struct {
	uow      db.UnitOfWork
	clock    Clock
	observer UseCaseObserver
}

func NewTimesheetService(uow db.UnitOfWork, clock Clock, observers ...UseCaseObserver) TimesheetService {
	return &timesheetService{
		uow:      uow,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *timesheetService) LogTimesheet(ctx context.Context, req app.LogTimesheetRequest) (entry *domain.TimesheetEntry, err error) {
	fields := map[string]any{"task": req.TaskID, "user": req.UserID, "hours": req.Hours}
	defer observeUseCase(ctx, s.observer, "log-timesheet", time.Now(), fields, &err)

	if req.Hours <= 0 || req.Hours > 24 {
		return nil, &app.CapacityError{
			Code:    app.CapacityErrInvalidHours,
			Message: fmt.Sprintf("timesheet hours must be in (0, 24], got %g", req.Hours),
		}
	}
	date, err := resolveDate(req.Date, resolveToday(nil, s.clock))
	if err != nil {
		return nil, err
	}

	entry = &domain.TimesheetEntry{
		ID:         uuid.New().String(),
		TaskID:     req.TaskID,
		UserID:     req.UserID,
		Date:       date,
		TotalHours: req.Hours,
		Note:       req.Note,
		CreatedAt:  time.Now().UTC(),
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := NewSQLiteRepos(tx)
		if err := requireTaskAndUser(ctx, repos, req.TaskID, req.UserID); err != nil {
			return err
		}
		return repos.Timesheets.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// requireTaskAndUser maps missing rows to typed request errors.
func requireTaskAndUser(ctx context.Context, repos Repos, taskID, userID string) error {
	if _, err := repos.Tasks.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &app.CapacityError{Code: app.CapacityErrTaskNotFound, Message: fmt.Sprintf("task %q not found", taskID)}
		}
		return fmt.Errorf("loading task: %w", err)
	}
	if _, err := repos.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &app.CapacityError{Code: app.CapacityErrUserNotFound, Message: fmt.Sprintf("user %q not found", userID)}
		}
		return fmt.Errorf("loading user: %w", err)
	}
	return nil
}
