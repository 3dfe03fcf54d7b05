package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/capacity/internal/app"
	"github.com/alexanderramin/capacity/internal/calendar"
	"github.com/alexanderramin/capacity/internal/db"
	"github.com/alexanderramin/capacity/internal/domain"
	"github.com/alexanderramin/capacity/internal/repository"
	"github.com/google/uuid"
)

type holidayService struct {
	holidays repository.HolidayRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewHolidayService(holidays repository.HolidayRepo, uow db.UnitOfWork, observers ...UseCaseObserver) HolidayService {
	return &holidayService{holidays: holidays, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *holidayService) AddHoliday(ctx context.Context, req app.AddHolidayRequest) (h *domain.Holiday, err error) {
	fields := map[string]any{"name": req.Name, "date": req.Date}
	defer observeUseCase(ctx, s.observer, "add-holiday", time.Now(), fields, &err)

	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return nil, &app.CapacityError{Code: app.CapacityErrInvalidDate, Message: err.Error()}
	}
	h = &domain.Holiday{
		ID:   uuid.New().String(),
		Name: strings.TrimSpace(req.Name),
		Date: date,
	}
	if req.EndDate != nil && *req.EndDate != "" {
		end, err := calendar.ParseDate(*req.EndDate)
		if err != nil {
			return nil, &app.CapacityError{Code: app.CapacityErrInvalidDate, Message: err.Error()}
		}
		if end.Before(date) {
			return nil, &app.CapacityError{
				Code:    app.CapacityErrInvalidDate,
				Message: fmt.Sprintf("holiday end %s is before start %s", *req.EndDate, req.Date),
			}
		}
		h.EndDate = &end
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteHolidayRepo(tx).Upsert(ctx, h)
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (s *holidayService) ListHolidays(ctx context.Context) ([]domain.Holiday, error) {
	return s.holidays.List(ctx)
}
