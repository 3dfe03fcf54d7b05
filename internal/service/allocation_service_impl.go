package service

import (
	"context"
	"time"

	"github.com/alexanderramin/capacity/internal/app"
	"github.com/alexanderramin/capacity/internal/db"
	"github.com/alexanderramin/capacity/internal/domain"
)

type allocationService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewAllocationService(uow db.UnitOfWork, observers ...UseCaseObserver) AllocationService {
	return &allocationService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// SetAllocation stores an explicit reservation. Removing the last reservation
// of a task restores the even split of its estimate.
func (s *allocationService) SetAllocation(ctx context.Context, req app.SetAllocationRequest) (err error) {
	fields := map[string]any{"task": req.TaskID, "user": req.UserID, "hours": req.Hours}
	defer observeUseCase(ctx, s.observer, "set-allocation", time.Now(), fields, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := NewSQLiteRepos(tx)
		if err := requireTaskAndUser(ctx, repos, req.TaskID, req.UserID); err != nil {
			return err
		}
		if req.Hours <= 0 {
			return repos.Allocations.Delete(ctx, req.TaskID, req.UserID)
		}
		return repos.Allocations.Upsert(ctx, domain.TaskMemberAllocation{
			TaskID:        req.TaskID,
			UserID:        req.UserID,
			ReservedHours: req.Hours,
		})
	})
}
