package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/capacity/internal/capacity"
	"github.com/alexanderramin/capacity/internal/db"
	"github.com/alexanderramin/capacity/internal/repository"
)

// Repos bundles the repositories behind one connection or transaction.
type Repos struct {
	Users       repository.UserRepo
	Projects    repository.ProjectRepo
	Members     repository.ProjectMemberRepo
	Tasks       repository.TaskRepo
	Allocations repository.AllocationRepo
	Timesheets  repository.TimesheetRepo
	Holidays    repository.HolidayRepo
}

// NewSQLiteRepos wires every SQLite repository to conn, which may be a *sql.DB or a tx.
func NewSQLiteRepos(conn db.DBTX) Repos {
	return Repos{
		Users:       repository.NewSQLiteUserRepo(conn),
		Projects:    repository.NewSQLiteProjectRepo(conn),
		Members:     repository.NewSQLiteProjectMemberRepo(conn),
		Tasks:       repository.NewSQLiteTaskRepo(conn),
		Allocations: repository.NewSQLiteAllocationRepo(conn),
		Timesheets:  repository.NewSQLiteTimesheetRepo(conn),
		Holidays:    repository.NewSQLiteHolidayRepo(conn),
	}
}

// SnapshotSource yields a consistent capacity.Snapshot of stored data.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (capacity.Snapshot, error)
}

// DataVersioner reports a counter that moves when another connection commits.
type DataVersioner interface {
	DataVersion(ctx context.Context) (int64, error)
}

// SnapshotOption configures a snapshot source.
type SnapshotOption func(*snapshotCache)

// WithExternalChanges also invalidates the cache when dv reports commits
// made outside this process's unit of work.
func WithExternalChanges(dv DataVersioner) SnapshotOption {
	return func(c *snapshotCache) { c.external = dv }
}

type cacheKey struct {
	local    uint64
	external int64
}

// snapshotCache reloads the snapshot only when a commit happened since the
// last load. Returned snapshots are shared and must be treated as read-only.
type snapshotCache struct {
	repos             Repos
	uow               db.UnitOfWork
	external          DataVersioner
	defaultDailyHours float64

	mu     sync.Mutex
	loaded bool
	key    cacheKey
	snap   capacity.Snapshot
}

// NewSnapshotSource caches snapshots read through repos, invalidated by commits on uow.
// Users without daily hours get defaultDailyHours.
func NewSnapshotSource(repos Repos, uow db.UnitOfWork, defaultDailyHours float64, opts ...SnapshotOption) SnapshotSource {
	c := &snapshotCache{repos: repos, uow: uow, defaultDailyHours: defaultDailyHours}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *snapshotCache) currentKey(ctx context.Context) (cacheKey, error) {
	key := cacheKey{local: c.uow.Version()}
	if c.external != nil {
		v, err := c.external.DataVersion(ctx)
		if err != nil {
			return cacheKey{}, fmt.Errorf("checking for external changes: %w", err)
		}
		key.external = v
	}
	return key, nil
}

func (c *snapshotCache) Snapshot(ctx context.Context) (capacity.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key, err := c.currentKey(ctx)
	if err != nil {
		return capacity.Snapshot{}, err
	}
	if c.loaded && c.key == key {
		return c.snap, nil
	}

	snap, err := loadSnapshot(ctx, c.repos)
	if err != nil {
		return capacity.Snapshot{}, err
	}
	for i := range snap.Users {
		if snap.Users[i].DailyAvailableHours <= 0 && c.defaultDailyHours > 0 {
			snap.Users[i].DailyAvailableHours = c.defaultDailyHours
		}
	}

	c.snap, c.key, c.loaded = snap, key, true
	return snap, nil
}

func loadSnapshot(ctx context.Context, r Repos) (capacity.Snapshot, error) {
	var snap capacity.Snapshot
	var err error
	if snap.Users, err = r.Users.List(ctx); err != nil {
		return snap, fmt.Errorf("loading users: %w", err)
	}
	if snap.Projects, err = r.Projects.List(ctx); err != nil {
		return snap, fmt.Errorf("loading projects: %w", err)
	}
	if snap.Members, err = r.Members.List(ctx); err != nil {
		return snap, fmt.Errorf("loading project members: %w", err)
	}
	if snap.Tasks, err = r.Tasks.List(ctx); err != nil {
		return snap, fmt.Errorf("loading tasks: %w", err)
	}
	if snap.Allocations, err = r.Allocations.List(ctx); err != nil {
		return snap, fmt.Errorf("loading task allocations: %w", err)
	}
	if snap.Timesheets, err = r.Timesheets.List(ctx); err != nil {
		return snap, fmt.Errorf("loading timesheets: %w", err)
	}
	if snap.Holidays, err = r.Holidays.List(ctx); err != nil {
		return snap, fmt.Errorf("loading holidays: %w", err)
	}
	return snap, nil
}
