package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alexanderramin/capacity/internal/api"
	"github.com/alexanderramin/capacity/internal/cli"
	"github.com/alexanderramin/capacity/internal/cli/formatter"
	"github.com/alexanderramin/capacity/internal/config"
	"github.com/alexanderramin/capacity/internal/db"
	"github.com/alexanderramin/capacity/internal/metrics"
	"github.com/alexanderramin/capacity/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	out := os.Stdout.Fd()
	formatter.SetPlain(!isatty.IsTerminal(out) && !isatty.IsCygwinTerminal(out))

	var database *sql.DB
	var tracker *db.ChangeTracker
	defer func() {
		if tracker != nil {
			tracker.Close()
		}
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{}
	app.Init = func(configPath string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		database, err = db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		var opts []service.SnapshotOption
		// Other processes can only share a file-backed store.
		if cfg.DBPath != ":memory:" {
			tracker, err = db.NewChangeTracker(context.Background(), database)
			if err != nil {
				return err
			}
			opts = append(opts, service.WithExternalChanges(tracker))
		}
		wire(app, cfg, database, opts...)
		return nil
	}

	return cli.NewRootCmd(app).Execute()
}

// wire connects repositories, the unit of work and every service to app.
func wire(app *cli.App, cfg config.Config, database *sql.DB, snapshotOpts ...service.SnapshotOption) {
	clock := func() time.Time { return cfg.Today(time.Now()) }

	obs := metrics.NewObserver()
	observers := []service.UseCaseObserver{obs}
	if cfg.LogCalls {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	repos := service.NewSQLiteRepos(database)
	uow := db.NewSQLiteUnitOfWork(database)
	source := service.NewSnapshotSource(repos, uow, cfg.DefaultDailyHours, snapshotOpts...)

	app.Capacity = service.NewCapacityService(source, clock, observers...)
	app.Timesheets = service.NewTimesheetService(uow, clock, observers...)
	app.Allocations = service.NewAllocationService(uow, observers...)
	app.Holidays = service.NewHolidayService(repos.Holidays, uow, observers...)
	app.Import = service.NewImportService(uow, observers...)
	app.Clock = clock

	app.Serve = func(ctx context.Context, port int, w io.Writer) error {
		if port <= 0 {
			port = cfg.HTTPPort
		}
		return api.Start(ctx, api.StartOpts{
			Deps: api.Deps{
				Capacity:   app.Capacity,
				Timesheets: app.Timesheets,
				Metrics:    obs.Handler(),
			},
			Port: port,
			Out:  w,
		})
	}
}
