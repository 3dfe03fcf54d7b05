package cli

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/capacity/internal/calendar"
	"github.com/alexanderramin/capacity/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Capacity    service.CapacityService
	Timesheets  service.TimesheetService
	Allocations service.AllocationService
	Holidays    service.HolidayService
	Import      service.ImportService

	// Clock yields the configured today when --today is not given.
	Clock service.Clock

	// Init wires the services above from a config file path. It runs once
	// before any subcommand; nil means the App is already wired.
	Init func(configPath string) error

	// Serve runs the HTTP API until ctx is done. port 0 keeps the configured port.
	Serve func(ctx context.Context, port int, out io.Writer) error

	today *time.Time
}

// NewRootCmd creates the top-level "capacity" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configPath string
	var today dateFlag

	root := &cobra.Command{
		Use:           "capacity",
		Short:         "Team capacity and delivery forecasting",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if today.set {
				t := today.day
				app.today = &t
			}
			if app.Init != nil {
				if err := app.Init(configPath); err != nil {
					return err
				}
				app.Init = nil
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (default $CAPACITY_CONFIG)")
	root.PersistentFlags().Var(&today, "today", "Evaluate as if today were this date (YYYY-MM-DD)")

	holiday := &cobra.Command{
		Use:   "holiday",
		Short: "Manage holidays",
	}
	holiday.AddCommand(newHolidayAddCmd(app), newHolidayListCmd(app))

	root.AddCommand(
		newImportCmd(app),
		newAvailabilityCmd(app),
		newTeamCmd(app),
		newDailyCmd(app),
		newForecastCmd(app),
		newReleaseCmd(app),
		newTrendCmd(app),
		newElasticityCmd(app),
		newWhatIfCmd(app),
		newLogCmd(app),
		newAllocateCmd(app),
		holiday,
		newServeCmd(app),
	)

	return root
}

// dateFlag is a YYYY-MM-DD flag value, validated when flags are parsed.
type dateFlag struct {
	day time.Time
	set bool
}

var _ pflag.Value = (*dateFlag)(nil)

func (d *dateFlag) String() string {
	if !d.set {
		return ""
	}
	return d.day.Format(calendar.DateLayout)
}

func (d *dateFlag) Set(s string) error {
	t, err := calendar.ParseDate(s)
	if err != nil {
		return err
	}
	d.day, d.set = t, true
	return nil
}

func (d *dateFlag) Type() string { return "date" }

// now is the --today override, nil when the configured clock applies.
func (a *App) now() *time.Time {
	return a.today
}

// todayDate resolves the day used for relative dates in output.
func (a *App) todayDate() time.Time {
	if a.today != nil {
		return *a.today
	}
	if a.Clock != nil {
		return calendar.Day(a.Clock())
	}
	return calendar.Day(time.Now())
}
