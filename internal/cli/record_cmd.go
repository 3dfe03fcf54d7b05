package cli

import (
	"fmt"

	"github.com/alexanderramin/capacity/internal/app"
	"github.com/alexanderramin/capacity/internal/calendar"
	"github.com/alexanderramin/capacity/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import users, projects, tasks, timesheets and holidays from JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.Import.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(result))
			return nil
		},
	}
}

func newLogCmd(a *App) *cobra.Command {
	var date, note string

	cmd := &cobra.Command{
		Use:   "log <task-id> <user-id> <hours>",
		Short: "Log hours worked on a task",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := parseHours(args[2])
			if err != nil {
				return err
			}
			if date == "" && a.now() != nil {
				date = a.now().Format(calendar.DateLayout)
			}
			entry, err := a.Timesheets.LogTimesheet(cmd.Context(), app.LogTimesheetRequest{
				TaskID: args[0],
				UserID: args[1],
				Date:   date,
				Hours:  hours,
				Note:   note,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimesheet(entry))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day worked (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&note, "note", "", "Timesheet note")
	return cmd
}

func newAllocateCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "allocate <task-id> <user-id> <hours>",
		Short: "Reserve hours of a task for a user (0 removes the reservation)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := parseHours(args[2])
			if err != nil {
				return err
			}
			err = a.Allocations.SetAllocation(cmd.Context(), app.SetAllocationRequest{
				TaskID: args[0],
				UserID: args[1],
				Hours:  hours,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if hours <= 0 {
				fmt.Fprintf(out, "Removed reservation of %s on task %s; the estimate is split evenly again if no other reservation exists\n", args[1], args[0])
				return nil
			}
			fmt.Fprintf(out, "Reserved %s of task %s for %s\n", formatter.FormatHours(hours), args[0], args[1])
			return nil
		},
	}
}

func newHolidayAddCmd(a *App) *cobra.Command {
	var end string

	cmd := &cobra.Command{
		Use:   "add <name> <date>",
		Short: "Register a holiday (use --end for a multi-day interval)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.AddHolidayRequest{Name: args[0], Date: args[1]}
			if end != "" {
				req.EndDate = &end
			}
			h, err := a.Holidays.AddHoliday(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added holiday %s (%s)\n", h.Name, h.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&end, "end", "", "Last day of the holiday (YYYY-MM-DD, inclusive)")
	return cmd
}

func newHolidayListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered holidays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			holidays, err := a.Holidays.ListHolidays(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHolidays(holidays))
			return nil
		},
	}
}
