package cli

import (
	"fmt"

	"github.com/alexanderramin/capacity/internal/app"
	"github.com/alexanderramin/capacity/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAvailabilityCmd(a *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "availability <user-id>",
		Short: "Show a user's monthly capacity, occupancy and balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Capacity.MonthlyAvailability(cmd.Context(), app.AvailabilityRequest{
				Now:    a.now(),
				UserID: args[0],
				Month:  month,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAvailability(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to evaluate (YYYY-MM, default current)")
	return cmd
}

func newTeamCmd(a *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "team",
		Short: "Show monthly availability for every operational user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Capacity.TeamOverview(cmd.Context(), app.TeamOverviewRequest{Now: a.now(), Month: month})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTeam(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to evaluate (YYYY-MM, default current)")
	return cmd
}

func newDailyCmd(a *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "daily <user-id>",
		Short: "Simulate a user's day-by-day occupancy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Capacity.DailyAllocation(cmd.Context(), app.DailyAllocationRequest{
				Now:    a.now(),
				UserID: args[0],
				From:   from,
				To:     to,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDaily(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&to, "to", "", fmt.Sprintf("Last day (YYYY-MM-DD, default %d days from --from)", app.DefaultDailyWindow))
	return cmd
}

func newForecastCmd(a *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "forecast <task-id>",
		Short: "Forecast the ideal and realistic delivery of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Capacity.ForecastTask(cmd.Context(), app.ForecastTaskRequest{
				Now:    a.now(),
				TaskID: args[0],
				UserID: userID,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatForecast(resp, a.todayDate()))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Burn the owner's remaining effort at this user's daily capacity (default task owner)")
	return cmd
}

func newReleaseCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "release <user-id>",
		Short: "Project when a user clears their open backlog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Capacity.ReleaseDate(cmd.Context(), app.ReleaseDateRequest{Now: a.now(), UserID: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRelease(resp, a.todayDate()))
			return nil
		},
	}
}
