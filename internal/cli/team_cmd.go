package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/capacity/internal/app"
	"github.com/alexanderramin/capacity/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTrendCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Show team saturation and average load around the current month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Capacity.SaturationTrend(cmd.Context(), app.TrendRequest{Now: a.now()})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTrend(resp))
			return nil
		},
	}
}

func newElasticityCmd(a *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "elasticity",
		Short: "Show the share of team capacity still free in a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Capacity.TeamElasticity(cmd.Context(), app.ElasticityRequest{Now: a.now(), Month: month})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatElasticity(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to evaluate (YYYY-MM, default current)")
	return cmd
}

func newWhatIfCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whatif <hours>",
		Short: "Simulate a new demand of <hours> for every user with a backlog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := parseHours(args[0])
			if err != nil {
				return err
			}
			resp, err := a.Capacity.SimulateImpact(cmd.Context(), app.SimulationRequest{Now: a.now(), Hours: hours})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSimulation(resp))
			return nil
		},
	}
}

func parseHours(s string) (float64, error) {
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours %q: expected a number", s)
	}
	return h, nil
}
