package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/capacity/internal/app"
)

// FormatTrend renders saturation and average load for the trend window.
func FormatTrend(resp *app.TrendResponse) string {
	var b strings.Builder
	b.WriteString(Header("Saturation trend"))
	b.WriteString("\n\n")

	cols := []Column{{Title: "MONTH"}, {Title: "SATURATED", Right: true}, {Title: "AVG LOAD"}}
	rows := make([][]string, 0, len(resp.Points))
	for _, p := range resp.Points {
		sat := FormatPercent(p.SaturationRate)
		if p.SaturationRate > 0 {
			sat = StyleRed.Render(sat)
		}
		rows = append(rows, []string{
			p.Month.String(),
			sat,
			RenderOccupancy(p.AvgLoad/100, occupancyBarWidth),
		})
	}
	b.WriteString(RenderTable(cols, rows))
	return b.String()
}

// FormatElasticity renders the free share of team capacity for a month.
func FormatElasticity(resp *app.ElasticityResponse) string {
	style := StyleGreen
	switch {
	case resp.Percent <= 0:
		style = StyleRed
	case resp.Percent < 15:
		style = StyleYellow
	}
	return fmt.Sprintf("%s %s of team capacity still free in %s\n",
		Dim("Elasticity"), style.Render(fmt.Sprintf("%.2f%%", resp.Percent)), resp.Month)
}

// FormatSimulation renders how a new demand of the given hours shifts each
// user's release date.
func FormatSimulation(resp *app.SimulationResponse) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("What if · +%s each", FormatHours(resp.Hours))))
	b.WriteString("\n\n")

	if len(resp.Impacts) == 0 {
		b.WriteString(Dim("No user has an open backlog to compare.") + "\n")
		return b.String()
	}

	cols := []Column{{Title: "NAME"}, {Title: "BEFORE"}, {Title: "AFTER"}, {Title: "SHIFT", Right: true}, {Title: "COMMITMENT"}}
	rows := make([][]string, 0, len(resp.Impacts))
	for _, i := range resp.Impacts {
		shift := int(i.ReleaseDateAfter.Sub(i.ReleaseDateBefore).Hours() / 24)
		rows = append(rows, []string{
			Bold(i.Name),
			FormatDate(i.ReleaseDateBefore),
			FormatDate(i.ReleaseDateAfter),
			fmt.Sprintf("+%dd", shift),
			SaturationFlag(i.IsNewSaturated),
		})
	}
	b.WriteString(RenderTable(cols, rows))
	return b.String()
}
