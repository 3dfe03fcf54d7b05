package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/capacity/internal/app"
	"github.com/alexanderramin/capacity/internal/capacity"
)

const occupancyBarWidth = 12

// FormatAvailability renders one user's month as a box with a project breakdown.
func FormatAvailability(resp *app.AvailabilityResponse) string {
	a := resp.Availability
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s → %s\n\n", Dim("Window"), a.Start.Format("Jan 2"), a.End.Format("Jan 2, 2006"))
	fmt.Fprintf(&b, "%-12s %s\n", "Capacity", FormatHours(a.Capacity))
	fmt.Fprintf(&b, "%-12s %s\n", "Planned", FormatHours(a.PlannedHours))
	fmt.Fprintf(&b, "%-12s %s\n", "Continuous", FormatHours(a.ContinuousHours))
	fmt.Fprintf(&b, "%-12s %s\n", "Balance", balance(a.Balance))
	fmt.Fprintf(&b, "%-12s %s\n", "Occupancy", RenderOccupancy(a.OccupancyRate, occupancyBarWidth))
	fmt.Fprintf(&b, "%-12s %s", "Status", OccupancyIndicator(a.Status))

	rows := breakdownRows(a.Breakdown)
	if len(rows) > 0 {
		b.WriteString("\n\n")
		b.WriteString(strings.TrimRight(RenderTable([]Column{{Title: "PROJECT"}, {Title: "TYPE"}, {Title: "HOURS", Right: true}}, rows), "\n"))
	}

	title := fmt.Sprintf("%s · %s", resp.User.Name, a.Month)
	return RenderBox(title, b.String()) + "\n"
}

func breakdownRows(bd capacity.Breakdown) [][]string {
	var rows [][]string
	for _, p := range bd.Planned {
		rows = append(rows, []string{p.ProjectName, StyleBlue.Render("planned"), FormatHours(p.Hours)})
	}
	for _, p := range bd.Continuous {
		rows = append(rows, []string{p.ProjectName, StylePurple.Render("continuous"), FormatHours(p.Hours)})
	}
	return rows
}

func balance(h float64) string {
	if h < 0 {
		return StyleRed.Render(FormatHours(h))
	}
	return StyleGreen.Render(FormatHours(h))
}

// FormatTeam renders every operational user's month, busiest first.
func FormatTeam(resp *app.TeamOverviewResponse) string {
	var b strings.Builder
	b.WriteString(Header("Team · " + resp.Month))
	b.WriteString("\n\n")

	if len(resp.Members) == 0 {
		b.WriteString(Dim("No operational users.") + "\n")
		return b.String()
	}

	cols := []Column{
		{Title: "NAME"},
		{Title: "CAPACITY", Right: true},
		{Title: "OCCUPIED", Right: true},
		{Title: "BALANCE", Right: true},
		{Title: "OCCUPANCY"},
		{Title: "STATUS"},
	}
	rows := make([][]string, 0, len(resp.Members))
	for _, m := range resp.Members {
		a := m.Availability
		rows = append(rows, []string{
			Bold(m.User.Name),
			FormatHours(a.Capacity),
			FormatHours(a.TotalOccupancy),
			balance(a.Balance),
			RenderOccupancy(a.OccupancyRate, occupancyBarWidth),
			OccupancyIndicator(a.Status),
		})
	}
	b.WriteString(RenderTable(cols, rows))
	fmt.Fprintf(&b, "\n%s %.2f%% of team capacity still free\n", Dim("Elasticity"), resp.Elasticity)
	return b.String()
}
