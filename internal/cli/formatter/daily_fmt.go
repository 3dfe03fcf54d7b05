package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/capacity/internal/app"
)

// FormatDaily renders the per-day occupancy of one user.
func FormatDaily(resp *app.DailyAllocationResponse) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Daily allocation · %s", resp.User.Name)))
	fmt.Fprintf(&b, "\n%s %s per day\n\n", Dim("Capacity"), FormatHours(resp.DailyCapacity))

	cols := []Column{
		{Title: "DATE"},
		{Title: "PLANNED", Right: true},
		{Title: "CONTINUOUS", Right: true},
		{Title: "BUFFER", Right: true},
		{Title: "TOTAL", Right: true},
		{Title: "TASKS"},
	}
	rows := make([][]string, 0, len(resp.Days))
	for _, d := range resp.Days {
		if !d.IsWorkingDay {
			rows = append(rows, []string{Dim(FormatDate(d.Date)), Dim("off"), "", "", "", ""})
			continue
		}
		total := FormatHours(d.TotalOccupancy)
		if d.TotalOccupancy > resp.DailyCapacity {
			total = StyleRed.Render(total)
		}
		rows = append(rows, []string{
			FormatDate(d.Date),
			FormatHours(d.PlannedHours),
			FormatHours(d.ContinuousHours),
			FormatHours(d.BufferHours),
			total,
			Dim(strings.Join(d.ActiveTaskIDs, ", ")),
		})
	}
	b.WriteString(RenderTable(cols, rows))
	return b.String()
}
