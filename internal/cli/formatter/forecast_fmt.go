package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/capacity/internal/app"
)

// FormatForecast renders the ideal and realistic delivery of one task.
func FormatForecast(resp *app.ForecastTaskResponse, today time.Time) string {
	f := resp.Forecast
	var b strings.Builder

	fmt.Fprintf(&b, "%-12s %s\n", "Status", string(resp.Task.Status))
	fmt.Fprintf(&b, "%-12s %s %s\n", "Capacity", FormatHours(resp.DailyCapacity), Dim("per day of "+resp.UserID))
	fmt.Fprintf(&b, "%-12s %s\n", "Remaining", FormatHours(f.RemainingHours))
	fmt.Fprintf(&b, "%-12s %s\n", "Ideal", withRelative(f.Ideal, today))
	fmt.Fprintf(&b, "%-12s %s\n", "Realistic", withRelative(f.Realistic, today))
	fmt.Fprintf(&b, "%-12s %s", "Commitment", SaturationFlag(f.IsSaturated))

	return RenderBox("Forecast · "+resp.Task.Title, b.String()) + "\n"
}

func withRelative(t *time.Time, today time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return FormatDate(*t) + " " + Dim("("+RelativeDays(*t, today)+")")
}

// FormatRelease renders when a user clears their open backlog.
func FormatRelease(resp *app.ReleaseDateResponse, today time.Time) string {
	if resp.Forecast == nil {
		return fmt.Sprintf("%s has no open backlog.\n", Bold(resp.User.Name))
	}
	f := resp.Forecast
	var b strings.Builder

	fmt.Fprintf(&b, "%-12s %d\n", "Open tasks", f.TaskCount)
	fmt.Fprintf(&b, "%-12s %s\n", "Remaining", FormatHours(f.RemainingHours))
	fmt.Fprintf(&b, "%-12s %s\n", "Ideal", withRelative(&f.Ideal, today))
	fmt.Fprintf(&b, "%-12s %s\n", "Realistic", withRelative(&f.Realistic, today))
	fmt.Fprintf(&b, "%-12s %s", "Commitment", SaturationFlag(f.IsSaturated))

	return RenderBox("Release · "+resp.User.Name, b.String()) + "\n"
}
