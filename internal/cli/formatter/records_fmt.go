package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/capacity/internal/app"
	"github.com/alexanderramin/capacity/internal/domain"
)

func FormatHolidays(holidays []domain.Holiday) string {
	if len(holidays) == 0 {
		return Dim("No holidays registered.") + "\n"
	}
	rows := make([][]string, 0, len(holidays))
	for _, h := range holidays {
		to := Dim("--")
		if h.EndDate != nil {
			to = FormatDate(*h.EndDate)
		}
		rows = append(rows, []string{h.Name, FormatDate(h.Date), to, TruncID(h.ID)})
	}
	return RenderTable(Cols("NAME", "FROM", "TO", "ID"), rows)
}

func FormatImportResult(r *app.ImportResult) string {
	parts := []string{
		fmt.Sprintf("%d users", r.Users),
		fmt.Sprintf("%d projects", r.Projects),
		fmt.Sprintf("%d members", r.Members),
		fmt.Sprintf("%d tasks", r.Tasks),
		fmt.Sprintf("%d allocations", r.Allocations),
		fmt.Sprintf("%d timesheets", r.Timesheets),
		fmt.Sprintf("%d holidays", r.Holidays),
	}
	return StyleGreen.Render("✔ Imported ") + strings.Join(parts, Dim(" · ")) + "\n"
}

func FormatTimesheet(e *domain.TimesheetEntry) string {
	return fmt.Sprintf("%s %s on %s for task %s %s\n",
		StyleGreen.Render("✔ Logged"),
		FormatHours(e.TotalHours),
		FormatDate(e.Date),
		e.TaskID,
		TruncID(e.ID))
}
