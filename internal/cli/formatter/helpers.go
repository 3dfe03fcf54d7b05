package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/capacity/internal/calendar"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatHours renders hours with at most two decimals, e.g. "8h" or "12.5h".
func FormatHours(h float64) string {
	s := fmt.Sprintf("%.2f", h)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		s = "0"
	}
	return s + "h"
}

// FormatPercent renders a 0..1 rate as a percentage.
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate*100)
}

// FormatDate renders a day as YYYY-MM-DD with its weekday.
func FormatDate(t time.Time) string {
	return t.Format(calendar.DateLayout) + " " + Dim(t.Format("Mon"))
}

// FormatOptionalDate renders nil as a dim placeholder.
func FormatOptionalDate(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return FormatDate(*t)
}

// RelativeDays describes how far day is from today in calendar days.
func RelativeDays(day, today time.Time) string {
	days := int(math.Round(calendar.Day(day).Sub(calendar.Day(today)).Hours() / 24))

	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 0:
		return fmt.Sprintf("in %dd", days)
	default:
		return fmt.Sprintf("%dd ago", -days)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
