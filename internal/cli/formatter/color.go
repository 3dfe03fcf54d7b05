package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/capacity/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SetPlain turns color output off or back on for every style in the package.
func SetPlain(plain bool) {
	if plain {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}

// OccupancyColor returns the style for an occupancy status.
func OccupancyColor(status domain.OccupancyStatus) lipgloss.Style {
	switch status {
	case domain.OccupancyOverloaded:
		return StyleRed
	case domain.OccupancyHigh:
		return StyleYellow
	case domain.OccupancyAvailable:
		return StyleGreen
	default:
		return StyleDim
	}
}

// OccupancyIndicator renders a colored status such as "● Alto".
func OccupancyIndicator(status domain.OccupancyStatus) string {
	if status == "" {
		return StyleDim.Render("● --")
	}
	return OccupancyColor(status).Render("● " + string(status))
}

// SaturationFlag marks forecasts whose realistic date only exists because of
// the minimum-capacity floor.
func SaturationFlag(saturated bool) string {
	if saturated {
		return StyleRed.Render("▲ saturated")
	}
	return StyleGreen.Render("ok")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
