package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/capacity/internal/capacity"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderOccupancy renders an occupancy bar like [██████░░] 75%.
// The bar fills at 100% and takes the color of the rate's status;
// overload still prints the real percentage.
func RenderOccupancy(rate float64, width int) string {
	if width < 2 {
		width = 2
	}
	fill := rate
	if fill < 0 {
		fill = 0
	}
	if fill > 1 {
		fill = 1
	}

	filled := int(fill * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := OccupancyColor(capacity.StatusForRate(rate))
	return fmt.Sprintf("[%s] %4.0f%%", style.Render(bar), rate*100)
}
