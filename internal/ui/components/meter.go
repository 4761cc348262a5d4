package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/goabroadai/goabroad/internal/ui/theme"
)

// Meter is a horizontal fill bar with a trailing percentage.
type Meter struct {
	Label   string
	Percent float64
	Width   int
}

// View renders the meter within Width columns.
func (m Meter) View() string {
	var result string
	if m.Label != "" {
		result = theme.Label.Render(m.Label) + "  "
	}

	const percentWidth = 6 // "  100%"
	barWidth := m.Width - lipgloss.Width(result) - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	pct := min(max(m.Percent, 0), 1)
	filled := int(float64(barWidth) * pct)

	result += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	result += lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d%%", int(pct*100)))
	return result
}
