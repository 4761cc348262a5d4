package components

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// CardWidth returns the inner width for a centered card inside a frame of
// the given width.
func CardWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card of width cw.
func Card(content string, cw int, border color.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw).
		Padding(1, 2).
		Render(content)
}
