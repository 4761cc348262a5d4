package components

import (
	"slices"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/goabroadai/goabroad/internal/ui/theme"
)

// Select is a single-choice selector cycled with the left and right keys.
type Select struct {
	Label    string
	Options  []string
	Selected int
}

// NewSelect creates a selector positioned on current. When current is not
// among options nothing is selected until the first key press.
func NewSelect(label string, options []string, current string) Select {
	selected := slices.Index(options, current)
	return Select{
		Label:    label,
		Options:  options,
		Selected: selected,
	}
}

// Update handles keyboard navigation. It reports whether the selection
// changed.
func (s Select) Update(msg tea.Msg) (Select, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(s.Options) == 0 {
		return s, false
	}

	switch kmsg.String() {
	case "left", "h":
		if s.Selected < 0 {
			s.Selected = len(s.Options) - 1
			return s, true
		}
		s.Selected = (s.Selected - 1 + len(s.Options)) % len(s.Options)
		return s, true
	case "right", "l", "space":
		s.Selected = (s.Selected + 1) % len(s.Options)
		return s, true
	}
	return s, false
}

// Value returns the selected option.
func (s Select) Value() string {
	if s.Selected < 0 || s.Selected >= len(s.Options) {
		return ""
	}
	return s.Options[s.Selected]
}

// View renders the selector with arrows around the current option.
func (s Select) View(focused bool) string {
	value := s.Value()
	if value == "" {
		value = "Select..."
	}
	if !focused {
		return RenderLabel(s.Label, false, false) + theme.Unselected.Render(value)
	}
	arrows := lipgloss.NewStyle().Foreground(theme.TextDim)
	return RenderLabel(s.Label, false, true) +
		arrows.Render("◂ ") + theme.Selected.Render(value) + arrows.Render(" ▸")
}
