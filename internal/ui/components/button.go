package components

import "github.com/goabroadai/goabroad/internal/ui/theme"

// Button renders a form action. The owning screen handles Enter.
type Button struct {
	Label    string
	Focused  bool
	Disabled bool
}

func (b Button) View() string {
	label := " ▸ " + b.Label + " "
	switch {
	case b.Disabled:
		return theme.ButtonDisabled.Render(label)
	case b.Focused:
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
