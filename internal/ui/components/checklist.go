package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/goabroadai/goabroad/internal/ui/theme"
)

// Checklist is a vertical list of toggleable items.
type Checklist struct {
	Items  []string
	Cursor int
}

// NewChecklist creates a checklist over items.
func NewChecklist(items []string) Checklist {
	return Checklist{Items: items}
}

// ChecklistResult tells the owner what a key did.
type ChecklistResult int

const (
	ChecklistIgnored ChecklistResult = iota
	ChecklistMoved
	ChecklistToggled
	// ChecklistLeaveUp and ChecklistLeaveDown mean the cursor hit an edge
	// and focus should move to the neighbouring control.
	ChecklistLeaveUp
	ChecklistLeaveDown
)

// Update handles keyboard navigation. On ChecklistToggled the item under
// the cursor is Current().
func (c Checklist) Update(msg tea.Msg) (Checklist, ChecklistResult) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Items) == 0 {
		return c, ChecklistIgnored
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor == 0 {
			return c, ChecklistLeaveUp
		}
		c.Cursor--
		return c, ChecklistMoved
	case "down", "j":
		if c.Cursor >= len(c.Items)-1 {
			return c, ChecklistLeaveDown
		}
		c.Cursor++
		return c, ChecklistMoved
	case "space", "enter", "x":
		return c, ChecklistToggled
	}
	return c, ChecklistIgnored
}

// Current returns the item under the cursor.
func (c Checklist) Current() string {
	if c.Cursor < 0 || c.Cursor >= len(c.Items) {
		return ""
	}
	return c.Items[c.Cursor]
}

// View renders every item with its checkbox. isChecked reports the state
// of an item.
func (c Checklist) View(focused bool, isChecked func(string) bool) string {
	var b strings.Builder
	for i, item := range c.Items {
		box := "[ ]"
		if isChecked(item) {
			box = "[✓]"
		}
		line := box + " " + item
		switch {
		case focused && i == c.Cursor:
			b.WriteString(theme.Selected.Render("  ▸ " + line))
		case isChecked(item):
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("    " + line))
		default:
			b.WriteString(theme.Unselected.Render("    " + line))
		}
		if i < len(c.Items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
