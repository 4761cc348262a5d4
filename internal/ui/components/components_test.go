package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestSelectUnsetUntilKeyPress(t *testing.T) {
	s := NewSelect("Currency", []string{"BDT", "USD", "EUR"}, "")
	if s.Value() != "" {
		t.Fatalf("expected no selection, got %q", s.Value())
	}
	if !strings.Contains(s.View(false), "Select...") {
		t.Error("unset selector should show a placeholder")
	}

	s, changed := s.Update(key("right"))
	if !changed || s.Value() != "BDT" {
		t.Errorf("right from unset = %q, changed %v", s.Value(), changed)
	}

	s = NewSelect("Currency", []string{"BDT", "USD", "EUR"}, "")
	s, _ = s.Update(key("left"))
	if s.Value() != "EUR" {
		t.Errorf("left from unset = %q, want EUR", s.Value())
	}
}

func TestSelectWraps(t *testing.T) {
	s := NewSelect("Currency", []string{"BDT", "USD"}, "USD")
	s, _ = s.Update(key("right"))
	if s.Value() != "BDT" {
		t.Errorf("expected wrap to BDT, got %q", s.Value())
	}
	s, _ = s.Update(key("left"))
	if s.Value() != "USD" {
		t.Errorf("expected wrap back to USD, got %q", s.Value())
	}
	if _, changed := s.Update(key("q")); changed {
		t.Error("unrelated keys should not change the selection")
	}
}

func TestChecklistEdges(t *testing.T) {
	c := NewChecklist([]string{"Canada", "Germany"})

	c, res := c.Update(key("up"))
	if res != ChecklistLeaveUp {
		t.Errorf("up at top = %v, want LeaveUp", res)
	}
	c, res = c.Update(key("down"))
	if res != ChecklistMoved || c.Current() != "Germany" {
		t.Errorf("down = %v on %q", res, c.Current())
	}
	c, res = c.Update(key("down"))
	if res != ChecklistLeaveDown {
		t.Errorf("down at bottom = %v, want LeaveDown", res)
	}
	if _, res = c.Update(key("space")); res != ChecklistToggled {
		t.Errorf("space = %v, want Toggled", res)
	}
}

func TestChecklistView(t *testing.T) {
	c := NewChecklist([]string{"Canada", "Germany"})
	out := c.View(true, func(s string) bool { return s == "Germany" })
	if !strings.Contains(out, "[ ] Canada") || !strings.Contains(out, "[✓] Germany") {
		t.Errorf("unexpected view:\n%s", out)
	}
}

func TestMeterClamps(t *testing.T) {
	if out := (Meter{Percent: 1.7, Width: 30}).View(); !strings.Contains(out, "100%") {
		t.Errorf("expected clamp to 100%%, got %q", out)
	}
	if out := (Meter{Label: "Completeness", Percent: -1, Width: 40}).View(); !strings.Contains(out, " 0%") {
		t.Errorf("expected clamp to 0%%, got %q", out)
	}
}
