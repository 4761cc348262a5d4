package components

import (
	"unicode"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/goabroadai/goabroad/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and GoAbroadAI styling.
type TextInput struct {
	Model       textinput.Model
	Label       string
	Required    bool
	NumericOnly bool
}

// NewTextInput creates a new styled, unfocused text input.
func NewTextInput(label, placeholder string, numericOnly bool, width int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	if width > 0 {
		ti.SetWidth(width)
	}

	return TextInput{
		Model:       ti,
		Label:       label,
		NumericOnly: numericOnly,
	}
}

// Focus focuses the input and returns the cursor blink command.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Update handles messages. NumericOnly inputs drop non-digit keystrokes.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.Text != "" {
			for _, r := range kmsg.Text {
				if !unicode.IsDigit(r) {
					return t, nil
				}
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the label and the input.
func (t TextInput) View() string {
	return RenderLabel(t.Label, t.Required, true) + t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value and moves the cursor to the end.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
	t.Model.CursorEnd()
}

// RenderLabel renders a field label followed by a separator. Required
// fields carry an asterisk.
func RenderLabel(label string, required, focused bool) string {
	style := theme.Label
	if focused {
		style = theme.Selected
	}
	out := style.Render(label)
	if required {
		out += lipgloss.NewStyle().Foreground(theme.Error).Render(" *")
	}
	return out + style.Render(": ")
}
