// Package profileform is the student profile form screen.
package profileform

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/filepicker"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/goabroadai/goabroad/internal/profile"
	"github.com/goabroadai/goabroad/internal/screen"
	"github.com/goabroadai/goabroad/internal/ui/components"
	"github.com/goabroadai/goabroad/internal/ui/layout"
	"github.com/goabroadai/goabroad/internal/ui/theme"
)

const screenTitle = "Student Profile"

// Submitter sends a finished draft.
type Submitter interface {
	Submit(ctx context.Context, d profile.Draft) (*profile.Outcome, error)
}

// submitDoneMsg carries the outcome of a submission.
type submitDoneMsg struct {
	Outcome *profile.Outcome
	Err     error
}

// Config wires the form screen.
type Config struct {
	// Form holds the draft. Sharing one Form between screen instances keeps
	// the draft when the screen is closed and opened again.
	Form *profile.Form

	// Submission runs the upload. When nil, a private one is built around
	// Submitter.
	Submission *Submission
	Submitter  Submitter
	Logger     *zap.Logger

	// StartDir is where the resume picker opens. Defaults to the working
	// directory.
	StartDir string
}

// ProfileScreen edits and submits the student profile.
type ProfileScreen struct {
	form       *profile.Form
	submission *Submission
	logger     *zap.Logger
	startDir   string

	items     []item
	focus     int
	editor    components.TextInput
	countries components.Checklist

	picking bool
	picker  filepicker.Model

	offset int
	width  int
}

var _ screen.Screen = (*ProfileScreen)(nil)

// New creates the profile form screen.
func New(cfg Config) *ProfileScreen {
	form := cfg.Form
	if form == nil {
		form = profile.NewForm(profile.DefaultDraft())
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	startDir := cfg.StartDir
	if startDir == "" {
		if wd, err := os.Getwd(); err == nil {
			startDir = wd
		}
	}

	submission := cfg.Submission
	if submission == nil {
		submission = NewSubmission(cfg.Submitter, logger)
	}

	s := &ProfileScreen{
		form:       form,
		submission: submission,
		logger:     logger.Named("profileform"),
		startDir:   startDir,
		countries:  components.NewChecklist(profile.Destinations()),
		width:      80,
	}
	s.items = buildItems(form.Draft())
	s.loadEditor()
	return s
}

func (s *ProfileScreen) Init() tea.Cmd {
	return s.editor.Focus()
}

func (s *ProfileScreen) Title() string {
	return screenTitle
}

// InterceptsBack keeps Esc inside the screen while the file picker is open.
func (s *ProfileScreen) InterceptsBack() bool {
	return s.picking
}

func (s *ProfileScreen) current() item {
	return s.items[s.focus]
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(submitDoneMsg); ok {
		return s, s.submission.finish(m)
	}

	if s.picking {
		return s, s.updatePicker(msg)
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.current().kind == kindText {
			var cmd tea.Cmd
			s.editor, cmd = s.editor.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	switch kmsg.String() {
	case "ctrl+s":
		return s, s.submit()
	case "tab":
		return s, s.move(1)
	case "shift+tab":
		return s, s.move(-1)
	}

	switch s.current().kind {
	case kindText:
		return s, s.updateText(kmsg)
	case kindSelect:
		return s, s.updateSelect(kmsg)
	case kindCountries:
		return s, s.updateCountries(kmsg)
	case kindResume:
		return s, s.updateResume(kmsg)
	case kindButton:
		return s, s.updateButton(kmsg)
	}
	return s, nil
}

func (s *ProfileScreen) updateText(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "down":
		return s.move(1)
	case "up":
		return s.move(-1)
	}
	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	s.current().apply(s.form, s.editor.Value())
	return cmd
}

func (s *ProfileScreen) updateSelect(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "down":
		return s.move(1)
	case "up":
		return s.move(-1)
	}
	it := s.current()
	sel := components.NewSelect(it.label, it.options, it.value(s.form.Draft()))
	sel, changed := sel.Update(msg)
	if changed {
		it.apply(s.form, sel.Value())
	}
	return nil
}

func (s *ProfileScreen) updateCountries(msg tea.KeyPressMsg) tea.Cmd {
	var res components.ChecklistResult
	s.countries, res = s.countries.Update(msg)
	switch res {
	case components.ChecklistToggled:
		s.form.ToggleCountry(s.countries.Current())
	case components.ChecklistLeaveUp:
		return s.move(-1)
	case components.ChecklistLeaveDown:
		return s.move(1)
	}
	return nil
}

func (s *ProfileScreen) updateResume(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		return s.openPicker()
	case "x", "backspace", "delete":
		s.form.ClearResume()
	case "down":
		return s.move(1)
	case "up":
		return s.move(-1)
	}
	return nil
}

func (s *ProfileScreen) updateButton(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "down":
		return s.move(1)
	case "up":
		return s.move(-1)
	case "enter":
	default:
		return nil
	}

	it := s.current()
	switch it.action {
	case actAddEducation:
		s.form.AddEducation()
		n := len(s.form.Draft().Education)
		s.rebuild()
		return s.focusWhere(func(o item) bool { return o.edu == n-1 && o.kind != kindButton })
	case actRemoveEducation:
		s.form.RemoveEducation(it.edu)
		s.rebuild()
		return s.loadEditor()
	case actSubmit:
		return s.submit()
	}
	return nil
}

// rebuild recomputes the layout after the education list changed, keeping
// the focus index in range.
func (s *ProfileScreen) rebuild() {
	s.items = buildItems(s.form.Draft())
	if s.focus >= len(s.items) {
		s.focus = len(s.items) - 1
	}
}

func (s *ProfileScreen) move(delta int) tea.Cmd {
	next := s.focus + delta
	if next < 0 || next >= len(s.items) {
		return nil
	}
	s.focus = next
	if s.current().kind == kindCountries {
		if delta > 0 {
			s.countries.Cursor = 0
		} else {
			s.countries.Cursor = len(s.countries.Items) - 1
		}
	}
	return s.loadEditor()
}

func (s *ProfileScreen) focusWhere(match func(item) bool) tea.Cmd {
	for i, it := range s.items {
		if match(it) {
			s.focus = i
			break
		}
	}
	return s.loadEditor()
}

// loadEditor points the shared text editor at the focused item.
func (s *ProfileScreen) loadEditor() tea.Cmd {
	if s.editor.Model.Focused() {
		s.editor.Blur()
	}
	it := s.current()
	if it.kind != kindText {
		return nil
	}
	s.editor = components.NewTextInput(it.label, it.placeholder, it.numeric, s.inputWidth())
	s.editor.Required = it.required
	s.editor.SetValue(it.value(s.form.Draft()))
	return s.editor.Focus()
}

func (s *ProfileScreen) inputWidth() int {
	return max(s.width-labelWidth-10, 10)
}

func (s *ProfileScreen) openPicker() tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".pdf"}
	fp.AutoHeight = false
	fp.SetHeight(10)
	fp.CurrentDirectory = s.startDir
	if cur := s.form.Draft().ResumePath; cur != "" {
		fp.CurrentDirectory = filepath.Dir(cur)
	}
	s.picker = fp
	s.picking = true
	return s.picker.Init()
}

func (s *ProfileScreen) updatePicker(msg tea.Msg) tea.Cmd {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "esc" {
		s.picking = false
		return nil
	}

	var cmd tea.Cmd
	s.picker, cmd = s.picker.Update(msg)
	if ok, path := s.picker.DidSelectFile(msg); ok {
		s.form.SetResume(path)
		s.picking = false
		s.logger.Debug("resume attached", zap.String("path", path))
	}
	return cmd
}

func (s *ProfileScreen) submit() tea.Cmd {
	return s.submission.start(s.form.Draft())
}

const labelWidth = 22

func (s *ProfileScreen) View(width, height int) string {
	if width != s.width {
		s.width = width
		s.editor.Model.SetWidth(s.inputWidth())
	}

	draft := s.form.Draft()
	head := theme.Title.Render(screenTitle) + "\n" +
		components.Meter{Label: "Completeness", Percent: profile.Completeness(draft), Width: min(width-4, 60)}.View()

	if s.picking {
		body := theme.SectionTitle.Render("Choose your resume (PDF)") + "\n" +
			theme.Hint.Render(s.picker.CurrentDirectory) + "\n\n" + s.picker.View()
		return lipgloss.NewStyle().Padding(0, 2).Render(head + "\n\n" + body)
	}

	lines, focusStart, focusEnd := s.renderItems(draft)
	visible := max(height-lipgloss.Height(head)-2, 3)

	if focusStart < s.offset {
		s.offset = focusStart
	}
	if focusEnd > s.offset+visible {
		s.offset = focusEnd - visible
	}
	s.offset = max(min(s.offset, len(lines)-visible), 0)
	end := min(s.offset+visible, len(lines))

	return lipgloss.NewStyle().Padding(0, 2).
		Render(head + "\n\n" + strings.Join(lines[s.offset:end], "\n"))
}

// renderItems returns the form lines and the line range of the focused item.
func (s *ProfileScreen) renderItems(d profile.Draft) (lines []string, focusStart, focusEnd int) {
	section := "\x00"
	for i, it := range s.items {
		if it.section != section && it.section != "" {
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, theme.SectionTitle.Render(it.section))
			section = it.section
		}
		focused := i == s.focus
		block := strings.Split(s.renderItem(it, d, focused), "\n")
		if focused {
			focusStart = len(lines)
			focusEnd = len(lines) + len(block)
		}
		lines = append(lines, block...)
	}
	return lines, focusStart, focusEnd
}

func (s *ProfileScreen) renderItem(it item, d profile.Draft, focused bool) string {
	pad := func(label string) string {
		return lipgloss.NewStyle().Width(labelWidth).Render(components.RenderLabel(label, it.required, focused))
	}

	switch it.kind {
	case kindText:
		if focused {
			return pad(it.label) + s.editor.Model.View()
		}
		v := it.value(d)
		if v == "" {
			return pad(it.label) + theme.Hint.Render(it.placeholder)
		}
		return pad(it.label) + theme.Body.Render(v)

	case kindSelect:
		sel := components.NewSelect(it.label, it.options, it.value(d))
		return sel.View(focused)

	case kindCountries:
		head := components.RenderLabel(it.label, true, focused) +
			theme.Hint.Render(strings.Join(d.PreferredCountries, ", "))
		return head + "\n" + s.countries.View(focused, d.HasCountry)

	case kindResume:
		v := theme.Hint.Render("none, press Enter to choose a file")
		if d.ResumePath != "" {
			v = theme.Body.Render(filepath.Base(d.ResumePath)) + theme.Hint.Render("  (x to remove)")
		}
		return pad(it.label) + v

	case kindButton:
		label := it.label
		disabled := false
		if it.action == actSubmit && s.submission.Running() {
			label = "Submitting..."
			disabled = true
		}
		return components.Button{Label: label, Focused: focused, Disabled: disabled}.View()
	}
	return ""
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	if s.picking {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Browse"},
			{Key: "Enter", Description: "Choose"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Move"},
		{Key: "←→", Description: "Change"},
		{Key: "Space", Description: "Toggle"},
		{Key: "Ctrl+S", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
	}
}
