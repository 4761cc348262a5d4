// Package notice shows a blocking message, the terminal stand-in for a
// browser alert.
package notice

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/goabroadai/goabroad/internal/router"
	"github.com/goabroadai/goabroad/internal/screen"
	"github.com/goabroadai/goabroad/internal/ui/components"
	"github.com/goabroadai/goabroad/internal/ui/layout"
	"github.com/goabroadai/goabroad/internal/ui/theme"
)

// Tone selects the color of the notice.
type Tone int

const (
	Info Tone = iota
	Success
	Failure
)

// NoticeScreen displays a message until the user acknowledges it.
type NoticeScreen struct {
	title   string
	message string
	tone    Tone
	then    tea.Cmd
	done    bool
}

var (
	_ screen.Screen          = (*NoticeScreen)(nil)
	_ screen.BackInterceptor = (*NoticeScreen)(nil)
)

// New creates a notice that pops itself when acknowledged.
func New(title, message string, tone Tone) *NoticeScreen {
	return &NoticeScreen{
		title:   title,
		message: message,
		tone:    tone,
		then:    func() tea.Msg { return router.PopScreenMsg{} },
	}
}

// Then replaces the acknowledgement command, for example to route
// somewhere other than the previous screen.
func (n *NoticeScreen) Then(cmd tea.Cmd) *NoticeScreen {
	n.then = cmd
	return n
}

// Push returns a command that pushes n onto the router.
func (n *NoticeScreen) Push() tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: n} }
}

func (n *NoticeScreen) Init() tea.Cmd {
	return nil
}

func (n *NoticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || n.done {
		return n, nil
	}
	switch kmsg.String() {
	case "enter", "esc", "space":
		n.done = true
		return n, n.then
	}
	return n, nil
}

// InterceptsBack keeps Esc from skipping the acknowledgement command.
func (n *NoticeScreen) InterceptsBack() bool { return true }

// Message returns the notice text.
func (n *NoticeScreen) Message() string { return n.message }

func (n *NoticeScreen) View(width, height int) string {
	border := theme.Primary
	switch n.tone {
	case Success:
		border = theme.Success
	case Failure:
		border = theme.Error
	}

	cw := components.CardWidth(width)
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 4).Render(n.message)
	button := components.Button{Label: "OK", Focused: true}.View()

	content := strings.Join([]string{body, "", button}, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Card(content, cw, border))
}

func (n *NoticeScreen) Title() string {
	return n.title
}

func (n *NoticeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "OK"},
	}
}
