package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/goabroadai/goabroad/internal/chat"
	"github.com/goabroadai/goabroad/internal/identity"
	"github.com/goabroadai/goabroad/internal/profile"
	"github.com/goabroadai/goabroad/internal/router"
	"github.com/goabroadai/goabroad/internal/screen"
	"github.com/goabroadai/goabroad/internal/screens/home"
	"github.com/goabroadai/goabroad/internal/screens/profileform"
	"github.com/goabroadai/goabroad/internal/screens/welcome"
	"github.com/goabroadai/goabroad/internal/ui/layout"
	"github.com/goabroadai/goabroad/internal/ui/markdown"
)

// Backend is the advisory API the app talks to.
type Backend interface {
	profile.Sender
	chat.Asker
}

// Options holds the dependencies the TUI needs.
type Options struct {
	Backend  Backend
	Session  *identity.Session
	Logger   *zap.Logger
	Renderer *markdown.Renderer

	// Draft seeds the profile form. Zero value means profile.DefaultDraft.
	Draft *profile.Draft

	// SkipWelcome starts directly on the chat screen.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	session *identity.Session

	// background sees every message before the router, so requests started
	// by a screen finish even when that screen is no longer on top.
	background []screen.BackgroundHandler

	width  int
	height int
}

// newAppModel wires the screens. The chat screen, the profile draft and the
// profile submission live for the whole session; form screens come and go.
func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	draft := profile.DefaultDraft()
	if opts.Draft != nil {
		draft = *opts.Draft
	}
	form := profile.NewForm(draft)
	submission := profileform.NewSubmission(
		profile.NewSubmitter(opts.Backend, opts.Session, logger), logger)

	profileScreen := func() screen.Screen {
		return profileform.New(profileform.Config{
			Form:       form,
			Submission: submission,
			Logger:     logger,
		})
	}
	chatScreen := home.New(home.Config{
		Conversation:  chat.New(opts.Session),
		Asker:         opts.Backend,
		Identity:      opts.Session,
		Renderer:      opts.Renderer,
		Logger:        logger,
		ProfileScreen: profileScreen,
	})
	homeScreen := func() screen.Screen { return chatScreen }

	initial := homeScreen()
	if !opts.SkipWelcome {
		initial = welcome.New(homeScreen)
	}
	return AppModel{
		router:     router.New(initial),
		session:    opts.Session,
		background: []screen.BackgroundHandler{chatScreen, submission},
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bi, ok := m.router.Active().(screen.BackInterceptor); ok && bi.InterceptsBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	for _, h := range m.background {
		if cmd, ok := h.HandleBackground(msg); ok {
			return m, cmd
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) userID() int64 {
	if m.session == nil {
		return 0
	}
	return m.session.UserID()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.userID(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
