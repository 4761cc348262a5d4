// Package home is the main screen: the advisory chat.
package home

import (
	"context"
	"errors"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/goabroadai/goabroad/internal/chat"
	"github.com/goabroadai/goabroad/internal/router"
	"github.com/goabroadai/goabroad/internal/screen"
	"github.com/goabroadai/goabroad/internal/screens/notice"
	"github.com/goabroadai/goabroad/internal/ui/layout"
	"github.com/goabroadai/goabroad/internal/ui/markdown"
	"github.com/goabroadai/goabroad/internal/ui/theme"
)

const (
	// MsgNoProfile is shown when chatting before any profile was submitted.
	MsgNoProfile = "Please submit your profile first!"

	thinking = "Thinking..."
)

// askDoneMsg carries the outcome of one question.
type askDoneMsg struct {
	TurnID string
	Reply  string
	Err    error
}

// Config wires the chat screen to its collaborators.
type Config struct {
	Conversation *chat.Conversation
	Asker        chat.Asker
	Identity     chat.Identity
	Renderer     *markdown.Renderer
	Logger       *zap.Logger

	// ProfileScreen builds a fresh profile form screen.
	ProfileScreen func() screen.Screen
}

// HomeScreen shows the message log above a single-line question input.
type HomeScreen struct {
	conv       *chat.Conversation
	asker      chat.Asker
	identity   chat.Identity
	renderer   *markdown.Renderer
	logger     *zap.Logger
	newProfile func() screen.Screen

	input    textinput.Model
	log      viewport.Model
	spinner  spinner.Model
	width    int
	height   int
	rendered int // number of messages in the last rendered log
}

var (
	_ screen.Screen            = (*HomeScreen)(nil)
	_ screen.BackgroundHandler = (*HomeScreen)(nil)
)

// New creates the chat screen.
func New(cfg Config) *HomeScreen {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = markdown.New("", 0)
	}

	in := textinput.New()
	in.Placeholder = "Ask about universities, scholarships, visas, costs..."
	in.Prompt = "› "
	in.CharLimit = 2000

	return &HomeScreen{
		conv:       cfg.Conversation,
		asker:      cfg.Asker,
		identity:   cfg.Identity,
		renderer:   renderer,
		logger:     logger.Named("chat"),
		newProfile: cfg.ProfileScreen,
		input:      in,
		log:        viewport.New(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Secondary)),
		),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.input.Focus()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case askDoneMsg:
		h.finish(msg)
		return h, nil

	case spinner.TickMsg:
		return h, h.tick(msg)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return h, h.send()
		case "ctrl+p":
			return h, h.openProfile()
		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			h.log, cmd = h.log.Update(msg)
			return h, cmd
		}
	}

	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

// HandleBackground lets a question finish while another screen is on top.
// The answer lands in the conversation and the spinner keeps its own ticks.
func (h *HomeScreen) HandleBackground(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case askDoneMsg:
		h.finish(msg)
		return nil, true
	case spinner.TickMsg:
		if msg.ID != h.spinner.ID() {
			return nil, false
		}
		return h.tick(msg), true
	}
	return nil, false
}

func (h *HomeScreen) tick(msg spinner.TickMsg) tea.Cmd {
	if !h.conv.Sending() {
		return nil
	}
	var cmd tea.Cmd
	h.spinner, cmd = h.spinner.Update(msg)
	h.refresh(false)
	return cmd
}

// send starts a question from the input line.
func (h *HomeScreen) send() tea.Cmd {
	turn, err := h.conv.Begin(h.input.Value())
	switch {
	case errors.Is(err, chat.ErrEmptyQuestion), errors.Is(err, chat.ErrBusy):
		return nil
	case errors.Is(err, chat.ErrNoIdentity):
		return notice.New("Chat", MsgNoProfile, notice.Info).
			Then(h.replaceWithProfile()).
			Push()
	case err != nil:
		h.logger.Error("begin question", zap.Error(err))
		return nil
	}

	h.input.Reset()
	h.refresh(true)

	asker := h.asker
	ask := func() tea.Msg {
		reply, err := asker.Ask(context.Background(), turn.UserID, turn.Question)
		return askDoneMsg{TurnID: turn.ID, Reply: reply, Err: err}
	}
	return tea.Batch(ask, h.spinner.Tick)
}

func (h *HomeScreen) finish(msg askDoneMsg) {
	var err error
	if msg.Err != nil {
		h.logger.Warn("question failed", zap.String("turn", msg.TurnID), zap.Error(msg.Err))
		err = h.conv.Fail(msg.TurnID, msg.Err)
	} else {
		err = h.conv.Resolve(msg.TurnID, msg.Reply)
	}
	if err != nil {
		h.logger.Warn("stale answer dropped", zap.String("turn", msg.TurnID), zap.Error(err))
	}
	h.refresh(true)
}

func (h *HomeScreen) openProfile() tea.Cmd {
	if h.newProfile == nil {
		return nil
	}
	s := h.newProfile()
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// replaceWithProfile swaps the notice on top of the stack for the form.
func (h *HomeScreen) replaceWithProfile() tea.Cmd {
	if h.newProfile == nil {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: h.newProfile()} }
}

// refresh re-renders the log into the viewport.
func (h *HomeScreen) refresh(toBottom bool) {
	if h.width == 0 {
		return
	}
	h.log.SetContent(h.renderLog(h.width))
	h.rendered = h.conv.Len()
	if toBottom {
		h.log.GotoBottom()
	}
}

func (h *HomeScreen) renderLog(width int) string {
	msgs := h.conv.Messages()
	if len(msgs) == 0 && !h.conv.Sending() {
		return h.renderWelcome(width)
	}

	textStyle := lipgloss.NewStyle().Foreground(theme.Text).Width(width - 2)
	blocks := make([]string, 0, len(msgs)+1)
	for _, m := range msgs {
		switch m.Role {
		case chat.RoleUser:
			label := theme.UserLabel.Render("You")
			switch m.Status {
			case chat.StatusPending:
				label += theme.PendingMark.Render(" · sending")
			case chat.StatusFailed:
				label += lipgloss.NewStyle().Foreground(theme.Error).Render(" · not delivered")
			}
			blocks = append(blocks, label+"\n"+textStyle.Render(m.Content))
		default:
			blocks = append(blocks, theme.AssistantLabel.Render("Advisor")+"\n"+h.renderer.Render(m.Content))
		}
	}
	if h.conv.Sending() {
		blocks = append(blocks, theme.AssistantLabel.Render("Advisor")+"\n"+
			h.spinner.View()+" "+theme.PendingMark.Render(thinking))
	}
	return strings.Join(blocks, "\n\n")
}

func (h *HomeScreen) renderWelcome(width int) string {
	title := theme.Title.Width(width).Render("Welcome to GoAbroadAI")
	sub := theme.Subtitle.Width(width).
		Render("Ask me anything about studying abroad: universities, scholarships, visas and costs.")
	lines := []string{"", title, "", sub}
	if h.identity == nil || h.identity.UserID() == 0 {
		hint := theme.Hint.Width(width).Align(lipgloss.Center).
			Render("Start by creating your profile: press Ctrl+P.")
		lines = append(lines, "", hint)
	}
	return strings.Join(lines, "\n")
}

func (h *HomeScreen) View(width, height int) string {
	header := theme.Title.Width(width).
		Render("GoAbroadAI · Your Personal AI Study Abroad Consultant")

	h.input.SetWidth(width - 8)
	inputBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width - 2).
		Render(h.input.View())

	logHeight := height - lipgloss.Height(header) - lipgloss.Height(inputBox) - 2
	if logHeight < 1 {
		logHeight = 1
	}

	if width != h.width || logHeight != h.height {
		h.width, h.height = width, logHeight
		h.log.SetWidth(width)
		h.log.SetHeight(logHeight)
		h.renderer.SetWidth(width - 4)
		h.refresh(true)
	} else if h.rendered != h.conv.Len() {
		h.refresh(true)
	}

	return strings.Join([]string{header, "", h.log.View(), "", inputBox}, "\n")
}

func (h *HomeScreen) Title() string {
	return "Chat"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Ctrl+P", Description: "Update Profile"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
