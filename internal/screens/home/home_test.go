package home

import (
	"context"
	"errors"
	"strings"
	"testing"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/goabroadai/goabroad/internal/chat"
	"github.com/goabroadai/goabroad/internal/router"
	"github.com/goabroadai/goabroad/internal/screen"
	"github.com/goabroadai/goabroad/internal/screens/notice"
	"github.com/goabroadai/goabroad/internal/ui/markdown"
)

type fixedIdentity int64

func (f fixedIdentity) UserID() int64 { return int64(f) }

type stubAsker struct {
	calls []string
	reply string
	err   error
}

func (s *stubAsker) Ask(_ context.Context, _ int64, question string) (string, error) {
	s.calls = append(s.calls, question)
	return s.reply, s.err
}

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "profile" }
func (s *stubScreen) Title() string                           { return "Profile" }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(h *HomeScreen, s string) {
	for _, r := range s {
		h.Update(keyPress(r))
	}
}

func testHome(id int64, asker *stubAsker) (*HomeScreen, *chat.Conversation) {
	identity := fixedIdentity(id)
	conv := chat.New(identity)
	h := New(Config{
		Conversation:  conv,
		Asker:         asker,
		Identity:      identity,
		Renderer:      markdown.New("notty", 60),
		ProfileScreen: func() screen.Screen { return &stubScreen{} },
	})
	h.Init()
	return h, conv
}

// runBatch executes cmd and every command nested in a tea.BatchMsg,
// returning the produced messages that are not spinner ticks.
func runBatch(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		if c == nil {
			continue
		}
		if m, ok := c().(askDoneMsg); ok {
			out = append(out, m)
		}
	}
	return out
}

func TestSendSuccess(t *testing.T) {
	asker := &stubAsker{reply: "Consider **TU Munich**."}
	h, conv := testHome(7, asker)
	h.View(80, 30)

	typeText(h, "Germany options?")
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command after enter")
	}
	if !conv.Sending() {
		t.Fatal("conversation should be sending")
	}
	if h.input.Value() != "" {
		t.Errorf("input should be cleared, got %q", h.input.Value())
	}
	if !strings.Contains(h.View(80, 30), thinking) {
		t.Error("expected the thinking indicator while sending")
	}

	msgs := runBatch(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one askDoneMsg, got %d", len(msgs))
	}
	h.Update(msgs[0])

	if conv.Sending() {
		t.Error("sending should be cleared")
	}
	if conv.Len() != 2 {
		t.Fatalf("expected 2 messages, got %d", conv.Len())
	}
	if got := asker.calls; len(got) != 1 || got[0] != "Germany options?" {
		t.Errorf("asker calls = %v", got)
	}
	view := h.View(80, 30)
	if !strings.Contains(view, "TU Munich") {
		t.Errorf("reply missing from view:\n%s", view)
	}
	if strings.Contains(view, thinking) {
		t.Error("thinking indicator should be gone")
	}
}

func TestSendFailureShowsFallback(t *testing.T) {
	asker := &stubAsker{err: errors.New("backend down")}
	h, conv := testHome(7, asker)
	h.View(80, 30)

	typeText(h, "hello")
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	for _, m := range runBatch(cmd) {
		h.Update(m)
	}

	msgs := conv.Messages()
	if len(msgs) != 2 || msgs[1].Content != chat.Fallback {
		t.Fatalf("expected fallback reply, got %+v", msgs)
	}
	if conv.Sending() {
		t.Error("sending should be cleared after failure")
	}
	if !strings.Contains(h.View(80, 30), "not delivered") {
		t.Error("failed question should be marked")
	}
}

func TestAnswerHandledInBackground(t *testing.T) {
	asker := &stubAsker{reply: "Try DAAD scholarships."}
	h, conv := testHome(7, asker)

	typeText(h, "funding?")
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	msgs := runBatch(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one askDoneMsg, got %d", len(msgs))
	}

	if _, ok := h.HandleBackground(spinner.TickMsg{ID: -1}); ok {
		t.Error("ticks of other spinners must not be claimed")
	}
	if _, ok := h.HandleBackground(h.spinner.Tick()); !ok {
		t.Error("own spinner tick should be claimed")
	}
	if _, ok := h.HandleBackground(msgs[0]); !ok {
		t.Fatal("answer should be claimed")
	}
	if conv.Sending() || conv.Len() != 2 {
		t.Fatalf("sending = %v, len = %d", conv.Sending(), conv.Len())
	}

	typeText(h, "and visas?")
	if _, cmd := h.Update(specialKey(tea.KeyEnter)); cmd == nil {
		t.Error("a new question should start once the answer landed")
	}
}

func TestEmptyInputIgnored(t *testing.T) {
	asker := &stubAsker{}
	h, conv := testHome(7, asker)

	typeText(h, "   ")
	if _, cmd := h.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("expected no command for blank input")
	}
	if conv.Len() != 0 {
		t.Error("blank input must not be logged")
	}
}

func TestNoIdentityRedirectsToProfile(t *testing.T) {
	asker := &stubAsker{}
	h, conv := testHome(0, asker)

	typeText(h, "hi")
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a notice")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	n, ok := push.Screen.(*notice.NoticeScreen)
	if !ok {
		t.Fatalf("expected notice screen, got %T", push.Screen)
	}
	if n.Message() != MsgNoProfile {
		t.Errorf("message = %q", n.Message())
	}

	_, then := n.Update(specialKey(tea.KeyEnter))
	replace, ok := then().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", then())
	}
	if replace.Screen.Title() != "Profile" {
		t.Errorf("expected profile screen, got %q", replace.Screen.Title())
	}

	if len(asker.calls) != 0 {
		t.Error("no request may be sent without an identity")
	}
	if conv.Len() != 0 {
		t.Error("log must stay empty")
	}
	if h.input.Value() != "hi" {
		t.Errorf("input should be kept, got %q", h.input.Value())
	}
}

func TestCtrlPOpensProfile(t *testing.T) {
	h, _ := testHome(7, &stubAsker{})
	_, cmd := h.Update(tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
}

func TestWelcomeHint(t *testing.T) {
	h, _ := testHome(0, &stubAsker{})
	if !strings.Contains(h.View(80, 30), "Ctrl+P") {
		t.Error("expected profile hint without identity")
	}

	h2, _ := testHome(3, &stubAsker{})
	if strings.Contains(h2.View(80, 30), "Start by creating your profile") {
		t.Error("profile hint should be hidden once a profile exists")
	}
}
