package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/goabroadai/goabroad/internal/chat"
	"github.com/goabroadai/goabroad/internal/identity"
	"github.com/goabroadai/goabroad/internal/profile"
	"github.com/goabroadai/goabroad/internal/router"
	"github.com/goabroadai/goabroad/internal/screens/notice"
	"github.com/goabroadai/goabroad/internal/store"
	"github.com/goabroadai/goabroad/internal/ui/markdown"
)

type stubBackend struct{}

func (stubBackend) SubmitProfile(context.Context, profile.Body) (int64, error) { return 42, nil }
func (stubBackend) Ask(context.Context, int64, string) (string, error)        { return "ok", nil }

type askCall struct {
	userID   int64
	question string
}

// recordingBackend assigns userID to every profile and records questions.
type recordingBackend struct {
	userID  int64
	submits int
	asks    []askCall
}

func (b *recordingBackend) SubmitProfile(context.Context, profile.Body) (int64, error) {
	b.submits++
	return b.userID, nil
}

func (b *recordingBackend) Ask(_ context.Context, userID int64, question string) (string, error) {
	b.asks = append(b.asks, askCall{userID: userID, question: question})
	return "Consider Germany.", nil
}

func openSession(t *testing.T) (*store.Store, *identity.Session) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	sess, err := identity.Load(context.Background(), st.StateRepo())
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	return st, sess
}

func testModel(t *testing.T, skipWelcome bool) AppModel {
	t.Helper()
	_, sess := openSession(t)
	m := newAppModel(Options{Backend: stubBackend{}, Session: sess, SkipWelcome: skipWelcome})
	m.Init()
	return m
}

func validDraft() profile.Draft {
	d := profile.DefaultDraft()
	d.FullName = "Ana Rahman"
	d.Email = "ana@example.com"
	d.PreferredCountries = []string{profile.Destinations()[0]}
	return d
}

func press(t *testing.T, m AppModel, key tea.KeyPressMsg) (AppModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(key)
	return updated.(AppModel), cmd
}

func typeInto(t *testing.T, m AppModel, text string) AppModel {
	t.Helper()
	for _, r := range text {
		m, _ = press(t, m, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return m
}

// askResult runs the batch started by a question and returns the answer
// message, dropping spinner ticks.
func askResult(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected the question to start")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatal("expected a batch")
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg := c(); msg != nil {
			if _, tick := msg.(spinner.TickMsg); !tick {
				return msg
			}
		}
	}
	t.Fatal("no answer in batch")
	return nil
}

var (
	ctrlP = tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl}
	ctrlS = tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	esc   = tea.KeyPressMsg{Code: tea.KeyEscape}
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
)

// deliver runs cmd and feeds its message back into the model.
func deliver(t *testing.T, m AppModel, cmd tea.Cmd) AppModel {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	updated, _ := m.Update(cmd())
	return updated.(AppModel)
}

func TestStartsOnWelcome(t *testing.T) {
	m := testModel(t, false)
	if got := m.router.Active().Title(); got != "" {
		t.Errorf("expected welcome screen, got %q", got)
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	m = deliver(t, m, cmd)
	if got := m.router.Active().Title(); got != "Chat" {
		t.Errorf("expected chat after welcome, got %q", got)
	}
}

func TestEscPopsProfile(t *testing.T) {
	m := testModel(t, true)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl})
	m = deliver(t, m, cmd)
	if m.router.Depth() != 2 || m.router.Active().Title() != "Student Profile" {
		t.Fatalf("expected profile screen on top, depth %d", m.router.Depth())
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	m = deliver(t, m, cmd)
	if m.router.Depth() != 1 {
		t.Errorf("expected esc to pop, depth %d", m.router.Depth())
	}
}

func TestEscOnRootIgnored(t *testing.T) {
	m := testModel(t, true)
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("esc on the root screen should do nothing")
	}
}

func TestNoticeInterceptsEsc(t *testing.T) {
	m := testModel(t, true)

	// Chatting without a profile raises a notice that owns Esc.
	for _, r := range "hi" {
		updated, _ := m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
		m = updated.(AppModel)
	}
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m = deliver(t, m, cmd)
	if m.router.Depth() != 2 {
		t.Fatalf("expected notice on top, depth %d", m.router.Depth())
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected the notice to handle esc")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Errorf("expected redirect to the profile form, got %T", cmd())
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := testModel(t, true)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestAnswerWhileProfileOpenUnblocksChat(t *testing.T) {
	_, sess := openSession(t)
	if err := sess.Remember(context.Background(), 7); err != nil {
		t.Fatalf("remember: %v", err)
	}
	backend := &recordingBackend{userID: 7}
	m := newAppModel(Options{
		Backend:     backend,
		Session:     sess,
		Renderer:    markdown.New("notty", 80),
		SkipWelcome: true,
	})
	m.Init()

	m = typeInto(t, m, "first question")
	m, cmd := press(t, m, enter)
	answer := askResult(t, cmd)

	m, cmd = press(t, m, ctrlP)
	m = deliver(t, m, cmd)
	if got := m.router.Active().Title(); got != "Student Profile" {
		t.Fatalf("expected profile screen on top, got %q", got)
	}

	// The answer lands while the form is on top.
	updated, _ := m.Update(answer)
	m = updated.(AppModel)
	if got := m.router.Active().Title(); got != "Student Profile" {
		t.Errorf("answer must not navigate, active %q", got)
	}

	m, cmd = press(t, m, esc)
	m = deliver(t, m, cmd)
	if m.router.Depth() != 1 {
		t.Fatalf("expected chat on top, depth %d", m.router.Depth())
	}
	if view := m.router.Active().View(100, 40); !strings.Contains(view, "Consider Germany.") {
		t.Errorf("answer missing from chat:\n%s", view)
	}

	m = typeInto(t, m, "second question")
	_, cmd = press(t, m, enter)
	askResult(t, cmd)
	if len(backend.asks) != 2 || backend.asks[1].question != "second question" {
		t.Fatalf("asks = %+v, want the second question sent", backend.asks)
	}
}

func TestSubmitResultAfterFormClosed(t *testing.T) {
	_, sess := openSession(t)
	backend := &recordingBackend{userID: 42}
	draft := validDraft()
	m := newAppModel(Options{Backend: backend, Session: sess, Draft: &draft, SkipWelcome: true})
	m.Init()

	m, cmd := press(t, m, ctrlP)
	m = deliver(t, m, cmd)
	m, upload := press(t, m, ctrlS)
	if upload == nil {
		t.Fatal("expected the upload to start")
	}
	m, cmd = press(t, m, esc)
	m = deliver(t, m, cmd)

	// A reopened form must not start a second upload.
	m, cmd = press(t, m, ctrlP)
	m = deliver(t, m, cmd)
	if m, cmd = press(t, m, ctrlS); cmd != nil {
		t.Error("second submit while the first is in flight must be ignored")
	}
	m, cmd = press(t, m, esc)
	m = deliver(t, m, cmd)

	_, then := m.Update(upload())
	if then == nil {
		t.Fatal("expected the result to be reported on the chat screen")
	}
	push, ok := then().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", then())
	}
	n, ok := push.Screen.(*notice.NoticeScreen)
	if !ok || !strings.Contains(n.Message(), "42") {
		t.Fatalf("expected success notice, got %#v", push.Screen)
	}
	if backend.submits != 1 {
		t.Errorf("submits = %d, want 1", backend.submits)
	}
	if sess.UserID() != 42 {
		t.Errorf("user id = %d, want 42", sess.UserID())
	}
}

func TestSubmittedIdentityReachesChat(t *testing.T) {
	ctx := context.Background()
	st, sess := openSession(t)
	backend := &recordingBackend{userID: 42}

	out, err := profile.NewSubmitter(backend, sess, nil).Submit(ctx, validDraft())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.UserID != 42 {
		t.Fatalf("outcome user id = %d", out.UserID)
	}

	conv := chat.New(sess)
	if _, err := conv.Send(ctx, backend, "Which intake?"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(backend.asks) != 1 || backend.asks[0].userID != 42 {
		t.Errorf("asks = %+v, want user 42", backend.asks)
	}

	raw, ok, err := st.StateRepo().Get(ctx, identity.Key)
	if err != nil || !ok || raw != "42" {
		t.Errorf("stored user id = %q (ok %v, err %v), want \"42\"", raw, ok, err)
	}
}
