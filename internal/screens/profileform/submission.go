package profileform

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/goabroadai/goabroad/internal/profile"
	"github.com/goabroadai/goabroad/internal/router"
	"github.com/goabroadai/goabroad/internal/screen"
	"github.com/goabroadai/goabroad/internal/screens/notice"
)

// Submission tracks the upload of a profile. One Submission is shared by
// every form screen of a session, so at most one upload runs at a time and
// its result is reported even after the form was closed.
type Submission struct {
	submitter Submitter
	logger    *zap.Logger
	running   bool
}

var _ screen.BackgroundHandler = (*Submission)(nil)

// NewSubmission creates an idle submission.
func NewSubmission(submitter Submitter, logger *zap.Logger) *Submission {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submission{submitter: submitter, logger: logger.Named("profileform")}
}

// Running reports whether an upload is in flight.
func (s *Submission) Running() bool { return s.running }

// start validates the draft and, if it passes, starts the upload. Invalid
// drafts never reach the network.
func (s *Submission) start(draft profile.Draft) tea.Cmd {
	if s.running || s.submitter == nil {
		return nil
	}
	if err := profile.Validate(draft); err != nil {
		return notice.New(screenTitle, err.Error(), notice.Failure).Push()
	}

	s.running = true
	submitter := s.submitter
	return func() tea.Msg {
		out, err := submitter.Submit(context.Background(), draft)
		return submitDoneMsg{Outcome: out, Err: err}
	}
}

// HandleBackground reports an upload result whichever screen is on top.
func (s *Submission) HandleBackground(msg tea.Msg) (tea.Cmd, bool) {
	m, ok := msg.(submitDoneMsg)
	if !ok {
		return nil, false
	}
	return s.finish(m), true
}

func (s *Submission) finish(msg submitDoneMsg) tea.Cmd {
	s.running = false
	if msg.Err != nil {
		s.logger.Warn("profile submission failed", zap.Error(msg.Err))
		return notice.New(screenTitle, msg.Err.Error(), notice.Failure).Push()
	}
	s.logger.Info("profile submitted", zap.Int64("user_id", msg.Outcome.UserID))
	return notice.New(screenTitle, msg.Outcome.Message, notice.Success).
		Then(func() tea.Msg { return router.PopToRootMsg{} }).
		Push()
}
