package profile

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Body is a request body that knows how to write itself as multipart form
// data.
type Body interface {
	WriteMultipart(w io.Writer) (string, error)
}

// Sender delivers an encoded profile to the backend and returns the
// identifier the backend assigned.
type Sender interface {
	SubmitProfile(ctx context.Context, body Body) (int64, error)
}

// IdentityRecorder persists the identifier of a submitted profile.
type IdentityRecorder interface {
	Remember(ctx context.Context, userID int64) error
}

// Outcome describes a successful submission.
type Outcome struct {
	UserID  int64
	Message string
}

// SubmitError is a submission that reached the transport stage and failed.
// The draft is left untouched so the user can try again.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	detail := "Unknown error occurred"
	if e.Err != nil && e.Err.Error() != "" {
		detail = e.Err.Error()
	}
	return "Error submitting profile: " + detail
}

func (e *SubmitError) Unwrap() error { return e.Err }

// Submitter runs the submission pipeline: validate, encode, send, then
// remember the returned identifier.
type Submitter struct {
	sender Sender
	ids    IdentityRecorder
	logger *zap.Logger
}

// NewSubmitter creates a Submitter. A nil logger disables logging.
func NewSubmitter(sender Sender, ids IdentityRecorder, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{sender: sender, ids: ids, logger: logger.Named("profile")}
}

// Submit sends d once. A *ValidationError means nothing was sent; a
// *SubmitError means the request or the local save failed. Nothing is retried.
func (s *Submitter) Submit(ctx context.Context, d Draft) (*Outcome, error) {
	if err := Validate(d); err != nil {
		s.logger.Debug("draft rejected", zap.Error(err))
		return nil, err
	}

	payload := Encode(d)
	s.logger.Debug("submitting profile",
		zap.Int("education_entries", len(payload.Education)),
		zap.Bool("resume", payload.ResumePath != ""))

	userID, err := s.sender.SubmitProfile(ctx, payload)
	if err != nil {
		s.logger.Warn("profile submission failed", zap.Error(err))
		return nil, &SubmitError{Err: err}
	}

	if err := s.ids.Remember(ctx, userID); err != nil {
		s.logger.Error("save user id", zap.Int64("user_id", userID), zap.Error(err))
		return nil, &SubmitError{Err: fmt.Errorf("save user id %d: %w", userID, err)}
	}

	s.logger.Info("profile submitted", zap.Int64("user_id", userID))
	return &Outcome{
		UserID:  userID,
		Message: fmt.Sprintf("Profile Submitted Successfully! Your User ID is: %d", userID),
	}, nil
}
