package llm

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// StubReply is one scripted answer of a Stub.
type StubReply struct {
	// JSON is the raw model output; it goes through the same schema check
	// as a real provider's.
	JSON         string
	InputTokens  int
	OutputTokens int
	Err          error
}

// Stub is a Provider that plays back scripted replies in order and keeps
// every request it was sent.
type Stub struct {
	mu       sync.Mutex
	replies  []StubReply
	requests []Request
}

// NewStub returns a Stub that answers with replies in order.
func NewStub(replies ...StubReply) *Stub {
	return &Stub{replies: replies}
}

func (s *Stub) ModelID() string { return "stub" }

func (s *Stub) Generate(_ context.Context, req Request) (*Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, req)
	if len(s.replies) == 0 {
		return nil, &Error{Provider: "stub", Kind: KindUnavailable, Err: errors.New("no scripted reply left")}
	}
	next := s.replies[0]
	s.replies = s.replies[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return finish("stub", req, next.JSON, Reply{
		Model:        "stub",
		InputTokens:  next.InputTokens,
		OutputTokens: next.OutputTokens,
	})
}

// Queue appends more scripted replies.
func (s *Stub) Queue(replies ...StubReply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, replies...)
}

// Requests returns the requests received so far.
func (s *Stub) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}
