// Package chat holds the in-memory message log of one advisory chat session.
package chat

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Fallback is the assistant text appended when a question fails.
const Fallback = "Sorry, something went wrong. Please try again."

var (
	ErrEmptyQuestion = errors.New("question is empty")
	ErrNoIdentity    = errors.New("no profile has been submitted")
	ErrBusy          = errors.New("a question is already in flight")
	ErrUnknownTurn   = errors.New("no pending question with that id")
)

// Role is the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Status tracks a message through the request cycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// Message is one entry of the log.
type Message struct {
	ID      string
	Role    Role
	Content string
	Status  Status
	At      time.Time
}

// Asker sends a question to the advisor.
type Asker interface {
	Ask(ctx context.Context, userID int64, question string) (string, error)
}

// Identity supplies the current user id; 0 means none.
type Identity interface {
	UserID() int64
}

// Turn is a question accepted by Begin and awaiting its answer.
type Turn struct {
	ID       string
	UserID   int64
	Question string
}

// Conversation is the message log plus the sending flag. At most one
// question is in flight. It is not safe for concurrent use.
type Conversation struct {
	identity Identity
	messages []Message
	sending  bool
	pending  string
	now      func() time.Time
}

// New creates an empty conversation for the given identity.
func New(identity Identity) *Conversation {
	return &Conversation{identity: identity, now: time.Now}
}

// Messages returns a copy of the log in order.
func (c *Conversation) Messages() []Message {
	return slices.Clone(c.messages)
}

// Sending reports whether a question is in flight.
func (c *Conversation) Sending() bool { return c.sending }

// Len returns the number of messages in the log.
func (c *Conversation) Len() int { return len(c.messages) }

// Begin accepts input as the next question. The input is appended as typed
// as a pending user message and the conversation enters sending; whitespace
// only decides whether it is empty. Nothing changes when an error is returned.
func (c *Conversation) Begin(input string) (Turn, error) {
	if strings.TrimSpace(input) == "" {
		return Turn{}, ErrEmptyQuestion
	}
	if c.sending {
		return Turn{}, ErrBusy
	}
	userID := c.userID()
	if userID == 0 {
		return Turn{}, ErrNoIdentity
	}

	turn := Turn{ID: uuid.NewString(), UserID: userID, Question: input}
	c.messages = append(c.messages, Message{
		ID:      turn.ID,
		Role:    RoleUser,
		Content: input,
		Status:  StatusPending,
		At:      c.now(),
	})
	c.sending = true
	c.pending = turn.ID
	return turn, nil
}

// Resolve confirms the pending question id and appends reply.
func (c *Conversation) Resolve(id, reply string) error {
	return c.finish(id, StatusConfirmed, reply)
}

// Fail marks the pending question id as failed and appends the fallback
// assistant message. The cause is for logging only.
func (c *Conversation) Fail(id string, _ error) error {
	return c.finish(id, StatusFailed, Fallback)
}

func (c *Conversation) finish(id string, status Status, reply string) error {
	if !c.sending || id != c.pending {
		return ErrUnknownTurn
	}
	i := slices.IndexFunc(c.messages, func(m Message) bool { return m.ID == id })
	if i < 0 {
		return ErrUnknownTurn
	}
	c.messages[i].Status = status
	c.messages = append(c.messages, Message{
		ID:      uuid.NewString(),
		Role:    RoleAssistant,
		Content: reply,
		Status:  StatusConfirmed,
		At:      c.now(),
	})
	c.sending = false
	c.pending = ""
	return nil
}

// Send runs one full exchange synchronously. A failed request is recorded
// in the log and its error returned; guard errors from Begin leave the log
// untouched.
func (c *Conversation) Send(ctx context.Context, asker Asker, input string) (Message, error) {
	turn, err := c.Begin(input)
	if err != nil {
		return Message{}, err
	}
	reply, askErr := asker.Ask(ctx, turn.UserID, turn.Question)
	if askErr != nil {
		_ = c.Fail(turn.ID, askErr)
		return c.messages[len(c.messages)-1], askErr
	}
	_ = c.Resolve(turn.ID, reply)
	return c.messages[len(c.messages)-1], nil
}

func (c *Conversation) userID() int64 {
	if c.identity == nil {
		return 0
	}
	return c.identity.UserID()
}
