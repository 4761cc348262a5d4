// Package llm talks to hosted language models on behalf of the dev backend.
//
// Every provider answers one Request with one Reply. When the request names
// a Schema the reply is a JSON document that has already been checked
// against it; otherwise the reply is the model's text encoded as a JSON
// string.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider generates a single reply from a model.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Reply, error)

	// ModelID is the model the provider sends requests to.
	ModelID() string
}

// Role is who said a Turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of the prompt.
type Turn struct {
	Role Role
	Text string
}

// Request is what a Provider sends to its model.
type Request struct {
	System string
	Turns  []Turn

	// Schema, when set, asks the model for JSON matching it.
	Schema *Schema

	MaxTokens int

	// Temperature is left to the provider default when zero.
	Temperature float64
}

// Prompt builds a single-turn request.
func Prompt(system, user string) Request {
	return Request{
		System: system,
		Turns:  []Turn{{Role: RoleUser, Text: user}},
	}
}

// Reply is a model's answer.
type Reply struct {
	JSON         json.RawMessage
	Model        string
	InputTokens  int
	OutputTokens int

	// Truncated is set when the model stopped at MaxTokens.
	Truncated bool
}

// Decode unmarshals the reply into v.
func (r *Reply) Decode(v any) error {
	if err := json.Unmarshal(r.JSON, v); err != nil {
		return fmt.Errorf("decode %s reply: %w", r.Model, err)
	}
	return nil
}

// finish turns the raw model output into a Reply, checking it against the
// request schema.
func finish(provider string, req Request, text string, reply Reply) (*Reply, error) {
	if req.Schema == nil {
		encoded, err := json.Marshal(text)
		if err != nil {
			return nil, &Error{Provider: provider, Kind: KindInvalidOutput, Err: err}
		}
		reply.JSON = encoded
		return &reply, nil
	}

	reply.JSON = json.RawMessage(text)
	if err := req.Schema.Check(reply.JSON); err != nil {
		kind := KindInvalidOutput
		if reply.Truncated {
			kind = KindTruncated
		}
		return nil, &Error{Provider: provider, Kind: kind, Err: err}
	}
	return &reply, nil
}

type purposeKey struct{}

// WithPurpose labels the requests made with ctx, e.g. "advice".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

func purposeOf(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
