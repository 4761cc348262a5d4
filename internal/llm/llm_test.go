package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestSchemaCheck(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"valid", `{"response":"ok"}`, ""},
		{"missing field", `{"answer":"ok"}`, "does not match"},
		{"wrong type", `{"response":42}`, "does not match"},
		{"not json", `Sure! Here is`, "not JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := replySchema.Check(json.RawMessage(tt.raw))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestSchemaCheck_BadDefinition(t *testing.T) {
	s := &Schema{Name: "broken", Definition: map[string]any{"type": 12}}
	err := s.Check(json.RawMessage(`{}`))
	if err == nil || !strings.Contains(err.Error(), `compile schema "broken"`) {
		t.Errorf("expected compile error, got %v", err)
	}
}

func TestFinish(t *testing.T) {
	req := Prompt("", "q")
	reply, err := finish("x", req, "plain *markdown*", Reply{Model: "m"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(reply.JSON) != `"plain *markdown*"` {
		t.Errorf("text replies are JSON strings, got %s", reply.JSON)
	}

	req.Schema = replySchema
	_, err = finish("x", req, `{"nope":1}`, Reply{})
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindInvalidOutput || e.Provider != "x" {
		t.Errorf("expected invalid output, got %v", err)
	}
}

func TestErrorMessage(t *testing.T) {
	e := classify(OpenAI, 429, errors.New("slow down"))
	if e.Kind != KindRateLimited {
		t.Fatalf("kind = %v", e.Kind)
	}
	if got := e.Error(); got != "openai: rate limited (429): slow down" {
		t.Errorf("Error() = %q", got)
	}
	wrapped := errors.Join(errors.New("ctx"), e)
	if kind, ok := KindOf(wrapped); !ok || kind != KindRateLimited {
		t.Errorf("KindOf through wrapping = %v, %v", kind, ok)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("plain errors have no kind")
	}
	if classify(Gemini, 0, errors.New("dial")).Kind != KindUnavailable {
		t.Error("transport errors are unavailable")
	}
}

func TestPurpose(t *testing.T) {
	if got := purposeOf(context.Background()); got != "unknown" {
		t.Errorf("default purpose = %q", got)
	}
	if got := purposeOf(WithPurpose(context.Background(), "advice")); got != "advice" {
		t.Errorf("purpose = %q", got)
	}
}

func TestStub(t *testing.T) {
	s := NewStub(StubReply{JSON: `{"response":"one"}`})
	s.Queue(StubReply{Err: errors.New("boom")})

	req := Prompt("", "q")
	req.Schema = replySchema
	if _, err := s.Generate(context.Background(), req); err != nil {
		t.Fatalf("first reply: %v", err)
	}
	if _, err := s.Generate(context.Background(), req); err == nil || err.Error() != "boom" {
		t.Errorf("second reply = %v", err)
	}
	if _, err := s.Generate(context.Background(), req); err == nil {
		t.Error("an exhausted stub fails")
	}
	if n := len(s.Requests()); n != 3 {
		t.Errorf("recorded %d requests", n)
	}
}
