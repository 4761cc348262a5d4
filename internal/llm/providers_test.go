package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var replySchema = &Schema{
	Name: "test-reply",
	Definition: map[string]any{
		"type":       "object",
		"properties": map[string]any{"response": map[string]any{"type": "string"}},
		"required":   []any{"response"},
	},
}

// fakeAPI serves body with status and reports the path it was called on.
func fakeAPI(t *testing.T, status int, header http.Header, body any) (string, *string) {
	t.Helper()
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		for k, v := range header {
			w.Header()[k] = v
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL, &path
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func TestAnthropic_Reply(t *testing.T) {
	url, got := fakeAPI(t, http.StatusOK, nil, anthropicMessage(`{"response":"Apply to TU Munich."}`, "end_turn"))
	p := newAnthropic(Config{APIKey: "k", Model: "claude-haiku-4-5-20251001", BaseURL: url})

	req := Prompt("You are a study abroad advisor.", "Where should I apply?")
	req.Schema = replySchema
	req.MaxTokens = 256
	reply, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.InputTokens != 50 || reply.OutputTokens != 30 || reply.Truncated {
		t.Errorf("unexpected reply: %+v", reply)
	}
	var out struct{ Response string }
	if err := reply.Decode(&out); err != nil || out.Response != "Apply to TU Munich." {
		t.Errorf("decode = %q, %v", out.Response, err)
	}
	if !strings.HasSuffix(*got, "/messages") {
		t.Errorf("unexpected path %q", *got)
	}
}

func TestAnthropic_TruncatedOffSchema(t *testing.T) {
	url, _ := fakeAPI(t, http.StatusOK, nil, anthropicMessage(`{"response":"Apply to`, "max_tokens"))
	p := newAnthropic(Config{APIKey: "k", Model: "m", BaseURL: url})

	req := Prompt("", "q")
	req.Schema = replySchema
	_, err := p.Generate(context.Background(), req)
	if kind, _ := KindOf(err); kind != KindTruncated {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestAnthropic_Failures(t *testing.T) {
	tests := []struct {
		status     int
		header     http.Header
		want       Kind
		retryAfter time.Duration
	}{
		{http.StatusTooManyRequests, http.Header{"Retry-After": {"7"}}, KindRateLimited, 7 * time.Second},
		{http.StatusInternalServerError, nil, KindUnavailable, 0},
		{http.StatusUnauthorized, nil, KindRejected, 0},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			url, _ := fakeAPI(t, tt.status, tt.header, map[string]any{
				"type":  "error",
				"error": map[string]any{"type": "api_error", "message": "nope"},
			})
			p := newAnthropic(Config{APIKey: "k", Model: "m", BaseURL: url})

			_, err := p.Generate(context.Background(), Prompt("", "q"))
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("expected *Error, got %T (%v)", err, err)
			}
			if e.Kind != tt.want || e.Status != tt.status || e.Provider != Anthropic {
				t.Errorf("got %+v", e)
			}
			if e.RetryAfter != tt.retryAfter {
				t.Errorf("RetryAfter = %s, want %s", e.RetryAfter, tt.retryAfter)
			}
		})
	}
}

func openAICompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAI_Reply(t *testing.T) {
	url, got := fakeAPI(t, http.StatusOK, nil, openAICompletion("Germany is affordable.", "stop"))
	p := newOpenAI(OpenRouter, Config{APIKey: "k", Model: "google/gemini-2.0-flash-exp", BaseURL: url + "/v1"})

	reply, err := p.Generate(context.Background(), Prompt("sys", "Cheapest country?"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var text string
	if err := reply.Decode(&text); err != nil || text != "Germany is affordable." {
		t.Errorf("without a schema the reply is the text: %q, %v", text, err)
	}
	if reply.InputTokens != 40 || reply.OutputTokens != 25 {
		t.Errorf("unexpected usage: %+v", reply)
	}
	if *got != "/v1/chat/completions" {
		t.Errorf("unexpected path %q", *got)
	}
	if p.ModelID() != "google/gemini-2.0-flash-exp" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}

func TestOpenAI_Failures(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusTooManyRequests, KindRateLimited},
		{http.StatusBadGateway, KindUnavailable},
		{http.StatusNotFound, KindRejected},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			url, _ := fakeAPI(t, tt.status, nil, map[string]any{
				"error": map[string]any{"type": "error", "message": "nope"},
			})
			p := newOpenAI(OpenAI, Config{APIKey: "k", Model: "gpt-4o-mini", BaseURL: url + "/v1"})

			_, err := p.Generate(context.Background(), Prompt("", "q"))
			if kind, ok := KindOf(err); !ok || kind != tt.want {
				t.Errorf("kind = %v (%v), want %v", kind, err, tt.want)
			}
		})
	}
}

func TestOpenAI_NoChoices(t *testing.T) {
	body := openAICompletion("", "stop")
	body["choices"] = []any{}
	url, _ := fakeAPI(t, http.StatusOK, nil, body)
	p := newOpenAI(OpenAI, Config{APIKey: "k", Model: "m", BaseURL: url + "/v1"})

	_, err := p.Generate(context.Background(), Prompt("", "q"))
	if kind, _ := KindOf(err); kind != KindInvalidOutput {
		t.Errorf("expected invalid output, got %v", err)
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"response":  map[string]any{"type": "string", "description": "answer"},
			"countries": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"tone":      map[string]any{"type": "string", "enum": []string{"formal", "casual"}},
		},
		"required": []any{"response"},
	})

	if s.Type != "OBJECT" || len(s.Properties) != 3 {
		t.Fatalf("unexpected schema: %+v", s)
	}
	if s.Properties["response"].Description != "answer" {
		t.Errorf("description lost")
	}
	if s.Properties["countries"].Items == nil || s.Properties["countries"].Items.Type != "STRING" {
		t.Errorf("array items not converted")
	}
	if len(s.Properties["tone"].Enum) != 2 {
		t.Errorf("enum = %v", s.Properties["tone"].Enum)
	}
	if len(s.Required) != 1 || s.Required[0] != "response" {
		t.Errorf("required = %v", s.Required)
	}
}
