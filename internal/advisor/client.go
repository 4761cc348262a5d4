// Package advisor is the HTTP client for the GoAbroadAI advisory backend.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goabroadai/goabroad/internal/profile"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	DefaultTimeout = 2 * time.Minute

	profileSubmitPath = "/profile/submit"
	chatAskPath       = "/chat/ask"

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 4 << 20
)

// Client talks to the advisory backend. Each call is a single request;
// nothing is retried.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the overall per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client for the backend at baseURL. An empty baseURL uses
// DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("advisor")
	return c
}

// BaseURL returns the backend root the client sends requests to.
func (c *Client) BaseURL() string { return c.baseURL }

type submitResponse struct {
	UserID int64 `json:"user_id"`
}

// SubmitProfile posts body as multipart form data and returns the user id
// the backend assigned.
func (c *Client) SubmitProfile(ctx context.Context, body profile.Body) (int64, error) {
	var buf bytes.Buffer
	contentType, err := body.WriteMultipart(&buf)
	if err != nil {
		return 0, fmt.Errorf("encode profile: %w", err)
	}

	var out submitResponse
	if err := c.do(ctx, profileSubmitPath, contentType, &buf, &out); err != nil {
		return 0, err
	}
	if out.UserID <= 0 {
		return 0, ErrMissingUserID
	}
	return out.UserID, nil
}

type askRequest struct {
	UserID   int64  `json:"user_id"`
	Question string `json:"question"`
}

type askResponse struct {
	Response string `json:"response"`
}

// Ask sends one question on behalf of userID and returns the advisor's
// Markdown reply.
func (c *Client) Ask(ctx context.Context, userID int64, question string) (string, error) {
	payload, err := json.Marshal(askRequest{UserID: userID, Question: question})
	if err != nil {
		return "", fmt.Errorf("encode question: %w", err)
	}

	var out askResponse
	if err := c.do(ctx, chatAskPath, "application/json", bytes.NewReader(payload), &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

func (c *Client) do(ctx context.Context, path, contentType string, body io.Reader, out any) error {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("request done",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Detail: parseDetail(data)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseDetail extracts the "detail" member of an error body. Non-string
// details (validation error lists) are returned as raw JSON.
func parseDetail(data []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}
	if string(body.Detail) == "null" {
		return ""
	}
	return string(body.Detail)
}
