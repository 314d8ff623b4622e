package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Fixed completion policy. Callers cannot override any of these.
const (
	Model       = "claude-3-haiku-20240307"
	MaxTokens   = 450
	Temperature = 0.7
)

// Request carries the caller's conversation verbatim.
type Request struct {
	System   json.RawMessage
	Messages json.RawMessage
}

// Usage is the token accounting reported by the upstream API.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Completion is the decoded upstream response. Content is left as raw
// JSON so it can be relayed without interpretation.
type Completion struct {
	ID         string          `json:"id"`
	Model      string          `json:"model"`
	Content    json.RawMessage `json:"content"`
	StopReason string          `json:"stop_reason"`
	Usage      Usage           `json:"usage"`
}

// Completer performs a single completion round trip.
type Completer interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
}

var ErrMissingAPIKey = errors.New("ANTHROPIC_API_KEY is not set")

// APIError is a non-2xx response from the upstream API.
type APIError struct {
	StatusCode int
	// Body is the upstream error payload; nil when it was not valid JSON.
	Body json.RawMessage
	raw  string
}

func (e *APIError) Error() string {
	if e.Body != nil {
		return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.raw)
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status, raw: string(body)}
	if len(body) > 0 && json.Valid(body) {
		e.Body = json.RawMessage(body)
	}
	return e
}
