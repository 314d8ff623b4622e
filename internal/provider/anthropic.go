package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL   = "https://api.anthropic.com/v1"
	messagesEndpoint = "/messages"
	anthropicVersion = "2023-06-01"
)

type messagesRequest struct {
	Model       string          `json:"model"`
	System      json.RawMessage `json:"system"`
	Messages    json.RawMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to the Anthropic Messages API. It holds no per-request
// state and is safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func New(opts Options) *Client {
	c := &Client{
		apiKey:  opts.APIKey,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    opts.HTTPClient,
		log:     opts.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

// Complete sends the conversation under the fixed policy and decodes the reply.
func (c *Client) Complete(ctx context.Context, req Request) (*Completion, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	body, err := json.Marshal(messagesRequest{
		Model:       Model,
		System:      req.System,
		Messages:    req.Messages,
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("error marshaling body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("content-type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	res, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer func() {
		if cerr := res.Body.Close(); cerr != nil {
			c.log.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, newAPIError(res.StatusCode, respBody)
	}

	var out Completion
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("error unmarshaling response body (status %d): %w", res.StatusCode, err)
	}
	c.log.Debug("completion received",
		zap.String("id", out.ID),
		zap.String("stop_reason", out.StopReason),
		zap.Int("input_tokens", out.Usage.InputTokens),
		zap.Int("output_tokens", out.Usage.OutputTokens),
	)
	return &out, nil
}
