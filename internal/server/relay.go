package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ai-gateway/chat-relay/internal/guardrails"
	"github.com/ai-gateway/chat-relay/internal/provider"
)

const (
	validationMessage = "Request body must contain 'system' and 'messages' properties."
	fallbackMessage   = "There was a problem on the server"
)

// envelope is the response body of every /letschat call.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   any             `json:"error,omitempty"`
}

func failure(payload any) envelope {
	return envelope{Success: false, Error: payload}
}

// errorPayload picks what the caller sees for a failed upstream call:
// the provider's own JSON error when it sent one, else a fixed string.
func errorPayload(err error) any {
	var apiErr *provider.APIError
	if errors.As(err, &apiErr) && apiErr.Body != nil {
		return apiErr.Body
	}
	return fallbackMessage
}

func (s *Server) letsChat(c *gin.Context) {
	body := requestBody(c)
	req := provider.Request{System: body["system"], Messages: body["messages"]}
	if err := guardrails.CheckRequest(req.System, req.Messages); err != nil {
		c.JSON(http.StatusBadRequest, failure(validationMessage))
		return
	}

	ctx, span := s.tracer.Start(c.Request.Context(), "provider.complete",
		trace.WithAttributes(
			attribute.String("llm.model", provider.Model),
			attribute.Int("llm.request.messages", countMessages(req.Messages)),
			attribute.String("http.request_id", c.GetString(requestIDKey)),
		),
	)
	defer span.End()

	out, err := s.completer.Complete(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		s.log.Error("Error in /letschat route",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		)
		// every upstream failure is reported as 400, whatever its cause
		c.JSON(http.StatusBadRequest, failure(errorPayload(err)))
		return
	}
	span.SetStatus(codes.Ok, "")
	span.SetAttributes(
		attribute.Int("llm.usage.input_tokens", out.Usage.InputTokens),
		attribute.Int("llm.usage.output_tokens", out.Usage.OutputTokens),
	)

	s.usage.Add(out.Usage.InputTokens, out.Usage.OutputTokens)
	in, outTokens := s.usage.Tokens()
	s.log.Debug("usage",
		zap.Int("input_tokens_total", in),
		zap.Int("output_tokens_total", outTokens),
		zap.Float64("cost_usd_total", s.usage.Cost()),
	)

	c.JSON(http.StatusOK, envelope{Success: true, Data: out.Content})
}

func countMessages(raw json.RawMessage) int {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0
	}
	return len(items)
}
