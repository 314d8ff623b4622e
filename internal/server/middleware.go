package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	bodyKey         = "json_body"

	malformedMessage = "Malformed JSON in request body."
)

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDKey)),
		)
	}
}

// parseJSONBody decodes JSON request bodies into a field map before any
// handler runs. Bodies sent without a JSON content type parse as {}.
func parseJSONBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		fields := map[string]json.RawMessage{}
		if c.Request.Body != nil && c.ContentType() == gin.MIMEJSON {
			raw, err := io.ReadAll(c.Request.Body)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, failure(malformedMessage))
				return
			}
			if len(bytes.TrimSpace(raw)) > 0 {
				if err := json.Unmarshal(raw, &fields); err != nil {
					c.AbortWithStatusJSON(http.StatusBadRequest, failure(malformedMessage))
					return
				}
			}
		}
		c.Set(bodyKey, fields)
		c.Next()
	}
}

func requestBody(c *gin.Context) map[string]json.RawMessage {
	if v, ok := c.Get(bodyKey); ok {
		if fields, ok := v.(map[string]json.RawMessage); ok {
			return fields
		}
	}
	return nil
}

// recovered turns a handler panic into the ordinary failure envelope.
func (s *Server) recovered(c *gin.Context, err any) {
	s.log.Error("panic in handler",
		zap.Any("panic", err),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString(requestIDKey)),
	)
	c.AbortWithStatusJSON(http.StatusBadRequest, failure(fallbackMessage))
}
