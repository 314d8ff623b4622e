package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ai-gateway/chat-relay/internal/config"
	"github.com/ai-gateway/chat-relay/internal/metrics"
	"github.com/ai-gateway/chat-relay/internal/provider"
)

const tracerName = "github.com/ai-gateway/chat-relay/internal/server"

type Server struct {
	cfg       *config.Config
	engine    *gin.Engine
	completer provider.Completer
	usage     *metrics.Usage
	tracer    trace.Tracer
	log       *zap.Logger
}

// New wires the routes around completer. The completer is shared by all
// requests and must be safe for concurrent use.
func New(cfg *config.Config, completer provider.Completer, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	srv := &Server{
		cfg:       cfg,
		engine:    gin.New(),
		completer: completer,
		usage:     &metrics.Usage{},
		tracer:    otel.Tracer(tracerName),
		log:       log,
	}
	srv.registerRoutes()
	return srv
}

func (s *Server) registerRoutes() {
	s.engine.Use(
		gin.CustomRecovery(s.recovered),
		requestID(),
		accessLog(s.log),
		cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
			ExposeHeaders:   []string{requestIDHeader},
			MaxAge:          12 * time.Hour,
		}),
		parseJSONBody(),
	)
	s.engine.GET("/", s.hello)
	s.engine.POST("/letschat", s.letsChat)
}

// Handler exposes the routed engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Usage returns the token totals accumulated since startup.
func (s *Server) Usage() *metrics.Usage {
	return s.usage
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddress(),
		Handler: s.engine,
	}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	s.log.Info("server listening", zap.String("address", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) hello(c *gin.Context) {
	c.String(http.StatusOK, "Hello World.")
}
