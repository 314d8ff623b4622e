package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ai-gateway/chat-relay/internal/config"
	"github.com/ai-gateway/chat-relay/internal/logging"
	"github.com/ai-gateway/chat-relay/internal/observability"
	"github.com/ai-gateway/chat-relay/internal/provider"
	"github.com/ai-gateway/chat-relay/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Dev)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.Dev {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := observability.Setup(ctx, cfg.TelemetryURL, "chat-relay")
	if err != nil {
		logger.Fatal("failed to set up tracing", zap.Error(err))
	}
	if tp != nil {
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(sctx)
		}()
	}

	if cfg.APIKey == "" {
		logger.Warn("ANTHROPIC_API_KEY is not set; /letschat calls will fail")
	}
	client := provider.New(providerOptions(cfg, logger.Named("provider")))

	srv := server.New(cfg, client, logger.Named("server"))
	if err := srv.Start(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func providerOptions(cfg *config.Config, logger *zap.Logger) provider.Options {
	return provider.Options{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.UpstreamTimeout},
		Logger:     logger,
	}
}
