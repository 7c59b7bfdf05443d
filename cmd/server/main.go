// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kix-ai-bridge/internal/ai"
	"kix-ai-bridge/internal/analyze"
	"kix-ai-bridge/internal/common/config"
	"kix-ai-bridge/internal/common/logger"
	"kix-ai-bridge/internal/kix"
	"kix-ai-bridge/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting kix-ai-bridge",
		zap.String("environment", cfg.App.Environment),
		zap.Int("port", cfg.Server.Port),
	)

	kixClient := kix.NewClient(cfg.KIX, log)
	aiClient := ai.NewClient(cfg.AzureOpenAI, log)

	service := analyze.NewService(kixClient, aiClient, analyze.Defaults{
		DynamicField:   cfg.KIX.SummaryField,
		Prompt:         cfg.AzureOpenAI.Prompt,
		Temperature:    cfg.AzureOpenAI.Temperature,
		MaxInputTokens: cfg.AzureOpenAI.MaxInputTokens,
	}, log)
	handler := analyze.NewHandler(service, log)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := server.NewRouter(handler, log)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	zapLog.Info("server listening", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}

	zapLog.Info("server stopped")
}
