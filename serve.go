package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wyg1997/VoiceRoute/config"
	"github.com/wyg1997/VoiceRoute/internal/domain"
	"github.com/wyg1997/VoiceRoute/internal/extractor"
	"github.com/wyg1997/VoiceRoute/internal/infrastructure/repository"
	"github.com/wyg1997/VoiceRoute/internal/interfaces/http/handler"
	"github.com/wyg1997/VoiceRoute/internal/interfaces/http/server"
	"github.com/wyg1997/VoiceRoute/internal/usecase"
	"github.com/wyg1997/VoiceRoute/pkg/cache"
	"github.com/wyg1997/VoiceRoute/pkg/logger"
	"github.com/wyg1997/VoiceRoute/pkg/metrics"
)

// connectTimeout bounds the initial database connections
const connectTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if err := cfg.IsValid(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync(log)

	log.Info("Starting VoiceRoute", zap.String("env_file", cfg.EnvFile))

	// Connect databases
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	sqlStore, err := repository.OpenSQLStore(connectCtx, cfg.SQL)
	if err != nil {
		return fmt.Errorf("connect relational database: %w", err)
	}
	defer sqlStore.Close()
	log.Info("Connected to relational database", zap.String("driver", cfg.SQL.Driver))

	documents, err := repository.NewDocumentStore(connectCtx, cfg.Documents)
	if err != nil {
		return fmt.Errorf("connect document store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := documents.Close(closeCtx); err != nil {
			log.Warn("Failed to close document store", zap.Error(err))
		}
	}()
	log.Info("Connected to document store", zap.String("backend", cfg.Documents.Backend))

	// Lookup cache
	var lookups cache.Cache[[]*domain.Bus]
	if cfg.Cache.TTL > 0 {
		c := cache.New[[]*domain.Bus](cfg.Cache.CleanUpDuration())
		defer c.Close()
		lookups = c
	}

	m := metrics.NewMetrics()

	// Initialize use cases
	userUseCase := usecase.NewUserUseCase(sqlStore, log.Named("user"))
	transcriptionUseCase := usecase.NewTranscriptionUseCase(extractor.New(), documents, sqlStore, lookups, cfg.Cache.TTLDuration(), m, log.Named("transcription"))
	feedbackUseCase := usecase.NewFeedbackUseCase(sqlStore, documents, lookups, log.Named("feedback"))

	// Initialize handlers
	transitHandler := handler.NewTransitHandler(userUseCase, transcriptionUseCase, feedbackUseCase, log.Named("http"))

	srv, err := server.NewServer(cfg.Server, transitHandler, m, log.Named("server"))
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}
