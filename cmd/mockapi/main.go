package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smartshop/qaforge/internal/api"
	"github.com/smartshop/qaforge/internal/api/handlers"
	"github.com/smartshop/qaforge/internal/config"
	"github.com/smartshop/qaforge/internal/observability"
	"github.com/smartshop/qaforge/internal/testdata"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)
	defer logger.Sync()

	logger.Info("Starting mock API server",
		zap.String("version", cfg.App.Version),
		zap.String("environment", string(cfg.Env)),
	)

	// Seed the store with generated fixtures. Without an API key the
	// generator quietly runs synthetic-only, which is fine for a fixture.
	metrics := observability.NewMetrics(cfg.App.Name)
	gen := testdata.New(cfg.OpenAI, logger, testdata.WithMetrics(metrics))
	store := handlers.NewStore(gen)

	router := api.NewRouter(api.RouterConfig{
		Store:      store,
		Logger:     logger,
		Metrics:    metrics,
		EnableCORS: cfg.Server.EnableCORS,
		Version:    cfg.App.Version,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Mock API listening", zap.String("addr", cfg.Server.Addr()))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Fatal("Server error", zap.Error(err))

	case sig := <-shutdown:
		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown failed, forcing close", zap.Error(err))
			server.Close()
		}

		logger.Info("Server stopped gracefully")
	}
}

// initLogger creates a configured zap logger
func initLogger(cfg *config.Config) *zap.Logger {
	var zapLevel zapcore.Level
	switch cfg.GetLogLevel() {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := zapCfg.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	return logger
}
