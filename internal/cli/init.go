// Package cli holds the startup steps shared by the commands under cmd/.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/config"
	applog "github.com/Markdcoder/mobile-fintech-dashboard/internal/log"
)

// SetupLogger builds the application logger at the given LOG_LEVEL and
// installs it as the slog default.
func SetupLogger(level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Level = applog.ParseLevel(level)
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads .env for local development. A missing file is fine.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration, sets up logging from it and
// exits the process when validation fails.
func LoadAndValidateConfig() (*config.Config, *applog.Logger) {
	cfg := config.Load()
	logger := SetupLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg, logger
}

// GracefulShutdown runs cleanup on SIGINT/SIGTERM with a bounded context.
// The returned channel is closed once cleanup has finished.
func GracefulShutdown(logger *applog.Logger, timeout time.Duration, cleanup func(ctx context.Context)) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if cleanup != nil {
			cleanup(shutdownCtx)
		}
		if shutdownCtx.Err() != nil {
			logger.Warn("Shutdown timeout reached")
		}
		close(done)
	}()

	return done
}
