package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/auth"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/backend"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/cache"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/cli"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/core"
	apphttp "github.com/Markdcoder/mobile-fintech-dashboard/internal/http"
	applog "github.com/Markdcoder/mobile-fintech-dashboard/internal/log"
	"github.com/Markdcoder/mobile-fintech-dashboard/internal/services"
)

func main() {
	cli.LoadEnvFile()
	cfg, logger := cli.LoadAndValidateConfig()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	res, err := backend.NewFactory(logger.Logger.With(applog.FieldComponent, applog.ComponentBackend)).CreateBackend(startCtx, backendCfg)
	cancelStart()
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	filterCache := cache.NewLRUCache[[]core.Transaction](cfg.FilterCacheSize, cfg.FilterCacheTTL)
	caches := cache.NewManager()
	caches.Register("transaction_filter", filterCache)
	caches.StartCleanup(cfg.FilterCacheTTL)

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Dashboard:     services.NewDashboardService(res.Backend, res.Backend, res.Backend, filterCache),
		Actions:       services.NewActionService(res.Backend, res.Publisher),
		Authenticator: auth.NewBcryptAuthenticator(cfg.DemoUserEmail, cfg.DemoUserPasswordHash),
		Sessions:      auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL),
		Logger:        logger,
		Ready:         res.Ready,
		CacheStats:    filterCache.Stats,
	})

	done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		caches.Stop()
		if err := res.Cleanup(); err != nil {
			logger.Error("Backend cleanup error", "error", err)
		}
	})

	logger.Info("Starting dashboard server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"events_enabled", res.Publisher != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-done
	logger.Info("Server stopped gracefully")
}
