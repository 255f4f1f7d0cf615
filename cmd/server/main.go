package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/primeweb/site/internal/platform/config"
	applog "github.com/primeweb/site/internal/platform/logging"
	"github.com/primeweb/site/internal/platform/respond"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const defaultConfigPath = "config.yaml"

func main() {
	ctx := context.Background()
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(ctx, "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(ctx, "logger init error", err)
	}

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath())
	if err != nil {
		applog.LogError(ctx, "config error", err)
		os.Exit(1)
	}
	applog.SetProjectID(cfg.Firebase.ProjectID)
	respond.Install()

	a, err := newApp(ctx, cfg)
	if err != nil {
		applog.LogError(ctx, "startup failed", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			applog.LogError(ctx, "closing clients", err)
		}
	}()

	srv := newServer(cfg.Port, a.handler)

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening",
			zap.String("addr", srv.Addr),
			zap.String("chatStore", cfg.Chat.Store),
			zap.String("consentStore", cfg.Consent.Store),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogError(ctx, "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		applog.LogInfo(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	applog.LogInfo(ctx, "server exited")
}

func configPath() string {
	if p := os.Getenv("PRIMEWEB_CONFIG"); p != "" {
		return p
	}
	return defaultConfigPath
}

func newServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		// The relay call of a confirm can take up to its own timeout.
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 64 << 10, // 64 KB
	}
}
