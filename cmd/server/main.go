package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/khodecamp/keycloak-demo/internal/config"
	_ "github.com/khodecamp/keycloak-demo/internal/extension/demo"
	"github.com/khodecamp/keycloak-demo/internal/host"
	applog "github.com/khodecamp/keycloak-demo/internal/platform/logging"
	"github.com/khodecamp/keycloak-demo/internal/provider"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		applog.LogFatal(context.Background(), "config load failed", err)
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		applog.LogWarn(context.Background(), "invalid log level, keeping info", zap.String("level", cfg.LogLevel))
	}

	extensions := host.New(host.Options{Realms: cfg.Realms, Environ: os.Environ()}, provider.Factories()...)
	router, err := newRouter(context.Background(), cfg, extensions)
	if err != nil {
		applog.LogFatal(context.Background(), "router setup failed", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(context.Background(), "server listening",
			zap.String("addr", srv.Addr),
			zap.Strings("realms", cfg.Realms),
			zap.Strings("extensions", extensions.ExtensionIDs()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	exitCode := 0
	select {
	case err := <-listenErr:
		applog.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		exitCode = 1
	case <-stop:
		applog.LogInfo(context.Background(), "shutdown signal received")
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	if err := shutdown(ctx, srv, extensions); err != nil {
		applog.LogError(ctx, "shutdown error", err)
	}
	cancel()
	applog.LogInfo(context.Background(), "server exited")
	if exitCode != 0 {
		_ = applog.Sync()
		os.Exit(exitCode)
	}
}

// shutdown drains srv and only then closes the extensions it was serving.
func shutdown(ctx context.Context, srv *http.Server, extensions *host.Host) error {
	var errs []error
	if err := srv.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown: %w", err))
	}
	if err := extensions.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("close extensions: %w", err))
	}
	return errors.Join(errs...)
}
