package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/copperline/bizportal/config"
	httpx "github.com/copperline/bizportal/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	handler := httpx.NewRouter(routerServices(appCfg, cfg.Services, logger))

	return startServer(logger, handler, appCfg.HTTP.Addr)
}

// routerServices maps the service container onto the router's interface
// fields. Unconfigured services stay nil interfaces rather than becoming
// typed-nil pointers, so the router can detect them and fail closed.
func routerServices(appCfg *config.AppConfig, container ServiceContainer, logger *slog.Logger) httpx.RouterServices {
	services := httpx.RouterServices{
		CookieDomain: appCfg.HTTP.CookieDomain,
		Logger:       logger,
	}
	if container.Auth != nil {
		services.Auth = container.Auth
	}
	if container.Connection != nil {
		services.Connection = container.Connection
	}
	if container.Sync != nil {
		services.Sync = container.Sync
		services.Clients = container.Sync
	}
	if container.Inquiries != nil {
		services.Inquiries = container.Inquiries
	}
	if container.Observability.MetricsSink != nil {
		services.Metrics = container.Observability.MetricsSink
	}
	return services
}

func startServer(logger *slog.Logger, handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(cfg.Context, 10*time.Second)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}

// RunWithShutdown starts the HTTP server and blocks until a shutdown signal
// is received, then stops it gracefully.
func RunWithShutdown(cfg *HTTPServerConfig) error {
	server := StartHTTPServer(cfg)

	var logger *slog.Logger
	if cfg != nil && cfg.Logger != nil {
		logger = cfg.Logger
	} else {
		logger = slog.Default()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.Info("shutdown signal received")

	return ShutdownHTTPServer(ShutdownConfig{
		Context: context.Background(),
		Server:  server,
		Logger:  logger,
	})
}
