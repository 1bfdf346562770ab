package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/copperline/bizportal/config"
	"github.com/copperline/bizportal/internal/data"
	"github.com/copperline/bizportal/internal/observability/statsd"
	"github.com/copperline/bizportal/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth          *service.AuthService
	Connection    *service.ConnectionService
	Sync          *service.SyncService
	Inquiries     *service.InquiryService
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink   *statsd.Client
	MetricsConfig config.ObservabilityMetricsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// buildObservability configures the metrics sink.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	var metricsSink *statsd.Client
	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Logger:  obsLogger,
		})
		if err != nil {
			obsLogger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	return ObservabilityContainer{
		MetricsSink:   metricsSink,
		MetricsConfig: cfg.Metrics,
	}
}

// NewServices wires all application services from their adapters.
func NewServices(deps *ServiceDeps) ServiceContainer {
	if deps == nil {
		return ServiceContainer{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := deps.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	observability := buildObservability(logger, appCfg.Observability)

	authCfg := AuthBuildConfig{
		Auth:        appCfg.Auth,
		TokenKey:    appCfg.TokenEncryptionKey,
		DB:          deps.DB,
		RedisClient: deps.RedisClient,
		Logger:      logger,
	}
	authService := BuildAuthService(authCfg)

	connector, err := BuildConnector(appCfg.Accounting, logger)
	if err != nil {
		logger.Error("failed to build accounting connector", "error", err)
	}
	accountingClient, err := BuildAccountingClient(appCfg.Accounting, logger)
	if err != nil {
		logger.Error("failed to build accounting client", "error", err)
	}

	container := ServiceContainer{
		Auth:          authService,
		Observability: observability,
	}

	// Connection and sync require the accounting provider; without it the
	// portal still serves local auth and inquiry intake, and approvals
	// report not-connected.
	if connector != nil && deps.RedisClient != nil {
		container.Connection = service.NewConnectionService(service.ConnectionServiceOptions{
			Connector: connector,
			Tokens:    BuildTokenStore(authCfg),
		})
	}
	if container.Connection != nil && accountingClient != nil {
		syncOpts := service.SyncServiceOptions{
			Connection: container.Connection,
			Accounting: accountingClient,
		}
		if observability.MetricsSink != nil {
			syncOpts.Metrics = observability.MetricsSink
		}
		container.Sync = service.NewSyncService(syncOpts)
	}
	if deps.DB != nil {
		inquiryOpts := service.InquiryServiceOptions{
			Inquiries:  data.NewInquiryRepo(deps.DB),
			Connection: container.Connection,
			Logger:     logger,
		}
		if container.Connection != nil && accountingClient != nil {
			inquiryOpts.Accounting = accountingClient
		}
		container.Inquiries = service.NewInquiryService(inquiryOpts)
	}

	return container
}
