package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/copperline/bizportal/config"
	redisadapter "github.com/copperline/bizportal/internal/adapters/redis"
	"github.com/copperline/bizportal/internal/data"
	"github.com/copperline/bizportal/internal/service"
)

// AuthBuildConfig contains dependencies for building the auth service.
type AuthBuildConfig struct {
	Auth        config.AuthConfig
	TokenKey    string
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService wires the auth service with its Redis-backed session and
// credential stores. Returns nil if required dependencies are missing.
func BuildAuthService(cfg AuthBuildConfig) *service.AuthService {
	if cfg.RedisClient == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("auth service disabled: redis client not configured")
		}
		return nil
	}
	if cfg.DB == nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("auth service disabled: database not configured")
		}
		return nil
	}

	sessionStore := redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, "session:")
	tokenStore := BuildTokenStore(cfg)

	return service.NewAuthService(service.AuthServiceOptions{
		Principals: data.NewPrincipalRepo(cfg.DB),
		Sessions:   sessionStore,
		Tokens:     tokenStore,
		Config: service.AuthServiceConfig{
			SessionTTL: cfg.Auth.SessionTTL,
			BcryptCost: cfg.Auth.BcryptCost,
		},
	})
}

// BuildTokenStore wires the encrypted credential store. Delegated accounting
// tokens are encrypted at rest with the configured key.
func BuildTokenStore(cfg AuthBuildConfig) *redisadapter.TokenStore {
	encryptor := CreateEncryptor(cfg.TokenKey, cfg.Logger)
	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = redisadapter.DefaultTokenTTL
	}
	return redisadapter.NewTokenStoreWithOptions(cfg.RedisClient, encryptor, "accounting_token:", ttl)
}
