package config

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Auth strategy selectors. Exactly one verifier is wired at startup; the
// strategies are never mixed within a deployment.
const (
	AuthModeJWT     = "jwt"
	AuthModeSession = "session"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret string `env:"JWT_SECRET"`
	AuthMode  string `env:"AUTH_MODE, default=jwt"`

	CORSOrigin   string  `env:"CORS_ORIGIN, default=http://localhost:3000"`
	RateLimitRPS float64 `env:"RATE_LIMIT_RPS, default=5"`

	Cookie CookieConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

// CookieConfig is the single cookie security policy. Login and logout both
// read from here so the set and clear attributes can never drift apart.
type CookieConfig struct {
	Name     string `env:"COOKIE_NAME,     default=token"`
	Domain   string `env:"COOKIE_DOMAIN"`
	Secure   bool   `env:"COOKIE_SECURE,   default=true"`
	SameSite string `env:"COOKIE_SAMESITE, default=strict"`
}

// SameSiteMode maps the configured string onto http.SameSite. Unrecognised
// values fall back to strict, the most restrictive choice.
func (c CookieConfig) SameSiteMode() http.SameSite {
	switch strings.ToLower(c.SameSite) {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=taskboard"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,        default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=10"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, cfg.validate()
}

// validate catches configuration errors that must be fatal at startup
// rather than per-request.
func (c *Config) validate() error {
	switch c.AuthMode {
	case AuthModeJWT:
		if c.JWTSecret == "" {
			return fmt.Errorf("config: JWT_SECRET is required when AUTH_MODE=jwt")
		}
	case AuthModeSession:
	default:
		return fmt.Errorf("config: unknown AUTH_MODE %q", c.AuthMode)
	}
	return nil
}
