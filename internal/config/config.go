// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"
)

const (
	// EnvProduction is the APP_ENV value that enables secure cookies and hides error detail.
	EnvProduction = "production"
	// EnvDevelopment is the APP_ENV value that exposes error detail in 500 responses.
	EnvDevelopment = "development"
)

// Config holds every setting the server and seeder read at startup.
type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	Port     int    `env:"PORT" envDefault:"5000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DB DBConfig

	JWTSecret string        `env:"JWT_SECRET,required"`
	JWTExpire time.Duration `env:"JWT_EXPIRE" envDefault:"168h"`

	Redis RedisConfig

	RateLimit       int64         `env:"RATE_LIMIT" envDefault:"100"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`

	FrontendURL  string        `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	LeadCacheTTL time.Duration `env:"LEAD_CACHE_TTL" envDefault:"5m"`
}

// DBConfig describes how to reach the record store.
type DBConfig struct {
	Driver        string `env:"DATABASE_DRIVER" envDefault:"postgres"`
	URL           string `env:"DATABASE_URL"`
	Host          string `env:"DB_HOST" envDefault:"localhost"`
	Port          string `env:"DB_PORT" envDefault:"5432"`
	User          string `env:"DB_USER"`
	Password      string `env:"DB_PASSWORD"`
	Name          string `env:"DB_NAME" envDefault:"leads"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"true"`
}

// RedisConfig is optional; an empty Host disables redis.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
}

// Enabled reports whether a redis host was configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// IsDevelopment reports whether APP_ENV is development.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.JWTExpire <= 0 {
		return nil, fmt.Errorf("config.Load: JWT_EXPIRE must be positive, got %s", cfg.JWTExpire)
	}
	if cfg.RateLimit <= 0 || cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("config.Load: RATE_LIMIT and RATE_LIMIT_WINDOW must be positive")
	}
	return &cfg, nil
}
