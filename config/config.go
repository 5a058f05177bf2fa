// Package config loads runtime settings from the environment.
// File: config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"techevents-web/logger"
)

// Config holds every setting the web frontend reads at startup.
type Config struct {
	Port           string `env:"PORT" envDefault:"3000"`
	APIBaseURL     string `env:"API_BASE_URL" envDefault:"http://localhost:8080/api"`
	ApplicationURL string `env:"APPLICATION_URL" envDefault:"http://localhost:3000"`
	Environment    string `env:"APP_ENV" envDefault:"development"`

	// cookie sessions
	SessionSecret      string `env:"SESSION_SECRET" envDefault:"secret"`
	SecureCookies      bool   `env:"SECURE_COOKIES" envDefault:"false"`
	DurableSessionDays int    `env:"DURABLE_SESSION_DAYS" envDefault:"7"`

	// filesystem
	LogDir       string `env:"LOG_DIR" envDefault:"./logs"`
	TemplatesDir string `env:"TEMPLATES_DIR"`
	StaticDir    string `env:"STATIC_DIR" envDefault:"./static"`

	// presentation
	CurrencySymbol string        `env:"CURRENCY_SYMBOL" envDefault:"₹"`
	RedirectDelay  time.Duration `env:"REDIRECT_DELAY" envDefault:"2s"`

	// form submissions per client IP, in limiter format ("30-M" = 30 per minute)
	FormRateLimit string `env:"FORM_RATE_LIMIT" envDefault:"30-M"`

	// AWS observability
	MetricsEnabled   bool   `env:"METRICS_ENABLED" envDefault:"false"`
	MetricsNamespace string `env:"METRICS_NAMESPACE" envDefault:"TechEvents"`
	TracingEnabled   bool   `env:"TRACING_ENABLED" envDefault:"false"`
	AWSRegion        string `env:"AWS_REGION" envDefault:"ap-south-1"`
}

// IsProduction reports whether the frontend runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads an optional .env file, then parses the environment into Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info.Println("Load: no .env file, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	cfg.ApplicationURL = strings.TrimRight(cfg.ApplicationURL, "/")

	if cfg.DurableSessionDays <= 0 {
		return nil, fmt.Errorf("DURABLE_SESSION_DAYS must be positive, got %d", cfg.DurableSessionDays)
	}
	if cfg.IsProduction() && cfg.SessionSecret == "secret" {
		logger.Warn.Println("Load: SESSION_SECRET is the development default in production")
	}
	return cfg, nil
}
