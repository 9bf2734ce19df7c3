// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Telemetry TelemetryConfig
	Login     LoginConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// TelemetryConfig holds trace export options. An empty endpoint disables
// the OTLP exporter; spans are still created against a no-op provider.
type TelemetryConfig struct {
	OTLPEndpoint string
}

// LoginConfig controls the authentication rate limiter.
type LoginConfig struct {
	Every time.Duration
	Burst int
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from
		// the environment directly.
		_ = godotenv.Load()
	}

	every, err := time.ParseDuration(getenvWithDefault("LOGIN_RATE_EVERY", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_EVERY: %w", err)
	}

	burst, err := strconv.Atoi(getenvWithDefault("LOGIN_RATE_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RATE_BURST: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
		Login: LoginConfig{
			Every: every,
			Burst: burst,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Login.Every <= 0 {
		return errors.New("LOGIN_RATE_EVERY must be positive")
	}

	if c.Login.Burst <= 0 {
		return errors.New("LOGIN_RATE_BURST must be positive")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
