package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP  HTTPConfig  `yaml:"http"`
	Usage UsageConfig `yaml:"usage"`
	Chart ChartConfig `yaml:"chart"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string          `yaml:"address"`
	ReadTimeout     time.Duration   `yaml:"readTimeout"`
	WriteTimeout    time.Duration   `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	AllowedOrigins  []string        `yaml:"allowedOrigins"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool         `yaml:"enabled"`
	RequestsPerMinute int          `yaml:"requestsPerMinute"`
	Burst             int          `yaml:"burst"`
	Valkey            ValkeyConfig `yaml:"valkey"`
}

// ValkeyConfig points the rate limiter at a shared Valkey instance.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// UsageConfig controls aggregate report counters.
type UsageConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ChartConfig controls rendered chart pages.
type ChartConfig struct {
	PageTitle string `yaml:"pageTitle"`
	Width     string `yaml:"width"`
	Height    string `yaml:"height"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg, os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	if v := getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := getenv("HTTP_SHUTDOWN_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.ShutdownTimeout = parsed
		}
	}
	if v := getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := getenv("RATE_LIMIT_VALKEY_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Valkey.Enabled = parseBool(v)
	}
	if v := getenv("RATE_LIMIT_VALKEY_ADDR"); v != "" {
		cfg.HTTP.RateLimit.Valkey.Addr = v
	}
	if v := getenv("USAGE_ENABLED"); v != "" {
		cfg.Usage.Enabled = parseBool(v)
	}
	if v := getenv("USAGE_POSTGRES_DSN"); v != "" {
		cfg.Usage.Postgres.DSN = v
	}
	if v := getenv("USAGE_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Usage.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := getenv("USAGE_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Usage.Postgres.MinConns = int32(parsed)
		}
	}
	if v := getenv("CHART_WIDTH"); v != "" {
		cfg.Chart.Width = v
	}
	if v := getenv("CHART_HEIGHT"); v != "" {
		cfg.Chart.Height = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
				Valkey: ValkeyConfig{
					Prefix: "fitcheck:ratelimit",
				},
			},
		},
		Usage: UsageConfig{
			Enabled: true,
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
		Chart: ChartConfig{
			PageTitle: "体力測定レポート",
			Width:     "900px",
			Height:    "500px",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.ReadTimeout < 0 || c.HTTP.WriteTimeout < 0 || c.HTTP.ShutdownTimeout < 0 {
		return errors.New("http timeouts cannot be negative")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
		if c.HTTP.RateLimit.Valkey.Enabled && strings.TrimSpace(c.HTTP.RateLimit.Valkey.Addr) == "" {
			return errors.New("http.rateLimit.valkey.addr cannot be empty when valkey is enabled")
		}
	}
	if c.Usage.Postgres.MaxConns < 0 || c.Usage.Postgres.MinConns < 0 {
		return errors.New("usage.postgres connection limits cannot be negative")
	}
	if c.Usage.Postgres.MaxConns > 0 && c.Usage.Postgres.MinConns > c.Usage.Postgres.MaxConns {
		return errors.New("usage.postgres.minConns cannot exceed maxConns")
	}
	return nil
}
