package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// APIBaseURL is the Scholarship API root, e.g.
	// https://api.bersekolah.com/api.
	APIBaseURL string `yaml:"api_base_url" validate:"required,url"`

	// Token is the bearer credential; TokenFile wins when both are set so
	// a re-login lands without restarting.
	Token     string `yaml:"token" validate:"-"`
	TokenFile string `yaml:"token_file" validate:"-"`

	LogLevel  string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"omitempty,oneof=json text"`

	// Category scopes the document pipeline, default "pendukung".
	Category string `yaml:"category" validate:"required"`

	ExportDir string `yaml:"export_dir" validate:"required"`

	RequestTimeout time.Duration `yaml:"request_timeout" validate:"required"`

	RetryMaxAttempts int  `yaml:"retry_max_attempts" validate:"min=0"`
	BreakerEnabled   bool `yaml:"breaker_enabled"`

	WatchInterval    time.Duration `yaml:"watch_interval" validate:"required"`
	WatchMetricsPort string        `yaml:"watch_metrics_port" validate:"required"`
}

// Load layers configuration: built-in defaults, then an optional YAML
// file, then environment variables (with .env picked up when present).
// Environment wins.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Category:         "pendukung",
		ExportDir:        "./exports",
		RequestTimeout:   60 * time.Second,
		RetryMaxAttempts: 1,
		BreakerEnabled:   true,
		WatchInterval:    30 * time.Second,
		WatchMetricsPort: "9090",
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.APIBaseURL = envString("BESWAN_API_BASE_URL", cfg.APIBaseURL)
	cfg.Token = envString("BESWAN_TOKEN", cfg.Token)
	cfg.TokenFile = envString("BESWAN_TOKEN_FILE", cfg.TokenFile)
	cfg.LogLevel = envString("BESWAN_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envString("BESWAN_LOG_FORMAT", cfg.LogFormat)
	cfg.Category = envString("BESWAN_CATEGORY", cfg.Category)
	cfg.ExportDir = envString("BESWAN_EXPORT_DIR", cfg.ExportDir)
	cfg.RequestTimeout = envDuration("BESWAN_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.RetryMaxAttempts = envInt("BESWAN_RETRY_MAX_ATTEMPTS", cfg.RetryMaxAttempts)
	cfg.BreakerEnabled = envBool("BESWAN_BREAKER_ENABLED", cfg.BreakerEnabled)
	cfg.WatchInterval = envDuration("BESWAN_WATCH_INTERVAL", cfg.WatchInterval)
	cfg.WatchMetricsPort = envString("BESWAN_WATCH_METRICS_PORT", cfg.WatchMetricsPort)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Token == "" && cfg.TokenFile == "" {
		return Config{}, fmt.Errorf("invalid config: set BESWAN_TOKEN or BESWAN_TOKEN_FILE")
	}
	return cfg, nil
}

func envString(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
