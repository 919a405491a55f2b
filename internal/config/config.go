package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment driven configuration for the ops console.
type Config struct {
	// Backend API
	APIBaseURL string        `env:"MOPPIE_API_BASE_URL" envDefault:"http://localhost:8000/api"`
	APITimeout time.Duration `env:"MOPPIE_API_TIMEOUT" envDefault:"15s"`

	// Logging
	LogLevel  string `env:"MOPPIE_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"MOPPIE_LOG_FORMAT" envDefault:"console"` // json or console

	// Local store (session tokens + UI preferences). Empty resolves to the
	// user config directory.
	StorePath string `env:"MOPPIE_STORE_PATH"`

	// Token refresh
	RefreshSkew time.Duration `env:"MOPPIE_REFRESH_SKEW" envDefault:"30s"`

	// Retry (idempotent GETs only)
	RetryMaxAttempts   int     `env:"MOPPIE_RETRY_MAX_ATTEMPTS" envDefault:"3"`
	RetryInitialDelay  int     `env:"MOPPIE_RETRY_INITIAL_DELAY" envDefault:"250"` // milliseconds
	RetryMaxDelay      int     `env:"MOPPIE_RETRY_MAX_DELAY" envDefault:"5000"`    // milliseconds
	RetryBackoffFactor float64 `env:"MOPPIE_RETRY_BACKOFF_FACTOR" envDefault:"1.5"`

	// Circuit Breaker
	CBEnabled          bool `env:"MOPPIE_CB_ENABLED" envDefault:"true"`
	CBFailureThreshold int  `env:"MOPPIE_CB_FAILURE_THRESHOLD" envDefault:"10"`
	CBSuccessThreshold int  `env:"MOPPIE_CB_SUCCESS_THRESHOLD" envDefault:"3"`
	CBTimeout          int  `env:"MOPPIE_CB_TIMEOUT" envDefault:"30"` // seconds
	CBMaxHalfOpen      int  `env:"MOPPIE_CB_MAX_HALF_OPEN" envDefault:"5"`

	// HTTP client performance
	MaxConnsPerHost int `env:"MOPPIE_MAX_CONNS_PER_HOST" envDefault:"50"`
	MaxIdleConns    int `env:"MOPPIE_MAX_IDLE_CONNS" envDefault:"100"`
	IdleConnTimeout int `env:"MOPPIE_IDLE_CONN_TIMEOUT" envDefault:"90"` // seconds

	// Listing defaults
	DefaultPageSize int `env:"MOPPIE_PAGE_SIZE" envDefault:"100"`

	// Notifications
	ToastTTL time.Duration `env:"MOPPIE_TOAST_TTL" envDefault:"5s"`

	// Optional Prometheus listener, e.g. ":9091". Empty disables it.
	MetricsAddr string `env:"MOPPIE_METRICS_ADDR"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.APIBaseURL = strings.TrimSuffix(strings.TrimSpace(cfg.APIBaseURL), "/")
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("MOPPIE_API_BASE_URL must not be empty")
	}
	if _, err := url.Parse(cfg.APIBaseURL); err != nil {
		return nil, fmt.Errorf("MOPPIE_API_BASE_URL is not a valid URL: %w", err)
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 100
	}

	if strings.TrimSpace(cfg.StorePath) == "" {
		path, err := defaultStorePath()
		if err != nil {
			return nil, err
		}
		cfg.StorePath = path
	}

	return cfg, nil
}

func defaultStorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "moppie", "console.db"), nil
}
