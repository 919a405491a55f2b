package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MOPPIE_STORE_PATH", t.TempDir()+"/console.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.RefreshSkew)
	assert.Equal(t, 3, cfg.RetryMaxAttempts)
	assert.True(t, cfg.CBEnabled)
	assert.Equal(t, 10, cfg.CBFailureThreshold)
	assert.Equal(t, 100, cfg.DefaultPageSize)
	assert.Equal(t, 5*time.Second, cfg.ToastTTL)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MOPPIE_API_BASE_URL", "https://api.moppie.nl/api/")
	t.Setenv("MOPPIE_API_TIMEOUT", "30s")
	t.Setenv("MOPPIE_LOG_LEVEL", "debug")
	t.Setenv("MOPPIE_PAGE_SIZE", "25")
	t.Setenv("MOPPIE_CB_ENABLED", "false")
	t.Setenv("MOPPIE_STORE_PATH", t.TempDir()+"/console.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.moppie.nl/api", cfg.APIBaseURL, "trailing slash is stripped")
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 25, cfg.DefaultPageSize)
	assert.False(t, cfg.CBEnabled)
}

func TestLoadRejectsEmptyBaseURL(t *testing.T) {
	t.Setenv("MOPPIE_API_BASE_URL", "   ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MOPPIE_API_BASE_URL")
}

func TestLoadNormalizesPageSize(t *testing.T) {
	t.Setenv("MOPPIE_PAGE_SIZE", "-1")
	t.Setenv("MOPPIE_STORE_PATH", t.TempDir()+"/console.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.DefaultPageSize)
}

func TestLoadResolvesDefaultStorePath(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Contains(t, cfg.StorePath, "moppie")
	assert.Contains(t, cfg.StorePath, "console.db")
}
