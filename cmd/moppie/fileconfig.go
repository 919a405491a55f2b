package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/moppie/ops-console/internal/config"
)

// fileConfig is the optional yaml console config. Values set here override
// the environment.
type fileConfig struct {
	APIBaseURL string `yaml:"api_base_url"`
	APITimeout string `yaml:"api_timeout"`
	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"`
	StorePath  string `yaml:"store_path"`
	PageSize   int    `yaml:"page_size"`
}

func applyFileConfig(path string, cfg *config.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if v := strings.TrimSpace(fc.APIBaseURL); v != "" {
		cfg.APIBaseURL = strings.TrimSuffix(v, "/")
	}
	if v := strings.TrimSpace(fc.APITimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid api_timeout %q: %w", v, err)
		}
		cfg.APITimeout = timeout
	}
	if v := strings.TrimSpace(fc.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(fc.LogFormat); v != "" {
		cfg.LogFormat = v
	}
	if v := strings.TrimSpace(fc.StorePath); v != "" {
		cfg.StorePath = v
	}
	if fc.PageSize > 0 {
		cfg.DefaultPageSize = fc.PageSize
	}
	return nil
}
