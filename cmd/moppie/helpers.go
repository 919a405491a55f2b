package main

import (
	"time"

	"github.com/moppie/ops-console/internal/config"
	"github.com/moppie/ops-console/internal/infrastructure/api"
)

func retryConfig(cfg *config.Config) api.RetryConfig {
	retry := api.DefaultRetryConfig()
	if cfg.RetryMaxAttempts > 0 {
		retry.MaxAttempts = cfg.RetryMaxAttempts
	}
	if cfg.RetryInitialDelay > 0 {
		retry.InitialDelay = time.Duration(cfg.RetryInitialDelay) * time.Millisecond
	}
	if cfg.RetryMaxDelay > 0 {
		retry.MaxDelay = time.Duration(cfg.RetryMaxDelay) * time.Millisecond
	}
	if cfg.RetryBackoffFactor > 0 {
		retry.BackoffFactor = cfg.RetryBackoffFactor
	}
	return retry
}

func breakerConfig(cfg *config.Config) api.CircuitBreakerConfig {
	breaker := api.DefaultCircuitBreakerConfig()
	breaker.Enabled = cfg.CBEnabled
	if cfg.CBFailureThreshold > 0 {
		breaker.FailureThreshold = cfg.CBFailureThreshold
	}
	if cfg.CBSuccessThreshold > 0 {
		breaker.SuccessThreshold = cfg.CBSuccessThreshold
	}
	if cfg.CBTimeout > 0 {
		breaker.Timeout = time.Duration(cfg.CBTimeout) * time.Second
	}
	if cfg.CBMaxHalfOpen > 0 {
		breaker.MaxHalfOpenCalls = cfg.CBMaxHalfOpen
	}
	return breaker
}
