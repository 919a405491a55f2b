package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetryConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:   attempts,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 1.5,
	}
}

func TestWithRetrySucceedsFirstAttempt(t *testing.T) {
	calls := 0
	result, err := WithRetry(context.Background(), fastRetryConfig(3), "test", func() (*string, error) {
		calls++
		s := "ok"
		return &s, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", *result)
	assert.Equal(t, 1, calls)
}

func TestWithRetryRecoversFromRetryableError(t *testing.T) {
	calls := 0
	result, err := WithRetry(context.Background(), fastRetryConfig(3), "test", func() (*string, error) {
		calls++
		if calls < 3 {
			return nil, &Error{Type: ErrorTypeNetwork, Message: "network unreachable"}
		}
		s := "ok"
		return &s, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", *result)
	assert.Equal(t, 3, calls)
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), fastRetryConfig(3), "test", func() (*string, error) {
		calls++
		return nil, &Error{Type: ErrorTypeServer, Status: 502, Message: "bad gateway"}
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorTypeServer, apiErr.Type)
}

func TestWithRetryAbortsOnNonRetryableError(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), fastRetryConfig(5), "test", func() (*string, error) {
		calls++
		return nil, &Error{Type: ErrorTypeValidation, Status: 422, Message: "invalid request"}
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls, "validation errors must not be retried")
}

func TestWithRetryAbortsOnUnknownError(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), fastRetryConfig(5), "test", func() (*string, error) {
		calls++
		return nil, errors.New("plain error")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	cfg := RetryConfig{
		MaxAttempts:   10,
		InitialDelay:  time.Hour, // would block without cancellation
		MaxDelay:      time.Hour,
		BackoffFactor: 2,
	}

	done := make(chan error, 1)
	go func() {
		_, err := WithRetry(ctx, cfg, "test", func() (*string, error) {
			return nil, &Error{Type: ErrorTypeNetwork, Message: "network unreachable"}
		})
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("retry loop did not observe cancellation")
	}
}

func TestCalculateBackoffBounded(t *testing.T) {
	initial := 100 * time.Millisecond
	max := time.Second

	for attempt := 1; attempt <= 10; attempt++ {
		delay := calculateBackoff(attempt, initial, max, 2.0)
		assert.LessOrEqual(t, delay, max+max/10, "attempt %d", attempt)
		assert.Greater(t, delay, time.Duration(0), "attempt %d", attempt)
	}
}

func TestCalculateBackoffGrows(t *testing.T) {
	initial := 100 * time.Millisecond
	first := calculateBackoff(1, initial, time.Minute, 2.0)
	fourth := calculateBackoff(4, initial, time.Minute, 2.0)
	assert.Greater(t, fourth, first)
}
