package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
)

// ErrorType represents the category of a failed API call.
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeRateLimited  ErrorType = "RATE_LIMITED"
	ErrorTypeServer       ErrorType = "SERVER"
	ErrorTypeTimeout      ErrorType = "TIMEOUT"
	ErrorTypeNetwork      ErrorType = "NETWORK"
)

// ErrSessionExpired marks an unrecoverable authentication failure: the
// refresh flow failed and the stored session has been torn down.
var ErrSessionExpired = errors.New("session expired")

// Error is the normalized form every failed API call resolves to.
type Error struct {
	Type    ErrorType
	Status  int // HTTP status, 0 for transport failures
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("[%s] %s (status %d)", e.Type, e.Message, e.Status)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the error may succeed on a later attempt.
// Only used for idempotent requests.
func (e *Error) Retryable() bool {
	switch e.Type {
	case ErrorTypeTimeout, ErrorTypeNetwork, ErrorTypeRateLimited, ErrorTypeServer:
		return true
	default:
		return false
	}
}

// IsUnauthorized reports whether err is a 401 API error.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Type == ErrorTypeUnauthorized
}

// IsTimeout reports whether err normalized to a timeout.
func IsTimeout(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Type == ErrorTypeTimeout
}

// IsNetwork reports whether err normalized to a network failure.
func IsNetwork(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Type == ErrorTypeNetwork
}

// errorBody is the shape most backend error payloads take; any of the
// fields may carry the human readable message.
type errorBody struct {
	Error   string `json:"error"`
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// normalizeStatus maps a non-2xx response to the error taxonomy.
func normalizeStatus(status int, body []byte) *Error {
	message := extractMessage(body)

	var errType ErrorType
	switch {
	case status == http.StatusUnauthorized:
		errType = ErrorTypeUnauthorized
		if message == "" {
			message = "authentication required"
		}
	case status == http.StatusForbidden:
		errType = ErrorTypeForbidden
		if message == "" {
			message = "permission denied"
		}
	case status == http.StatusNotFound:
		errType = ErrorTypeNotFound
		if message == "" {
			message = "resource not found"
		}
	case status == http.StatusConflict:
		errType = ErrorTypeConflict
		if message == "" {
			message = "conflicting request"
		}
	case status == http.StatusUnprocessableEntity || status == http.StatusBadRequest:
		errType = ErrorTypeValidation
		if message == "" {
			message = "invalid request"
		}
	case status == http.StatusTooManyRequests:
		errType = ErrorTypeRateLimited
		if message == "" {
			message = "rate limited"
		}
	default:
		errType = ErrorTypeServer
		if message == "" {
			message = "server error"
		}
	}

	return &Error{Type: errType, Status: status, Message: message}
}

// normalizeTransport maps errors without an HTTP response, distinguishing
// "timeout" from "network unreachable".
func normalizeTransport(err error) *Error {
	if isTimeoutErr(err) {
		return &Error{Type: ErrorTypeTimeout, Message: "request timed out", Err: err}
	}
	return &Error{Type: ErrorTypeNetwork, Message: "network unreachable", Err: err}
}

func isTimeoutErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if os.IsTimeout(err) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	// resty wraps client timeouts; the message is the last resort
	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}

func extractMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	for _, candidate := range []string{parsed.Error, parsed.Detail, parsed.Message} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return ""
}
