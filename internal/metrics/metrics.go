package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Console metrics - using explicit registration
var (
	// API request counters
	APIRequestsTotal *prometheus.CounterVec

	// API request latency
	APIRequestDuration *prometheus.HistogramVec

	// Token refresh counter
	TokenRefreshTotal *prometheus.CounterVec

	// Notification counter
	NotificationsTotal *prometheus.CounterVec

	// Circuit breaker state gauge
	CircuitBreakerState *prometheus.GaugeVec
)

// init creates and registers all metrics with the default registry
func init() {
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moppie",
			Subsystem: "console",
			Name:      "api_requests_total",
			Help:      "Total number of backend API requests",
		},
		[]string{"operation", "method", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "moppie",
			Subsystem: "console",
			Name:      "api_request_duration_seconds",
			Help:      "Backend API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"operation", "method"},
	)

	TokenRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moppie",
			Subsystem: "console",
			Name:      "token_refresh_total",
			Help:      "Total token refresh attempts",
		},
		[]string{"outcome"},
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "moppie",
			Subsystem: "console",
			Name:      "notifications_total",
			Help:      "Total notifications raised",
		},
		[]string{"level"},
	)

	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "moppie",
			Subsystem: "console",
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 0.5=half-open, 1=open)",
		},
		[]string{"scope"},
	)

	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
	prometheus.MustRegister(TokenRefreshTotal)
	prometheus.MustRegister(NotificationsTotal)
	prometheus.MustRegister(CircuitBreakerState)
	log.Debug().Msg("console metrics registered with Prometheus")
}

// RecordAPIRequest records one backend API call
func RecordAPIRequest(operation, method, status string, durationSec float64) {
	if status == "" {
		status = "unknown"
	}
	APIRequestsTotal.WithLabelValues(operation, method, status).Inc()
	APIRequestDuration.WithLabelValues(operation, method).Observe(durationSec)
}

// RecordTokenRefresh records a refresh attempt outcome ("success" or "failure")
func RecordTokenRefresh(outcome string) {
	TokenRefreshTotal.WithLabelValues(outcome).Inc()
}

// RecordNotification records a raised notification by level
func RecordNotification(level string) {
	NotificationsTotal.WithLabelValues(level).Inc()
}

// SetCircuitBreakerState sets the circuit breaker state gauge
func SetCircuitBreakerState(scope string, state string) {
	var val float64
	switch state {
	case "closed":
		val = 0.0
	case "half-open":
		val = 0.5
	case "open":
		val = 1.0
	}
	CircuitBreakerState.WithLabelValues(scope).Set(val)
}

// Handler exposes the default registry for an optional debug listener.
func Handler() http.Handler {
	return promhttp.Handler()
}
