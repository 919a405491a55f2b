package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/moppie/ops-console/internal/infrastructure/store"
	"github.com/moppie/ops-console/internal/metrics"
	"github.com/moppie/ops-console/internal/utils/requestid"
)

const headerRequestID = "X-Request-ID"

// Config captures the knobs exposed to operators for the backend API client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	// RefreshSkew refreshes the access token ahead of its expiry. Zero
	// disables pre-emptive refresh.
	RefreshSkew time.Duration

	// Retry applies to idempotent GETs only.
	Retry RetryConfig

	Breaker CircuitBreakerConfig

	// HTTP Client Settings
	MaxConnsPerHost int
	MaxIdleConns    int
	IdleConnTimeout time.Duration
}

// Client is the shared backend API client. It attaches the stored bearer
// token to every authenticated request and recovers from an expired access
// token at most once per logical request.
type Client struct {
	http    *resty.Client
	store   store.Store
	retry   RetryConfig
	breaker *CircuitBreaker

	refreshSkew  time.Duration
	refreshGroup singleflight.Group

	mu               sync.RWMutex
	onSessionExpired func()
}

// New wires the HTTP client with connection pooling and the refresh flow.
func New(cfg Config, st store.Store) *Client {
	timeout := 15 * time.Second
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}
	userAgent := "Moppie-Ops-Console/1.0"
	if cfg.UserAgent != "" {
		userAgent = cfg.UserAgent
	}

	maxIdleConns := cfg.MaxIdleConns
	if maxIdleConns == 0 {
		maxIdleConns = 100
	}
	maxConnsPerHost := cfg.MaxConnsPerHost
	if maxConnsPerHost == 0 {
		maxConnsPerHost = 50
	}
	idleConnTimeout := cfg.IdleConnTimeout
	if idleConnTimeout == 0 {
		idleConnTimeout = 90 * time.Second
	}
	transport := &http.Transport{
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: 20,
		MaxConnsPerHost:     maxConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetRetryCount(0).
		SetTransport(transport)

	retryCfg := DefaultRetryConfig()
	if cfg.Retry.MaxAttempts > 0 {
		retryCfg = cfg.Retry
	}

	breakerCfg := cfg.Breaker
	if breakerCfg.FailureThreshold == 0 && breakerCfg.SuccessThreshold == 0 {
		breakerCfg = DefaultCircuitBreakerConfig()
	}

	return &Client{
		http:        httpClient,
		store:       st,
		retry:       retryCfg,
		breaker:     NewCircuitBreaker("backend", breakerCfg),
		refreshSkew: cfg.RefreshSkew,
	}
}

// OnSessionExpired registers the callback fired when the refresh flow fails
// terminally and the stored session has been cleared. The login redirect of
// the web dashboard maps onto this hook.
func (c *Client) OnSessionExpired(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSessionExpired = fn
}

// Breaker exposes the circuit breaker, mainly for operational tooling.
func (c *Client) Breaker() *CircuitBreaker {
	return c.breaker
}

type requestFn func(r *resty.Request) (*resty.Response, error)

// do sends one logical request. Authenticated requests that come back 401
// get exactly one refresh-and-retry cycle; a 401 on the retried request is
// returned as-is.
func (c *Client) do(ctx context.Context, operation, method string, authed bool, send requestFn) (*resty.Response, error) {
	start := time.Now()
	status := "transport_error"
	defer func() {
		metrics.RecordAPIRequest(operation, method, status, time.Since(start).Seconds())
	}()

	resp, err := c.attempt(ctx, authed, send)
	if err != nil {
		return nil, normalizeTransport(err)
	}

	if authed && resp.StatusCode() == http.StatusUnauthorized {
		log.Debug().Str("operation", operation).Msg("access token rejected, attempting refresh")
		if err := c.refresh(ctx); err != nil {
			status = strconv.Itoa(http.StatusUnauthorized)
			return nil, err
		}
		resp, err = c.attempt(ctx, authed, send)
		if err != nil {
			return nil, normalizeTransport(err)
		}
	}

	status = strconv.Itoa(resp.StatusCode())
	if resp.IsError() {
		return resp, normalizeStatus(resp.StatusCode(), resp.Body())
	}
	return resp, nil
}

// attempt builds and sends a single request, reading the bearer token from
// the store at dispatch time so a refreshed token is always picked up.
func (c *Client) attempt(ctx context.Context, authed bool, send requestFn) (*resty.Response, error) {
	r := c.http.R().
		SetContext(ctx).
		SetHeader(headerRequestID, requestid.New())

	if authed {
		c.maybeRefreshExpiring(ctx)
		tokens, err := c.store.Tokens()
		if err == nil && tokens.Access != "" {
			r.SetAuthToken(tokens.Access)
		}
	}

	return send(r)
}

// maybeRefreshExpiring refreshes ahead of the access token expiry when a
// refresh token is available. Failures here are non-fatal; the 401 path
// governs.
func (c *Client) maybeRefreshExpiring(ctx context.Context) {
	if c.refreshSkew <= 0 {
		return
	}
	tokens, err := c.store.Tokens()
	if err != nil || tokens.Access == "" || tokens.Refresh == "" {
		return
	}
	if !tokenExpiringSoon(tokens.Access, c.refreshSkew) {
		return
	}
	if err := c.refresh(ctx); err != nil {
		log.Debug().Err(err).Msg("pre-emptive token refresh failed")
	}
}

// refresh exchanges the stored refresh token for a new pair. Concurrent
// callers are coalesced into a single in-flight refresh. A refresh the
// server rejects tears the session down; transport failures do not.
func (c *Client) refresh(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		tokens, err := c.store.Tokens()
		if err != nil {
			return nil, err
		}
		if tokens.Refresh == "" {
			c.teardownSession()
			return nil, &Error{
				Type:    ErrorTypeUnauthorized,
				Status:  http.StatusUnauthorized,
				Message: "no refresh token stored",
				Err:     ErrSessionExpired,
			}
		}

		var out TokenResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetHeader(headerRequestID, requestid.New()).
			SetBody(refreshRequest{RefreshToken: tokens.Refresh}).
			SetResult(&out).
			Post("/auth/refresh/")
		if err != nil {
			metrics.RecordTokenRefresh("failure")
			return nil, normalizeTransport(err)
		}
		if resp.IsError() {
			metrics.RecordTokenRefresh("failure")
			log.Warn().Int("status", resp.StatusCode()).Msg("token refresh rejected, clearing session")
			c.teardownSession()
			apiErr := normalizeStatus(resp.StatusCode(), resp.Body())
			apiErr.Err = ErrSessionExpired
			return nil, apiErr
		}

		if err := c.store.SaveTokens(store.TokenPair{Access: out.AccessToken, Refresh: out.RefreshToken}); err != nil {
			metrics.RecordTokenRefresh("failure")
			return nil, err
		}
		metrics.RecordTokenRefresh("success")
		log.Debug().Msg("access token refreshed")
		return nil, nil
	})
	return err
}

func (c *Client) teardownSession() {
	if err := c.store.ClearTokens(); err != nil {
		log.Error().Err(err).Msg("failed to clear stored tokens")
	}
	c.mu.RLock()
	fn := c.onSessionExpired
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// tokenExpiringSoon inspects the unverified exp claim. Tokens that do not
// parse are sent as-is and left to the server to judge.
func tokenExpiringSoon(token string, skew time.Duration) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < skew
}

// get issues an idempotent GET with retry and circuit breaker protection.
func (c *Client) get(ctx context.Context, operation, path string, query url.Values, out any) error {
	_, err := WithRetry(ctx, c.retry, operation, func() (*resty.Response, error) {
		if err := c.breaker.Allow(); err != nil {
			return nil, err
		}
		resp, err := c.do(ctx, operation, http.MethodGet, true, func(r *resty.Request) (*resty.Response, error) {
			if len(query) > 0 {
				r.SetQueryParamsFromValues(query)
			}
			if out != nil {
				r.SetResult(out)
			}
			return r.Get(path)
		})
		// client-side errors (4xx) must not trip the breaker
		c.breaker.RecordResult(operation, errForBreaker(err))
		return resp, err
	})
	return err
}

// getRaw issues an idempotent GET and returns the raw body (report exports).
func (c *Client) getRaw(ctx context.Context, operation, path string, query url.Values) ([]byte, error) {
	resp, err := WithRetry(ctx, c.retry, operation, func() (*resty.Response, error) {
		if err := c.breaker.Allow(); err != nil {
			return nil, err
		}
		resp, err := c.do(ctx, operation, http.MethodGet, true, func(r *resty.Request) (*resty.Response, error) {
			if len(query) > 0 {
				r.SetQueryParamsFromValues(query)
			}
			return r.Get(path)
		})
		c.breaker.RecordResult(operation, errForBreaker(err))
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// post issues an authenticated POST. Never retried.
func (c *Client) post(ctx context.Context, operation, path string, body, out any) error {
	_, err := c.do(ctx, operation, http.MethodPost, true, func(r *resty.Request) (*resty.Response, error) {
		if body != nil {
			r.SetBody(body)
		}
		if out != nil {
			r.SetResult(out)
		}
		return r.Post(path)
	})
	return err
}

// postPublic issues an unauthenticated POST (login, register, refresh).
// A 401 here is a final answer, not a trigger for the refresh flow.
func (c *Client) postPublic(ctx context.Context, operation, path string, body, out any) error {
	_, err := c.do(ctx, operation, http.MethodPost, false, func(r *resty.Request) (*resty.Response, error) {
		if body != nil {
			r.SetBody(body)
		}
		if out != nil {
			r.SetResult(out)
		}
		return r.Post(path)
	})
	return err
}

// put issues an authenticated PUT. Never retried.
func (c *Client) put(ctx context.Context, operation, path string, body, out any) error {
	_, err := c.do(ctx, operation, http.MethodPut, true, func(r *resty.Request) (*resty.Response, error) {
		if body != nil {
			r.SetBody(body)
		}
		if out != nil {
			r.SetResult(out)
		}
		return r.Put(path)
	})
	return err
}

// patch issues an authenticated PATCH. Never retried.
func (c *Client) patch(ctx context.Context, operation, path string, body, out any) error {
	_, err := c.do(ctx, operation, http.MethodPatch, true, func(r *resty.Request) (*resty.Response, error) {
		if body != nil {
			r.SetBody(body)
		}
		if out != nil {
			r.SetResult(out)
		}
		return r.Patch(path)
	})
	return err
}

// delete issues an authenticated DELETE. Never retried.
func (c *Client) delete(ctx context.Context, operation, path string) error {
	_, err := c.do(ctx, operation, http.MethodDelete, true, func(r *resty.Request) (*resty.Response, error) {
		return r.Delete(path)
	})
	return err
}

func errForBreaker(err error) error {
	if err == nil {
		return nil
	}
	if !isRetryable(err) {
		return nil
	}
	return err
}
