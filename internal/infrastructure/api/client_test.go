package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moppie/ops-console/internal/domain/auth"
	"github.com/moppie/ops-console/internal/infrastructure/store"
	"github.com/moppie/ops-console/internal/utils/requestid"
)

func newTestClient(t *testing.T, baseURL string, st store.Store) *Client {
	t.Helper()
	return New(Config{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Retry:   RetryConfig{MaxAttempts: 1},
	}, st)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestBearerTokenAttachedAtDispatch(t *testing.T) {
	st := store.NewMemory()
	require.NoError(t, st.SaveTokens(store.TokenPair{Access: "access-1", Refresh: "refresh-1"}))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		assert.True(t, requestid.IsValid(r.Header.Get("X-Request-ID")))
		writeJSON(t, w, http.StatusOK, auth.User{ID: "u1", Email: "admin@moppie.nl", Role: "admin"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, st)
	user, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin@moppie.nl", user.Email)
}

func TestUnauthorizedTriggersSingleRefreshAndRetry(t *testing.T) {
	st := store.NewMemory()
	require.NoError(t, st.SaveTokens(store.TokenPair{Access: "stale", Refresh: "refresh-1"}))

	var refreshCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh/" {
			refreshCalls.Add(1)
			writeJSON(t, w, http.StatusOK, TokenResponse{AccessToken: "fresh", RefreshToken: "refresh-2"})
			return
		}
		if r.Header.Get("Authorization") != "Bearer fresh" {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "token expired"})
			return
		}
		writeJSON(t, w, http.StatusOK, auth.User{ID: "u1", Email: "admin@moppie.nl"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, st)
	user, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin@moppie.nl", user.Email)
	assert.Equal(t, int32(1), refreshCalls.Load())

	tokens, err := st.Tokens()
	require.NoError(t, err)
	assert.Equal(t, "fresh", tokens.Access)
	assert.Equal(t, "refresh-2", tokens.Refresh)
}

func TestSecondUnauthorizedIsFinal(t *testing.T) {
	st := store.NewMemory()
	require.NoError(t, st.SaveTokens(store.TokenPair{Access: "stale", Refresh: "refresh-1"}))

	var refreshCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh/" {
			refreshCalls.Add(1)
			writeJSON(t, w, http.StatusOK, TokenResponse{AccessToken: "fresh", RefreshToken: "refresh-2"})
			return
		}
		// reject even the refreshed token
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "nope"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, st)
	_, err := client.Profile(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, int32(1), refreshCalls.Load(), "a 401 on the retried request must not trigger a second refresh")
}

func TestRejectedRefreshTearsDownSession(t *testing.T) {
	st := store.NewMemory()
	require.NoError(t, st.SaveTokens(store.TokenPair{Access: "stale", Refresh: "revoked"}))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh/" {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "refresh token revoked"})
			return
		}
		writeJSON(t, w, http.StatusUnauthorized, nil)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, st)
	var expired atomic.Bool
	client.OnSessionExpired(func() { expired.Store(true) })

	_, err := client.Profile(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.True(t, expired.Load())

	tokens, err := st.Tokens()
	require.NoError(t, err)
	assert.Empty(t, tokens.Access)
	assert.Empty(t, tokens.Refresh)
}

func TestMissingRefreshTokenTearsDownSession(t *testing.T) {
	st := store.NewMemory()
	require.NoError(t, st.SaveTokens(store.TokenPair{Access: "stale"}))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotEqual(t, "/auth/refresh/", r.URL.Path, "must not call refresh without a refresh token")
		writeJSON(t, w, http.StatusUnauthorized, nil)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, st)
	var expired atomic.Bool
	client.OnSessionExpired(func() { expired.Store(true) })

	_, err := client.Profile(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.True(t, expired.Load())
}

func TestTransportFailureDuringRefreshKeepsSession(t *testing.T) {
	st := store.NewMemory()
	require.NoError(t, st.SaveTokens(store.TokenPair{Access: "stale", Refresh: "refresh-1"}))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh/" {
			// drop the connection mid-request to simulate a transport failure
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		writeJSON(t, w, http.StatusUnauthorized, nil)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, st)
	var expired atomic.Bool
	client.OnSessionExpired(func() { expired.Store(true) })

	_, err := client.Profile(context.Background())
	require.Error(t, err)
	assert.False(t, expired.Load(), "a transient refresh failure must not clear the session")

	tokens, err := st.Tokens()
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", tokens.Refresh)
}

func TestConcurrentUnauthorizedCoalescesRefresh(t *testing.T) {
	st := store.NewMemory()
	require.NoError(t, st.SaveTokens(store.TokenPair{Access: "stale", Refresh: "refresh-1"}))

	var refreshCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh/" {
			refreshCalls.Add(1)
			time.Sleep(100 * time.Millisecond)
			writeJSON(t, w, http.StatusOK, TokenResponse{AccessToken: "fresh", RefreshToken: "refresh-2"})
			return
		}
		if r.Header.Get("Authorization") != "Bearer fresh" {
			writeJSON(t, w, http.StatusUnauthorized, nil)
			return
		}
		writeJSON(t, w, http.StatusOK, auth.User{Email: "admin@moppie.nl"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, st)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.Profile(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "request %d", i)
	}
	assert.Equal(t, int32(1), refreshCalls.Load(), "concurrent 401s must share one refresh")
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login/", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "login must be unauthenticated")

		var creds auth.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))

		if creds.Email == "admin@moppie.nl" && creds.Password == "AdminPass123!" {
			writeJSON(t, w, http.StatusOK, LoginResponse{
				User:         auth.User{ID: "u1", Email: creds.Email, Role: "admin", IsActive: true},
				AccessToken:  "access-1",
				RefreshToken: "refresh-1",
			})
			return
		}
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "invalid credentials"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, store.NewMemory())

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := client.Login(context.Background(), auth.Credentials{
			Email:    "admin@moppie.nl",
			Password: "AdminPass123!",
		})
		require.NoError(t, err)
		assert.Equal(t, "admin", resp.User.Role)
		assert.True(t, resp.User.IsAdmin())
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, err := client.Login(context.Background(), auth.Credentials{
			Email:    "admin@moppie.nl",
			Password: "wrong",
		})
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.True(t, IsUnauthorized(err), "a 401 on a public endpoint must not trigger the refresh flow")

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "invalid credentials", apiErr.Message)
	})
}

func TestTimeoutNormalization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	client := New(Config{
		BaseURL: server.URL,
		Timeout: 50 * time.Millisecond,
		Retry:   RetryConfig{MaxAttempts: 1},
	}, store.NewMemory())

	_, err := client.Profile(context.Background())
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.Contains(t, err.Error(), "request timed out")
}

func TestNetworkNormalization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	client := newTestClient(t, server.URL, store.NewMemory())

	_, err := client.Profile(context.Background())
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.Contains(t, err.Error(), "network unreachable")
}

func TestStatusNormalization(t *testing.T) {
	tests := []struct {
		status   int
		body     string
		wantType ErrorType
		wantMsg  string
	}{
		{http.StatusBadRequest, `{"error":"bad payload"}`, ErrorTypeValidation, "bad payload"},
		{http.StatusUnprocessableEntity, "", ErrorTypeValidation, "invalid request"},
		{http.StatusForbidden, `{"detail":"admins only"}`, ErrorTypeForbidden, "admins only"},
		{http.StatusNotFound, "", ErrorTypeNotFound, "resource not found"},
		{http.StatusConflict, `{"message":"email taken"}`, ErrorTypeConflict, "email taken"},
		{http.StatusTooManyRequests, "", ErrorTypeRateLimited, "rate limited"},
		{http.StatusInternalServerError, "not json", ErrorTypeServer, "server error"},
		{http.StatusBadGateway, "", ErrorTypeServer, "server error"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			apiErr := normalizeStatus(tt.status, []byte(tt.body))
			assert.Equal(t, tt.wantType, apiErr.Type)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestErrorRetryable(t *testing.T) {
	assert.True(t, (&Error{Type: ErrorTypeTimeout}).Retryable())
	assert.True(t, (&Error{Type: ErrorTypeNetwork}).Retryable())
	assert.True(t, (&Error{Type: ErrorTypeRateLimited}).Retryable())
	assert.True(t, (&Error{Type: ErrorTypeServer}).Retryable())
	assert.False(t, (&Error{Type: ErrorTypeUnauthorized}).Retryable())
	assert.False(t, (&Error{Type: ErrorTypeValidation}).Retryable())
	assert.False(t, (&Error{Type: ErrorTypeNotFound}).Retryable())
}

func TestRequestIDHeaderUnique(t *testing.T) {
	seen := make(map[string]bool)
	var mu sync.Mutex

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		require.True(t, strings.HasPrefix(id, "mop_"))
		mu.Lock()
		require.False(t, seen[id], "request ids must be unique")
		seen[id] = true
		mu.Unlock()
		writeJSON(t, w, http.StatusOK, auth.User{})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, store.NewMemory())
	for i := 0; i < 5; i++ {
		_, err := client.Profile(context.Background())
		require.NoError(t, err)
	}
}
