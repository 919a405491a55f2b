package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/moppie/ops-console/internal/domain/auth"
	"github.com/moppie/ops-console/internal/infrastructure/api"
	"github.com/moppie/ops-console/internal/infrastructure/store"
)

// API is the slice of the backend client the session manager needs.
type API interface {
	Login(ctx context.Context, creds auth.Credentials) (*api.LoginResponse, error)
	Register(ctx context.Context, reg auth.Registration) (*api.LoginResponse, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*auth.User, error)
}

// Manager owns the authenticated session: exactly one session is active at a
// time, and the absence of a stored access token means unauthenticated.
type Manager struct {
	api   API
	store store.Store

	mu   sync.RWMutex
	user *auth.User
}

// NewManager creates a session manager over the given store.
func NewManager(client API, st store.Store) *Manager {
	return &Manager{api: client, store: st}
}

// Login exchanges credentials for a session and persists the token pair.
func (m *Manager) Login(ctx context.Context, creds auth.Credentials) (*auth.Session, error) {
	resp, err := m.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	pair := store.TokenPair{Access: resp.AccessToken, Refresh: resp.RefreshToken}
	if err := m.store.SaveTokens(pair); err != nil {
		return nil, err
	}

	user := resp.User
	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()

	log.Info().Str("email", user.Email).Str("role", user.Role).Msg("logged in")

	return &auth.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         &user,
	}, nil
}

// Register creates an account and logs it in.
func (m *Manager) Register(ctx context.Context, reg auth.Registration) (*auth.Session, error) {
	resp, err := m.api.Register(ctx, reg)
	if err != nil {
		return nil, err
	}

	pair := store.TokenPair{Access: resp.AccessToken, Refresh: resp.RefreshToken}
	if err := m.store.SaveTokens(pair); err != nil {
		return nil, err
	}

	user := resp.User
	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()

	return &auth.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         &user,
	}, nil
}

// Logout invalidates the backend session best-effort and always clears the
// stored tokens.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.api.Logout(ctx); err != nil {
		log.Warn().Err(err).Msg("backend logout failed, clearing local session anyway")
	}
	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()
	return m.store.ClearTokens()
}

// Profile fetches and caches the authenticated user.
func (m *Manager) Profile(ctx context.Context) (*auth.User, error) {
	user, err := m.api.Profile(ctx)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	return user, nil
}

// Current returns the session as currently stored. User may be nil when the
// profile has not been fetched this run.
func (m *Manager) Current() auth.Session {
	tokens, err := m.store.Tokens()
	if err != nil {
		log.Error().Err(err).Msg("failed to read stored tokens")
	}
	m.mu.RLock()
	user := m.user
	m.mu.RUnlock()
	return auth.Session{
		AccessToken:  tokens.Access,
		RefreshToken: tokens.Refresh,
		User:         user,
	}
}

// Authenticated reports whether an access token is stored.
func (m *Manager) Authenticated() bool {
	tokens, err := m.store.Tokens()
	return err == nil && tokens.Access != ""
}

// HandleExpiry drops the cached user after an unrecoverable refresh failure.
// The API client has already cleared the stored tokens at that point.
func (m *Manager) HandleExpiry() {
	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()
	log.Warn().Msg("session expired, sign in again")
}
