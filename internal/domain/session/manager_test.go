package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moppie/ops-console/internal/domain/auth"
	"github.com/moppie/ops-console/internal/infrastructure/api"
	"github.com/moppie/ops-console/internal/infrastructure/store"
)

type fakeAuthAPI struct {
	loginErr   error
	logoutErr  error
	profileErr error
	logoutN    int
	user       auth.User
}

func (f *fakeAuthAPI) Login(ctx context.Context, creds auth.Credentials) (*api.LoginResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &api.LoginResponse{
		User:         f.user,
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}, nil
}

func (f *fakeAuthAPI) Register(ctx context.Context, reg auth.Registration) (*api.LoginResponse, error) {
	return &api.LoginResponse{
		User:         auth.User{Email: reg.Email, FirstName: reg.FirstName, LastName: reg.LastName},
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
	}, nil
}

func (f *fakeAuthAPI) Logout(ctx context.Context) error {
	f.logoutN++
	return f.logoutErr
}

func (f *fakeAuthAPI) Profile(ctx context.Context) (*auth.User, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	u := f.user
	return &u, nil
}

func adminUser() auth.User {
	return auth.User{ID: "u1", Email: "admin@moppie.nl", FirstName: "Anna", LastName: "Visser", Role: "admin", IsActive: true}
}

func TestLoginStoresTokensAndUser(t *testing.T) {
	st := store.NewMemory()
	m := NewManager(&fakeAuthAPI{user: adminUser()}, st)

	sess, err := m.Login(context.Background(), auth.Credentials{Email: "admin@moppie.nl", Password: "AdminPass123!"})
	require.NoError(t, err)
	assert.Equal(t, "access-1", sess.AccessToken)
	assert.True(t, sess.User.IsAdmin())
	assert.Equal(t, "Anna Visser", sess.User.FullName())

	tokens, err := st.Tokens()
	require.NoError(t, err)
	assert.Equal(t, "access-1", tokens.Access)
	assert.Equal(t, "refresh-1", tokens.Refresh)
	assert.True(t, m.Authenticated())
}

func TestLoginFailureLeavesStoreEmpty(t *testing.T) {
	st := store.NewMemory()
	m := NewManager(&fakeAuthAPI{loginErr: errors.New("invalid credentials")}, st)

	_, err := m.Login(context.Background(), auth.Credentials{Email: "admin@moppie.nl", Password: "wrong"})
	require.Error(t, err)
	assert.False(t, m.Authenticated())
}

func TestLogoutClearsTokensEvenWhenBackendFails(t *testing.T) {
	st := store.NewMemory()
	fake := &fakeAuthAPI{user: adminUser(), logoutErr: errors.New("backend down")}
	m := NewManager(fake, st)

	_, err := m.Login(context.Background(), auth.Credentials{Email: "admin@moppie.nl", Password: "AdminPass123!"})
	require.NoError(t, err)

	require.NoError(t, m.Logout(context.Background()))
	assert.Equal(t, 1, fake.logoutN)
	assert.False(t, m.Authenticated())
	assert.Nil(t, m.Current().User)
}

func TestProfileCachesUser(t *testing.T) {
	st := store.NewMemory()
	m := NewManager(&fakeAuthAPI{user: adminUser()}, st)

	user, err := m.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin@moppie.nl", user.Email)

	current := m.Current()
	require.NotNil(t, current.User)
	assert.Equal(t, "admin@moppie.nl", current.User.Email)
}

func TestRegisterLogsIn(t *testing.T) {
	st := store.NewMemory()
	m := NewManager(&fakeAuthAPI{}, st)

	sess, err := m.Register(context.Background(), auth.Registration{
		Email:     "new@moppie.nl",
		Password:  "Secret123!",
		FirstName: "Piet",
		LastName:  "de Boer",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@moppie.nl", sess.User.Email)
	assert.True(t, m.Authenticated())
}

func TestHandleExpiryDropsCachedUser(t *testing.T) {
	st := store.NewMemory()
	m := NewManager(&fakeAuthAPI{user: adminUser()}, st)

	_, err := m.Profile(context.Background())
	require.NoError(t, err)
	require.NotNil(t, m.Current().User)

	m.HandleExpiry()
	assert.Nil(t, m.Current().User)
}
