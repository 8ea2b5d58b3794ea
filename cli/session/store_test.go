package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogctl/cli/api"
)

type memStorage struct {
	data map[string]string
	errs map[string]error
}

func newMemStorage() *memStorage {
	return &memStorage{data: make(map[string]string), errs: make(map[string]error)}
}

func (m *memStorage) Get(key string) (string, bool, error) {
	if err := m.errs[key]; err != nil {
		return "", false, err
	}
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *memStorage) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memStorage) Delete(key string) error {
	delete(m.data, key)
	return nil
}

// fakeAuth counts calls so tests can assert which restores hit the
// network.
type fakeAuth struct {
	loginResult  *api.LoginResult
	loginErr     error
	registerErr  error
	profile      *api.User
	profileErr   error
	profileCalls int
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (*api.LoginResult, error) {
	return f.loginResult, f.loginErr
}

func (f *fakeAuth) Register(_ context.Context, _ api.RegisterInput) error {
	return f.registerErr
}

func (f *fakeAuth) Profile(_ context.Context) (*api.User, error) {
	f.profileCalls++
	return f.profile, f.profileErr
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func validToken(t *testing.T) string {
	return signToken(t, jwt.MapClaims{
		"id":       float64(7),
		"username": "casey",
		"email":    "casey@example.com",
		"role":     "moderator",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
}

func TestStoreRestore(t *testing.T) {
	t.Run("Should stay signed out when no token is persisted", func(t *testing.T) {
		storage := newMemStorage()
		auth := &fakeAuth{}
		store := New(storage)
		store.Bind(auth)

		require.NoError(t, store.Restore(context.Background()))
		assert.False(t, store.SignedIn())
		assert.True(t, store.Restored())
		assert.Zero(t, auth.profileCalls)
	})

	t.Run("Should sign out an expired token without any network call", func(t *testing.T) {
		storage := newMemStorage()
		storage.data[KeyToken] = signToken(t, jwt.MapClaims{
			"id":  float64(7),
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		storage.data[KeyUser] = `{"id":7}`
		auth := &fakeAuth{}
		store := New(storage)
		store.Bind(auth)

		require.NoError(t, store.Restore(context.Background()))
		assert.False(t, store.SignedIn())
		assert.Empty(t, store.Token())
		assert.Zero(t, auth.profileCalls)
		// Both persisted keys are cleared together.
		_, ok, _ := storage.Get(KeyToken)
		assert.False(t, ok)
		_, ok, _ = storage.Get(KeyUser)
		assert.False(t, ok)
	})

	t.Run("Should sign out a malformed token without any network call", func(t *testing.T) {
		storage := newMemStorage()
		storage.data[KeyToken] = "not-a-jwt"
		auth := &fakeAuth{}
		store := New(storage)
		store.Bind(auth)

		require.NoError(t, store.Restore(context.Background()))
		assert.False(t, store.SignedIn())
		assert.Zero(t, auth.profileCalls)
	})

	t.Run("Should replace provisional identity with the profile", func(t *testing.T) {
		storage := newMemStorage()
		storage.data[KeyToken] = validToken(t)
		auth := &fakeAuth{profile: &api.User{
			ID: 7, Username: "casey-updated", Email: "casey@example.com",
			Role: api.RoleModerator, IsActive: true,
		}}
		store := New(storage)
		store.Bind(auth)

		require.NoError(t, store.Restore(context.Background()))
		require.True(t, store.SignedIn())
		assert.Equal(t, 1, auth.profileCalls)
		assert.Equal(t, "casey-updated", store.Identity().Username)
	})

	t.Run("Should sign out when the profile fetch fails", func(t *testing.T) {
		storage := newMemStorage()
		storage.data[KeyToken] = validToken(t)
		auth := &fakeAuth{profileErr: fmt.Errorf("connection refused")}
		store := New(storage)
		store.Bind(auth)

		require.NoError(t, store.Restore(context.Background()))
		assert.False(t, store.SignedIn())
		assert.Empty(t, store.Token())
		_, ok, _ := storage.Get(KeyToken)
		assert.False(t, ok)
	})

	t.Run("Should report storage faults as errors", func(t *testing.T) {
		storage := newMemStorage()
		storage.errs[KeyToken] = fmt.Errorf("disk on fire")
		store := New(storage)
		store.Bind(&fakeAuth{})

		err := store.Restore(context.Background())
		require.Error(t, err)
		assert.True(t, store.Restored())
	})
}

func TestStoreLogin(t *testing.T) {
	t.Run("Should persist token and identity together on success", func(t *testing.T) {
		storage := newMemStorage()
		user := api.User{ID: 3, Username: "riley", Role: api.RoleUser, IsActive: true}
		auth := &fakeAuth{loginResult: &api.LoginResult{AccessToken: "tok-123", User: user}}
		store := New(storage)
		store.Bind(auth)

		require.NoError(t, store.Login(context.Background(), "riley@example.com", "pw"))
		assert.True(t, store.SignedIn())
		assert.Equal(t, "tok-123", store.Token())
		assert.True(t, store.Restored())

		persisted, ok, _ := storage.Get(KeyToken)
		require.True(t, ok)
		assert.Equal(t, "tok-123", persisted)
		snapshot, ok, _ := storage.Get(KeyUser)
		require.True(t, ok)
		assert.Contains(t, snapshot, `"riley"`)
	})

	t.Run("Should leave the store untouched on rejection", func(t *testing.T) {
		storage := newMemStorage()
		auth := &fakeAuth{loginErr: &api.APIError{Status: 401, Message: "invalid credentials"}}
		store := New(storage)
		store.Bind(auth)

		err := store.Login(context.Background(), "riley@example.com", "wrong")
		require.Error(t, err)
		assert.False(t, store.SignedIn())
		assert.Empty(t, store.Token())
		_, ok, _ := storage.Get(KeyToken)
		assert.False(t, ok)
	})
}

func TestStoreLogout(t *testing.T) {
	t.Run("Should clear memory and storage and be idempotent", func(t *testing.T) {
		storage := newMemStorage()
		user := api.User{ID: 3, Username: "riley"}
		auth := &fakeAuth{loginResult: &api.LoginResult{AccessToken: "tok", User: user}}
		store := New(storage)
		store.Bind(auth)
		require.NoError(t, store.Login(context.Background(), "a", "b"))

		store.Logout()
		assert.False(t, store.SignedIn())
		assert.Empty(t, store.Token())
		store.Logout()
		assert.False(t, store.SignedIn())
	})
}

func TestStoreRefreshIdentity(t *testing.T) {
	t.Run("Should sign out when the server rejects the token", func(t *testing.T) {
		storage := newMemStorage()
		user := api.User{ID: 3, Username: "riley"}
		auth := &fakeAuth{loginResult: &api.LoginResult{AccessToken: "tok", User: user}}
		store := New(storage)
		store.Bind(auth)
		require.NoError(t, store.Login(context.Background(), "a", "b"))

		auth.profileErr = &api.APIError{Status: 401, Message: "token expired"}
		_, err := store.RefreshIdentity(context.Background())
		require.Error(t, err)
		assert.False(t, store.SignedIn())
	})

	t.Run("Should keep the session on transient failure", func(t *testing.T) {
		storage := newMemStorage()
		user := api.User{ID: 3, Username: "riley"}
		auth := &fakeAuth{loginResult: &api.LoginResult{AccessToken: "tok", User: user}}
		store := New(storage)
		store.Bind(auth)
		require.NoError(t, store.Login(context.Background(), "a", "b"))

		auth.profileErr = fmt.Errorf("connection refused")
		_, err := store.RefreshIdentity(context.Background())
		require.Error(t, err)
		assert.True(t, store.SignedIn())
	})
}

func TestDecodeClaims(t *testing.T) {
	t.Run("Should decode identity claims without verification", func(t *testing.T) {
		claims, err := DecodeClaims(validToken(t))
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
		assert.Equal(t, "casey", claims.Username)
		assert.Equal(t, api.RoleModerator, claims.Role)
		assert.False(t, claims.Expired(time.Now()))
	})

	t.Run("Should read numeric subject when id claim is absent", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"sub": "42",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		claims, err := DecodeClaims(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), claims.UserID)
	})

	t.Run("Should reject a token without expiry", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"id": float64(1)})
		_, err := DecodeClaims(token)
		require.Error(t, err)
	})

	t.Run("Should build a provisional active identity", func(t *testing.T) {
		claims, err := DecodeClaims(validToken(t))
		require.NoError(t, err)
		ident := claims.Identity()
		assert.Equal(t, int64(7), ident.ID)
		assert.True(t, ident.IsActive)
	})
}
