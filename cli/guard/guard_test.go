package guard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogctl/cli/api"
	"blogctl/cli/session"
)

type memStorage struct {
	data map[string]string
}

func (m *memStorage) Get(key string) (string, bool, error) {
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

type fakeAuth struct {
	user api.User
}

func (f *fakeAuth) Login(context.Context, string, string) (*api.LoginResult, error) {
	return &api.LoginResult{AccessToken: "tok", User: f.user}, nil
}

func (f *fakeAuth) Register(context.Context, api.RegisterInput) error { return nil }

func (f *fakeAuth) Profile(context.Context) (*api.User, error) {
	user := f.user
	return &user, nil
}

func signedInStore(t *testing.T, role api.Role) *session.Store {
	t.Helper()
	store := session.New(&memStorage{data: make(map[string]string)})
	store.Bind(&fakeAuth{user: api.User{ID: 1, Username: "u", Role: role, IsActive: true}})
	require.NoError(t, store.Login(context.Background(), "u@example.com", "pw"))
	return store
}

func signedOutStore(t *testing.T) *session.Store {
	t.Helper()
	store := session.New(&memStorage{data: make(map[string]string)})
	store.Bind(&fakeAuth{})
	require.NoError(t, store.Restore(context.Background()))
	return store
}

func TestCheck(t *testing.T) {
	t.Run("Should allow public commands regardless of session", func(t *testing.T) {
		assert.Equal(t, Allow, Check(signedOutStore(t), Public))
		assert.Equal(t, Allow, Check(signedInStore(t, api.RoleUser), Public))
	})

	t.Run("Should send signed-out users to sign in", func(t *testing.T) {
		assert.Equal(t, SignIn, Check(signedOutStore(t), Authenticated))
		assert.Equal(t, SignIn, Check(signedOutStore(t), RequireRole(api.RoleAdmin)))
	})

	t.Run("Should allow any live session for authenticated-only", func(t *testing.T) {
		assert.Equal(t, Allow, Check(signedInStore(t, api.RoleUser), Authenticated))
	})

	t.Run("Should send under-privileged sessions home", func(t *testing.T) {
		assert.Equal(t, Home, Check(signedInStore(t, api.RoleUser), RequireRole(api.RoleModerator)))
		assert.Equal(t, Home, Check(signedInStore(t, api.RoleUser),
			RequireAnyRole(api.RoleAdmin, api.RoleModerator)))
	})

	t.Run("Should always pass admin through role gates", func(t *testing.T) {
		assert.Equal(t, Allow, Check(signedInStore(t, api.RoleAdmin), RequireRole(api.RoleModerator)))
		assert.Equal(t, Allow, Check(signedInStore(t, api.RoleAdmin),
			RequireAnyRole(api.RoleModerator)))
	})

	t.Run("Should match the exact role and any-of set", func(t *testing.T) {
		assert.Equal(t, Allow, Check(signedInStore(t, api.RoleModerator), RequireRole(api.RoleModerator)))
		assert.Equal(t, Allow, Check(signedInStore(t, api.RoleModerator),
			RequireAnyRole(api.RoleAdmin, api.RoleModerator)))
	})
}
