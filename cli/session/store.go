package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"blogctl/cli/api"
	"blogctl/pkg/logger"
)

// AuthAPI is the slice of the gateway the session store needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Register(ctx context.Context, input api.RegisterInput) error
	Profile(ctx context.Context) (*api.User, error)
}

// Store owns the session token and derived identity. It is explicitly
// constructed and passed to whatever needs it; there is no package-level
// instance.
//
// Invariant: identity is present iff token is present and was unexpired at
// the last check. Any ambiguity resolves to signed out.
type Store struct {
	mu       sync.RWMutex
	storage  Storage
	auth     AuthAPI
	now      func() time.Time
	token    string
	identity *api.User
	restored bool
}

// New builds a store over durable storage. Bind must be called with the
// gateway auth service before Restore, Login or Register.
func New(storage Storage) *Store {
	return &Store{storage: storage, now: time.Now}
}

// Bind attaches the gateway auth service. Split from New because the
// gateway itself reads the token from this store.
func (s *Store) Bind(auth AuthAPI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = auth
}

// Token implements api.TokenSource. Empty means signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Identity returns a copy of the current identity, or nil when signed out.
func (s *Store) Identity() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	ident := *s.identity
	return &ident
}

// SignedIn reports whether a live session is present.
func (s *Store) SignedIn() bool {
	return s.Identity() != nil
}

// Restored reports whether Restore has completed since construction.
func (s *Store) Restored() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.restored
}

// Restore reads the persisted token and rebuilds the session. An absent
// or expired token yields signed-out state without any network call. A
// structurally valid token seeds a provisional identity from its claims,
// then the authoritative profile replaces it; if that fetch fails the
// whole session is discarded (fail closed). The returned error reflects
// storage faults only; auth outcomes are expressed through SignedIn.
func (s *Store) Restore(ctx context.Context) error {
	log := logger.FromContext(ctx)
	defer func() {
		s.mu.Lock()
		s.restored = true
		s.mu.Unlock()
	}()

	token, ok, err := s.storage.Get(KeyToken)
	if err != nil {
		return fmt.Errorf("failed to read persisted session: %w", err)
	}
	if !ok || token == "" {
		s.clear()
		return nil
	}

	claims, err := DecodeClaims(token)
	if err != nil || claims.Expired(s.now()) {
		log.Debug("persisted token invalid or expired, signing out")
		s.Logout()
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.identity = claims.Identity()
	auth := s.auth
	s.mu.Unlock()

	profile, err := auth.Profile(ctx)
	if err != nil {
		log.Warn("profile fetch failed during restore, signing out", "error", err)
		s.Logout()
		return nil
	}

	s.mu.Lock()
	s.identity = profile
	s.mu.Unlock()
	return nil
}

// Login exchanges credentials for a session. On success the token and
// identity snapshot are persisted together; on failure the store is left
// untouched and the gateway error carries the server's reason.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.mu.RLock()
	auth := s.auth
	s.mu.RUnlock()

	result, err := auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := s.storage.Set(KeyToken, result.AccessToken); err != nil {
		return err
	}
	snapshot, err := json.Marshal(result.User)
	if err != nil {
		return fmt.Errorf("failed to encode identity snapshot: %w", err)
	}
	if err := s.storage.Set(KeyUser, string(snapshot)); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = result.AccessToken
	user := result.User
	s.identity = &user
	s.restored = true
	s.mu.Unlock()
	return nil
}

// Register creates an account without authenticating.
func (s *Store) Register(ctx context.Context, input api.RegisterInput) error {
	s.mu.RLock()
	auth := s.auth
	s.mu.RUnlock()
	return auth.Register(ctx, input)
}

// RefreshIdentity re-fetches the profile and replaces the identity in
// full. Expiry detected here is fatal to the session.
func (s *Store) RefreshIdentity(ctx context.Context) (*api.User, error) {
	s.mu.RLock()
	auth := s.auth
	s.mu.RUnlock()

	profile, err := auth.Profile(ctx)
	if err != nil {
		if api.IsAuthRejection(err) {
			s.Logout()
		}
		return nil, err
	}
	s.mu.Lock()
	s.identity = profile
	s.mu.Unlock()
	ident := *profile
	return &ident, nil
}

// ReplaceIdentity swaps the identity snapshot after a profile update.
func (s *Store) ReplaceIdentity(user *api.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user == nil {
		return
	}
	ident := *user
	s.identity = &ident
}

// Logout clears the persisted token and identity together. Idempotent;
// storage faults are deliberately swallowed because sign-out must always
// succeed locally.
func (s *Store) Logout() {
	_ = s.storage.Delete(KeyToken)
	_ = s.storage.Delete(KeyUser)
	s.clear()
}

func (s *Store) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.identity = nil
}
