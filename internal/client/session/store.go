// Package session holds the in-memory authentication state of the client.
package session

import (
	"sync"

	"github.com/dmitrijs2005/nearby/internal/client/models"
)

// Store is the single owner of the session token and current user. It is
// safe for concurrent use. Clearing the store runs the registered
// invalidation hooks so that no session-scoped cache survives a logout;
// stale data from session N must never be visible to session N+1.
type Store struct {
	mu      sync.Mutex
	token   string
	user    *models.User
	onClear []func()
}

func NewStore() *Store {
	return &Store{}
}

// OnClear registers a hook to run whenever an authenticated session is
// cleared. Hooks run outside the store lock, in registration order.
func (s *Store) OnClear(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClear = append(s.onClear, fn)
}

// Set installs a session. The user may be nil while the current-user fetch
// is still in flight; a later Set with the same token completes it.
func (s *Store) Set(token string, user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user.Clone()
}

// Clear drops the session and runs the invalidation hooks. Clearing an
// already-empty store is a no-op; the call is idempotent.
func (s *Store) Clear() {
	s.mu.Lock()
	wasSet := s.token != "" || s.user != nil
	s.token = ""
	s.user = nil
	hooks := s.onClear
	s.mu.Unlock()

	if !wasSet {
		return
	}
	for _, fn := range hooks {
		fn()
	}
}

// Current returns the session; ok is false when no token is held.
func (s *Store) Current() (models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return models.Session{}, false
	}
	return models.Session{Token: s.token, User: s.user.Clone()}, true
}

// Token implements api.TokenSource.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

// UserID returns the id of the resolved current user, if any.
func (s *Store) UserID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return "", false
	}
	return s.user.ID, true
}
