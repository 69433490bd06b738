// Package session holds the current token/user pair with durable
// persistence. State transitions are pure functions over Session values;
// the Store applies them under a lock and writes each result through a
// Blob adapter.
package session

import (
	"log"
	"sync"

	"github.com/hasan-mia/the-x-tribune-server/internal/model"
)

// Session is the durable authentication state. Token and User are either
// both set (authenticated) or both empty (unauthenticated) once hydration
// completes; a token without a user is a transient window during login.
type Session struct {
	Token string      `json:"token,omitempty"`
	User  *model.User `json:"user,omitempty"`
}

// Authenticated reports whether both halves of the pair are present.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// withToken returns a copy with the token replaced.
func withToken(s Session, token string) Session {
	s.Token = token
	return s
}

// withUser returns a copy with the user replaced.
func withUser(s Session, user *model.User) Session {
	s.User = user
	return s
}

// cleared returns the empty session.
func cleared(Session) Session {
	return Session{}
}

// Store is the single shared mutable session holder. Every mutation is
// persisted synchronously through the Blob so a restart recovers the last
// known session.
type Store struct {
	mu       sync.Mutex
	current  Session
	hydrated bool
	blob     Blob
	onLogout []func()
}

// NewStore creates a Store over the given persistence adapter. The store is
// unhydrated until Hydrate is called; until then the session must be treated
// as unknown, not unauthenticated.
func NewStore(blob Blob) *Store {
	return &Store{blob: blob}
}

// Hydrate loads the persisted snapshot, exactly once. A read failure or a
// corrupt blob falls open to the logged-out state and is never fatal.
func (st *Store) Hydrate() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.hydrated {
		return
	}
	st.hydrated = true

	snap, ok, err := st.blob.Load()
	if err != nil {
		log.Printf("session: discarding persisted session: %v", err)
		return
	}
	if ok {
		st.current = snap
	}
}

// Hydrated reports whether the persisted snapshot has been loaded.
func (st *Store) Hydrated() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.hydrated
}

// SetToken stores the token. It does not imply the user is set.
func (st *Store) SetToken(token string) {
	st.apply(func(s Session) Session { return withToken(s, token) })
}

// SetUser stores or replaces the user profile.
func (st *Store) SetUser(user *model.User) {
	st.apply(func(s Session) Session { return withUser(s, user) })
}

// Logout clears token and user atomically and runs the registered
// invalidation hooks. Calling it twice is the same as calling it once.
func (st *Store) Logout() {
	st.apply(cleared)

	st.mu.Lock()
	hooks := st.onLogout
	st.mu.Unlock()
	for _, hook := range hooks {
		hook()
	}
}

// OnLogout registers a hook run after the session is cleared, used to
// invalidate caches keyed to the previous session.
func (st *Store) OnLogout(hook func()) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.onLogout = append(st.onLogout, hook)
}

// Snapshot returns the current session value.
func (st *Store) Snapshot() Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.current
}

// Token returns the current token, empty when unauthenticated.
func (st *Store) Token() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.current.Token
}

// User returns the current user, nil when unauthenticated.
func (st *Store) User() *model.User {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.current.User
}

func (st *Store) apply(transition func(Session) Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.current = transition(st.current)
	// Best-effort write; a persistence failure must not break the in-memory
	// session, it only costs durability across a restart.
	if err := st.blob.Save(st.current); err != nil {
		log.Printf("session: persist failed: %v", err)
	}
}
