// Package session holds the dashboard's authenticated session: the current
// user record and bearer token. The token is persisted to a durable file so a
// session survives process restarts until it is explicitly cleared.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// StorageName is the fixed base name of the durable session file. Its absence
// means "logged out" on next start.
const StorageName = "auth-storage.json"

// User is the dashboard's view of an authenticated account.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// Session is an immutable snapshot of the current authentication state.
type Session struct {
	User  *User  `json:"user,omitempty"`
	Token string `json:"token,omitempty"`
}

// Authenticated reports whether both a user and a token are present.
func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// Store owns the session state. Only Establish and Clear mutate it; every
// other operation is a read. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	current Session
	path    string

	subMu  sync.Mutex
	subs   map[int]func(Session)
	nextID int
}

// NewStore creates a Store persisting to StorageName inside dir, rehydrating
// any previously persisted session. A missing or unreadable file yields the
// empty session.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("session: resolve config dir: %w", err)
		}
		dir = filepath.Join(base, "university-admin")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("session: create storage dir: %w", err)
	}

	s := &Store{
		path: filepath.Join(dir, StorageName),
		subs: make(map[int]func(Session)),
	}
	s.rehydrate()
	return s, nil
}

// Get returns the current session snapshot. Never fails.
func (s *Store) Get() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Establish atomically installs the session for user and token and persists
// it. The user record is copied so callers cannot mutate the stored state.
func (s *Store) Establish(user User, token string) error {
	s.mu.Lock()
	u := user
	s.current = Session{User: &u, Token: token}
	snapshot := s.current
	err := s.persist(snapshot)
	s.mu.Unlock()

	s.notify(snapshot)
	return err
}

// Clear atomically resets to the empty session and removes the durable file.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.current = Session{}
	err := os.Remove(s.path)
	s.mu.Unlock()

	s.notify(Session{})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: remove persisted session: %w", err)
	}
	return nil
}

// Subscribe registers fn to be called after every Establish or Clear. The
// returned function cancels the subscription.
func (s *Store) Subscribe(fn func(Session)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(snapshot Session) {
	s.subMu.Lock()
	fns := make([]func(Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

// persist writes the full session object, matching the observed variant that
// stores both user and token under the fixed storage name.
func (s *Store) persist(snapshot Session) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("session: encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("session: persist session: %w", err)
	}
	return nil
}

func (s *Store) rehydrate() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var saved Session
	if err := json.Unmarshal(data, &saved); err != nil {
		return
	}
	// A file without a token is treated as logged out.
	if saved.Token == "" {
		return
	}
	s.current = saved
}
