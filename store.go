package authfront

import (
	"context"
	"sync"
)

// Store is the process-wide session container. Mutations are infallible state
// transitions; each one that touches the persisted subset synchronously
// writes a whole snapshot to Storage. Persistence is best-effort: a storage
// failure is logged and the in-memory transition stands.
type Store struct {
	mu      sync.RWMutex
	state   SessionState
	storage Storage
	logger  Logger
}

var _ SessionReader = (*Store)(nil)

type StoreOption func(*Store)

// WithStoreLogger overrides the logger used for persistence failures.
func WithStoreLogger(logger Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a Store hydrated from storage. Corrupt or absent stored
// data yields an empty session, never an error.
func NewStore(storage Storage, opts ...StoreOption) *Store {
	s := &Store{
		storage: storage,
		logger:  defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.hydrate()

	return s
}

func (s *Store) hydrate() {
	if s.storage == nil {
		return
	}

	data, err := s.storage.Load(context.Background())
	if err != nil {
		if err != ErrNoStoredSession {
			s.logger.Warn("session hydrate failed: %v", err)
		}
		return
	}

	snap, ok := DecodeSnapshot(data)
	if !ok {
		s.logger.Warn("discarding unreadable persisted session")
		return
	}

	s.state = SessionState{
		User:            snap.User,
		AccessToken:     snap.AccessToken,
		IsAuthenticated: snap.Authenticated(),
	}
}

// SetUser replaces the user record. The credential is preserved, and the
// authenticated flag is rederived from both, so a profile refresh can never
// mint an authenticated session without a token.
func (s *Store) SetUser(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.User = user
	s.state.IsAuthenticated = s.state.User != nil && s.state.AccessToken != ""
	s.persistLocked()
}

// SetToken replaces the bearer credential only.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.AccessToken = token
	s.state.IsAuthenticated = s.state.User != nil && s.state.AccessToken != ""
	s.persistLocked()
}

// Login atomically installs identity plus credential and clears any stale
// error state.
func (s *Store) Login(user *User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.User = user
	s.state.AccessToken = token
	s.state.IsAuthenticated = user != nil && token != ""
	s.state.Error = ""
	s.persistLocked()
}

// Logout clears the session to its zero state, both in memory and in storage.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = SessionState{}

	if s.storage == nil {
		return
	}
	if err := s.storage.Clear(context.Background()); err != nil {
		s.logger.Warn("session clear failed: %v", err)
	}
}

// SetLoading toggles the transient busy flag. Not persisted.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = loading
}

// SetError records a transient, user-visible error message. Not persisted.
func (s *Store) SetError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = message
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = ""
}

// State returns a copy of the full in-memory session.
func (s *Store) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Snapshot returns the persisted subset of the current state.
func (s *Store) Snapshot() SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionSnapshot{
		User:            s.state.User,
		AccessToken:     s.state.AccessToken,
		IsAuthenticated: s.state.IsAuthenticated,
	}
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User
}

func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.AccessToken
}

func (s *Store) persistLocked() {
	if s.storage == nil {
		return
	}

	snap := SessionSnapshot{
		User:            s.state.User,
		AccessToken:     s.state.AccessToken,
		IsAuthenticated: s.state.IsAuthenticated,
	}

	data, err := EncodeSnapshot(snap)
	if err != nil {
		s.logger.Warn("session encode failed: %v", err)
		return
	}

	if err := s.storage.Save(context.Background(), data); err != nil {
		s.logger.Warn("session persist failed: %v", err)
	}
}
