package session

import (
	"sync"

	"python-tutor-bot/internal/domain/user"
)

// Store is a concurrency-safe keyed session table. Sessions are created
// lazily on first access and are never shared process-wide without the
// store's lock. Callers that mutate a session must do so from within the
// per-user execution queue; the store only guards the table itself.
type Store struct {
	mu       sync.RWMutex
	sessions map[user.ID]*Session
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		sessions: make(map[user.ID]*Session),
	}
}

// Get returns the session for a user, creating it in menu mode if absent
func (s *Store) Get(userID user.ID) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[userID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		return sess
	}
	sess = NewSession()
	s.sessions[userID] = sess
	return sess
}

// Reset replaces a user's session with a fresh menu-mode one
func (s *Store) Reset(userID user.ID) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := NewSession()
	s.sessions[userID] = sess
	return sess
}

// Len returns the number of active sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
