package admin

import (
	"context"
	"sync"
)

// MemorySessionStore keeps session records in process memory. Sessions do
// not survive a restart, which is fine for a single shared admin.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

var _ SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]Session)}
}

func (s *MemorySessionStore) Put(_ context.Context, token string, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = session
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, token string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
