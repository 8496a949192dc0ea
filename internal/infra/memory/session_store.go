package memory

import (
	"sync"

	"puzzle-service/internal/engine"
)

// SessionStore keeps running puzzle loops in process.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*engine.Loop
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*engine.Loop),
	}
}

func (s *SessionStore) Put(loop *engine.Loop) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[loop.ID()] = loop
}

func (s *SessionStore) Get(id string) (*engine.Loop, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loop, ok := s.sessions[id]
	return loop, ok
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
