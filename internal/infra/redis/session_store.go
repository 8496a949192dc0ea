package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"puzzle-service/internal/engine"
)

// SessionStore keeps running loops in process and marks each one live in
// Redis under puzzle:session:<id>, holding the puzzle kind, with a TTL.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*engine.Loop
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*engine.Loop),
	}
}

func (s *SessionStore) Put(loop *engine.Loop) {
	s.mu.Lock()
	s.sessions[loop.ID()] = loop
	s.mu.Unlock()
	// best-effort liveness marker
	if err := s.client.Set(context.Background(), s.key(loop.ID()), string(loop.Kind()), s.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("session", loop.ID()).Msg("mark session live")
	}
}

func (s *SessionStore) Get(id string) (*engine.Loop, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loop, ok := s.sessions[id]
	return loop, ok
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return
	}
	if err := s.client.Del(context.Background(), s.key(id)).Err(); err != nil {
		log.Warn().Err(err).Str("session", id).Msg("clear session marker")
	}
}

func (s *SessionStore) key(id string) string {
	return "puzzle:session:" + id
}
