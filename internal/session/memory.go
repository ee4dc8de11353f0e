package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

// MemoryStore is the single-process session store used when Redis is not
// configured. Expired entries are dropped lazily on read.
type MemoryStore struct {
	ttl      time.Duration
	now      func() time.Time
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Get(_ context.Context, token string) (State, bool, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return State{}, false, nil
	}
	if s.ttl > 0 && s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return State{}, false, nil
	}
	return entry.state, true, nil
}

func (s *MemoryStore) Set(_ context.Context, token string, state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = memoryEntry{state: state, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
