package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used in tests and single-node
// development setups.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Context
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Context)}
}

func (s *MemoryStore) Load(_ context.Context, id string) (*Context, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := sc
	return &copied, nil
}

func (s *MemoryStore) Save(_ context.Context, sc *Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sc.ID] = *sc
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
