package cooldown

import (
	"context"
	"sync"
	"time"
)

type MemoryStore struct {
	mu      sync.RWMutex
	anchors map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{anchors: make(map[string]time.Time)}
}

func (s *MemoryStore) Get(_ context.Context, memberID string) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	at, ok := s.anchors[memberID]
	if !ok {
		return time.Time{}, ErrAnchorNotFound
	}
	return at, nil
}

func (s *MemoryStore) Set(_ context.Context, memberID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.anchors[memberID] = at.UTC()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.anchors, memberID)
	return nil
}
