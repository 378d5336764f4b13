package codestore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	code      string
	expiresAt time.Time
}

// InMemoryCodeStore implements CodeStore using in-memory storage.
// Expired entries are dropped lazily on read; the store never returns them.
type InMemoryCodeStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]entry
	now     func() time.Time
}

// NewInMemoryCodeStore creates a new in-memory code store.
func NewInMemoryCodeStore() *InMemoryCodeStore {
	return &InMemoryCodeStore{
		entries: make(map[uuid.UUID]entry),
		now:     time.Now,
	}
}

// WithNowFunc replaces the store's clock. Tests use this to control expiry
// deterministically instead of sleeping through real TTLs.
func (s *InMemoryCodeStore) WithNowFunc(now func() time.Time) *InMemoryCodeStore {
	s.now = now
	return s
}

func (s *InMemoryCodeStore) Set(ctx context.Context, principalID uuid.UUID, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[principalID] = entry{
		code:      code,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *InMemoryCodeStore) Get(ctx context.Context, principalID uuid.UUID) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[principalID]
	if !ok {
		return "", false, nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, principalID)
		return "", false, nil
	}
	return e.code, true, nil
}

func (s *InMemoryCodeStore) Delete(ctx context.Context, principalID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, principalID)
	return nil
}
