package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/thekada/kada-backend/pkg/logger"
)

// MemoryStore is the process-local Store implementation. Values are held as
// marshaled JSON so it behaves identically to the Redis-backed store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]envelope
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]envelope),
		now:     time.Now,
	}
}

// WithClock overrides the time source. Tests use this to simulate TTL
// expiry without sleeping.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string, ttl time.Duration, dest interface{}) bool {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	if s.now().Sub(entry.StoredAt) >= ttl {
		// Stale entries are evicted on read.
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return false
	}

	if err := json.Unmarshal(entry.Payload, dest); err != nil {
		logger.Warn("Discarding undecodable cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		s.Invalidate(context.Background(), key)
		return false
	}
	return true
}

func (s *MemoryStore) Set(_ context.Context, key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		logger.Warn("Failed to marshal value for cache", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}

	s.mu.Lock()
	s.entries[key] = envelope{Payload: payload, StoredAt: s.now()}
	s.mu.Unlock()
}

func (s *MemoryStore) Invalidate(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}
