package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thekada/kada-backend/pkg/logger"
)

// RedisStore backs the Store interface with Redis so cached stats survive
// process restarts and can be shared across instances. Aging still happens
// at read time against the caller's TTL: the stored envelope carries its
// own timestamp, mirroring MemoryStore semantics exactly.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		now:    time.Now,
	}
}

func (s *RedisStore) WithClock(now func() time.Time) *RedisStore {
	s.now = now
	return s
}

func (s *RedisStore) Get(ctx context.Context, key string, ttl time.Duration, dest interface{}) bool {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		// A cache backend failure is a miss, never a request failure.
		logger.Warn("Redis cache read failed, treating as miss", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}

	var entry envelope
	if err := json.Unmarshal(raw, &entry); err != nil {
		logger.Warn("Discarding undecodable cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		s.Invalidate(ctx, key)
		return false
	}

	if s.now().Sub(entry.StoredAt) >= ttl {
		s.Invalidate(ctx, key)
		return false
	}

	if err := json.Unmarshal(entry.Payload, dest); err != nil {
		logger.Warn("Discarding undecodable cache payload", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		s.Invalidate(ctx, key)
		return false
	}
	return true
}

func (s *RedisStore) Set(ctx context.Context, key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		logger.Warn("Failed to marshal value for cache", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}

	entry, err := json.Marshal(envelope{Payload: payload, StoredAt: s.now()})
	if err != nil {
		logger.Warn("Failed to marshal cache envelope", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}

	if err := s.client.Set(ctx, key, entry, 0).Err(); err != nil {
		logger.Warn("Redis cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func (s *RedisStore) Invalidate(ctx context.Context, key string) {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		logger.Warn("Redis cache invalidation failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
