package cache

import (
	"context"
	"time"
)

// Store is a time-boxed key/value cache. Staleness is evaluated lazily at
// read time against the TTL the reader passes in; there is no background
// sweeping. Entries move absent → fresh (Set) → stale (age ≥ ttl) → absent
// (Invalidate or eviction on a stale read).
//
// A miss is never an error: callers fall through to recomputation. Reads
// and writes on the same key may race across requests (last Set wins),
// which is acceptable because cached values are deterministic functions of
// the underlying data — a stale overwrite costs one recomputation, not a
// wrong result.
type Store interface {
	// Get unmarshals the cached value into dest and reports whether the
	// entry was present and younger than ttl.
	Get(ctx context.Context, key string, ttl time.Duration, dest interface{}) bool

	// Set stores value with the current timestamp, overwriting any prior
	// entry unconditionally.
	Set(ctx context.Context, key string, value interface{})

	// Invalidate removes the entry if present; absent keys are a no-op.
	Invalidate(ctx context.Context, key string)
}

// envelope wraps a cached payload with the moment it was computed, so both
// implementations age entries the same way.
type envelope struct {
	Payload  []byte    `json:"payload"`
	StoredAt time.Time `json:"stored_at"`
}
