package cache

import (
	"context"
	"time"
)

// Cache defines a key-value cache API with a TTL per entry.
// Implementations are safe for concurrent use.
type Cache[V any] interface {
	// Get returns the value and whether it was present and not expired.
	// Expired entries are removed as a side effect.
	Get(key string) (V, bool)

	// Set stores the value with a TTL. If ttl < 0, the entry does not
	// expire; ttl == 0 is valid only at the instant it is stored.
	Set(key string, value V, ttl time.Duration)

	// Has reports whether a key is present and not expired.
	Has(key string) bool

	// Delete removes a key and reports whether anything was removed.
	Delete(key string) bool

	// Len returns the number of stored entries, expired or not.
	Len() int

	// Clear removes all entries.
	Clear()

	// Stats classifies every entry by expiry without modifying the store.
	Stats() Stats

	// Sweep removes expired entries and returns how many were removed.
	Sweep() int

	// GetOrSet returns the cached value for key, or computes, stores and
	// returns it. A failed computation is returned as is and nothing is stored.
	GetOrSet(ctx context.Context, key string, ttl time.Duration, compute func(context.Context) (V, error)) (V, error)
}

// Stats is a point-in-time snapshot of a cache.
type Stats struct {
	TotalItems   int    `json:"totalItems"`
	ValidItems   int    `json:"validItems"`
	ExpiredItems int    `json:"expiredItems"`
	Hits         uint64 `json:"hits"`
	Misses       uint64 `json:"misses"`
	Evictions    uint64 `json:"evictions"`
}
