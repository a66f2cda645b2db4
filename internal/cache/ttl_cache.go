package cache

import (
	"container/list"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"trending-api/internal/metrics"
)

// ErrTypeMismatch is returned by Remember when a key holds a value of another type.
var ErrTypeMismatch = errors.New("cache: cached value has unexpected type")

// NoExpiration stores an entry that never expires. Any negative TTL does the same.
const NoExpiration time.Duration = -1

// entry stores a cached value with the time it was written and its lifetime.
type entry[V any] struct {
	key      string
	value    V
	storedAt time.Time
	ttl      time.Duration // < 0 means no expiration
	elem     *list.Element
}

// expired reports whether now is past storedAt+ttl. An entry exactly at its
// TTL is still valid, so a zero TTL holds only at the instant it was stored.
func (e *entry[V]) expired(now time.Time) bool {
	return e.ttl >= 0 && now.Sub(e.storedAt) > e.ttl
}

// TTLCache is a map-backed cache with per-entry TTL, lazy expiry on read,
// an explicit Sweep, optional LRU size bound and single-flight GetOrSet.
type TTLCache[V any] struct {
	mu    sync.Mutex
	items map[string]*entry[V]
	// order holds keys by recency; front is most recently used.
	order *list.List

	maxEntries int
	name       string
	now        func() time.Time

	flight singleflight.Group
	// pending maps keys with a running GetOrSet computation to the token of
	// that flight. Delete and Clear drop the token so the flight cannot store.
	pending map[string]uint64
	seq     uint64

	hits      uint64
	misses    uint64
	evictions uint64
}

// Options controls construction of a TTLCache.
type Options struct {
	// Name labels the cache in metrics and logs. Defaults to "default".
	Name string

	// MaxEntries bounds the number of stored entries. When exceeded, the
	// least recently used entry is evicted. Zero means unbounded.
	MaxEntries int

	// Now is the clock used for expiry. Defaults to time.Now.
	Now func() time.Time
}

// New constructs a TTLCache with the given options.
func New[V any](opts Options) *TTLCache[V] {
	if opts.Name == "" {
		opts.Name = "default"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.MaxEntries < 0 {
		opts.MaxEntries = 0
	}
	return &TTLCache[V]{
		items:      make(map[string]*entry[V]),
		pending:    make(map[string]uint64),
		order:      list.New(),
		maxEntries: opts.MaxEntries,
		name:       opts.Name,
		now:        opts.Now,
	}
}

// Name returns the cache's metrics label.
func (c *TTLCache[V]) Name() string {
	return c.name
}

// Get implements Cache.Get.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getLocked(key, true)
}

func (c *TTLCache[V]) getLocked(key string, record bool) (V, bool) {
	var zero V
	e, ok := c.items[key]
	if !ok {
		if record {
			c.recordMiss()
		}
		return zero, false
	}
	if e.expired(c.now()) {
		c.removeLocked(e)
		metrics.CacheExpirations.WithLabelValues(c.name).Inc()
		if record {
			c.recordMiss()
		}
		return zero, false
	}
	c.order.MoveToFront(e.elem)
	if record {
		c.hits++
		metrics.CacheHits.WithLabelValues(c.name).Inc()
	}
	return e.value, true
}

func (c *TTLCache[V]) recordMiss() {
	c.misses++
	metrics.CacheMisses.WithLabelValues(c.name).Inc()
}

// Set implements Cache.Set.
func (c *TTLCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value, ttl)
}

func (c *TTLCache[V]) setLocked(key string, value V, ttl time.Duration) {
	nowTs := c.now()
	if e, ok := c.items[key]; ok {
		e.value = value
		e.storedAt = nowTs
		e.ttl = ttl
		c.order.MoveToFront(e.elem)
		return
	}

	e := &entry[V]{key: key, value: value, storedAt: nowTs, ttl: ttl}
	e.elem = c.order.PushFront(e)
	c.items[key] = e

	if c.maxEntries > 0 && len(c.items) > c.maxEntries {
		if oldest := c.order.Back(); oldest != nil {
			c.removeLocked(oldest.Value.(*entry[V]))
			c.evictions++
			metrics.CacheEvictions.WithLabelValues(c.name).Inc()
		}
	}
	metrics.CacheEntries.WithLabelValues(c.name).Set(float64(len(c.items)))
}

// Has implements Cache.Has.
func (c *TTLCache[V]) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete implements Cache.Delete.
func (c *TTLCache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detachLocked(key)
	e, ok := c.items[key]
	if !ok {
		return false
	}
	c.removeLocked(e)
	return true
}

// Len implements Cache.Len.
func (c *TTLCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear implements Cache.Clear.
func (c *TTLCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.pending {
		c.detachLocked(key)
	}
	c.items = make(map[string]*entry[V])
	c.order.Init()
	metrics.CacheEntries.WithLabelValues(c.name).Set(0)
}

// Stats implements Cache.Stats.
func (c *TTLCache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	nowTs := c.now()
	s := Stats{
		TotalItems: len(c.items),
		Hits:       c.hits,
		Misses:     c.misses,
		Evictions:  c.evictions,
	}
	for _, e := range c.items {
		if e.expired(nowTs) {
			s.ExpiredItems++
		} else {
			s.ValidItems++
		}
	}
	return s
}

// Sweep implements Cache.Sweep.
func (c *TTLCache[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return 0
	}
	nowTs := c.now()
	removed := 0
	for _, e := range c.items {
		if e.expired(nowTs) {
			c.removeLocked(e)
			removed++
		}
	}
	if removed > 0 {
		metrics.CacheExpirations.WithLabelValues(c.name).Add(float64(removed))
	}
	return removed
}

// GetOrSet implements Cache.GetOrSet. Concurrent misses on the same key
// share a single call to compute; the callers all receive its result.
// Callers arriving after a Delete or Clear of key start a new computation,
// and the result of a computation started before it is not stored.
//
// compute runs detached from the cancellation of the caller that started
// it, since other callers may be waiting on the same result.
func (c *TTLCache[V]) GetOrSet(ctx context.Context, key string, ttl time.Duration, compute func(context.Context) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	res, err, shared := c.flight.Do(key, func() (any, error) {
		c.mu.Lock()
		// A flight that finished between our miss and Do may have stored it.
		if v, ok := c.getLocked(key, false); ok {
			c.mu.Unlock()
			return v, nil
		}
		c.seq++
		token := c.seq
		c.pending[key] = token
		c.mu.Unlock()

		v, err := compute(context.WithoutCancel(ctx))

		c.mu.Lock()
		defer c.mu.Unlock()
		current, ok := c.pending[key]
		if ok && current == token {
			delete(c.pending, key)
		}
		if err != nil {
			return nil, err
		}
		if ok && current == token {
			c.setLocked(key, v, ttl)
		}
		return v, nil
	})
	if shared {
		metrics.CacheComputeShared.WithLabelValues(c.name).Inc()
	}
	if err != nil {
		var zero V
		return zero, err
	}
	v, _ := res.(V)
	return v, nil
}

// detachLocked forgets the in-flight computation for key so later callers
// start a fresh one. mu must be held.
func (c *TTLCache[V]) detachLocked(key string) {
	if _, ok := c.pending[key]; !ok {
		return
	}
	delete(c.pending, key)
	c.flight.Forget(key)
}

// removeLocked drops e from the map and the recency list. mu must be held.
func (c *TTLCache[V]) removeLocked(e *entry[V]) {
	delete(c.items, e.key)
	c.order.Remove(e.elem)
	metrics.CacheEntries.WithLabelValues(c.name).Set(float64(len(c.items)))
}

// Remember is GetOrSet for caches that hold values of several types. It
// returns ErrTypeMismatch if key already holds a value that is not a T.
func Remember[T any](ctx context.Context, c *TTLCache[any], key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.GetOrSet(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return compute(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T", ErrTypeMismatch, key, v)
	}
	return typed, nil
}

// Ensure TTLCache implements Cache at compile time.
var _ Cache[any] = (*TTLCache[any])(nil)
