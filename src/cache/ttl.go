// Package cache provides the bounded time-to-live cache that keeps recently
// proxied media bytes in memory.
//
// Entries expire lazily: nothing runs in the background, staleness is
// checked on access. When the cache is full the oldest inserted entry is
// evicted first. Reads never refresh an entry, so this is FIFO rather
// than LRU.
package cache

import (
	"container/list"
	"sync"
	"time"
)

type entry[V any] struct {
	key        string
	value      V
	insertedAt time.Time
}

// TTL is a size-capped, time-bounded map. All methods are safe for
// concurrent use; a single mutex serializes them.
type TTL[V any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	now     func() time.Time

	items map[string]*list.Element
	order *list.List // front = oldest insertion

	hits      int64
	misses    int64
	evictions int64
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Size      int           `json:"size"`
	MaxSize   int           `json:"max_size"`
	TTL       time.Duration `json:"-"`
	TTLSecond float64       `json:"ttl_seconds"`
	Hits      int64         `json:"hits"`
	Misses    int64         `json:"misses"`
	Evictions int64         `json:"evictions"`
}

// New returns a cache holding at most maxSize entries for ttl each.
func New[V any](maxSize int, ttl time.Duration) *TTL[V] {
	return NewWithClock[V](maxSize, ttl, time.Now)
}

// NewWithClock is New with an injected time source.
func NewWithClock[V any](maxSize int, ttl time.Duration, now func() time.Time) *TTL[V] {
	if maxSize <= 0 {
		maxSize = 1
	}
	if now == nil {
		now = time.Now
	}
	return &TTL[V]{
		maxSize: maxSize,
		ttl:     ttl,
		now:     now,
		items:   make(map[string]*list.Element, maxSize),
		order:   list.New(),
	}
}

// Get returns the value stored under key if it has not outlived the ttl.
// An expired entry is removed.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}
	e := el.Value.(*entry[V])
	if c.expired(e, c.now()) {
		c.remove(el)
		c.misses++
		return zero, false
	}
	c.hits++
	return e.value, true
}

// Contains reports whether Get would find key.
func (c *TTL[V]) Contains(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Set stores value under key. Expired entries are swept first, then the
// oldest insertions are evicted until the new key fits.
func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweep(now)

	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry[V])
		e.value = value
		e.insertedAt = now
		c.order.MoveToBack(el)
		return
	}

	for c.order.Len() >= c.maxSize {
		c.remove(c.order.Front())
	}
	c.items[key] = c.order.PushBack(&entry[V]{key: key, value: value, insertedAt: now})
}

// Clear drops every entry.
func (c *TTL[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictions += int64(c.order.Len())
	c.items = make(map[string]*list.Element, c.maxSize)
	c.order.Init()
}

// Len returns the number of live entries.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweep(c.now())
	return c.order.Len()
}

// Stats returns counters and the live size.
func (c *TTL[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweep(c.now())
	return Stats{
		Size:      c.order.Len(),
		MaxSize:   c.maxSize,
		TTL:       c.ttl,
		TTLSecond: c.ttl.Seconds(),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

func (c *TTL[V]) expired(e *entry[V], now time.Time) bool {
	return now.Sub(e.insertedAt) > c.ttl
}

// sweep removes expired entries. Must be called with mu held.
func (c *TTL[V]) sweep(now time.Time) {
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if c.expired(el.Value.(*entry[V]), now) {
			c.remove(el)
		}
		el = next
	}
}

func (c *TTL[V]) remove(el *list.Element) {
	e := c.order.Remove(el).(*entry[V])
	delete(c.items, e.key)
	c.evictions++
}
