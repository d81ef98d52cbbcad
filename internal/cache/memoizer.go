// Package cache provides the result memoizer: a bounded, in-process TTL
// cache keyed by canonical request hashes. It is the only shared mutable
// state in the engine.
package cache

import (
	"container/list"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/einfield/engine/internal/domain"
)

// entry pairs a cached result with its expiry timestamp.
type entry struct {
	key       string
	result    *domain.CalculationResult
	expiresAt time.Time
}

// Memoizer caches calculation results with per-entry TTL and a capacity
// bound. Entries are evicted least-recently-inserted first under capacity
// pressure, lazily on expired reads, and actively by a background janitor.
//
// Two structures back it: a map for O(1) key lookup and a doubly linked
// list maintaining insertion order (front = newest insert). Reads do not
// reorder entries.
//
// GetOrCompute guarantees at most one computation per key under concurrent
// access: identical in-flight keys collapse onto a single computation via
// singleflight, and unrelated keys never contend beyond the short map
// critical section.
type Memoizer struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List

	capacity int
	ttl      time.Duration

	group singleflight.Group
	stats Stats

	now       func() time.Time
	stop      chan struct{}
	closeOnce sync.Once
}

// Stats holds runtime cache counters.
type Stats struct {
	Hits        uint64 `json:"hits"`
	Misses      uint64 `json:"misses"`
	Evictions   uint64 `json:"evictions"`
	Expirations uint64 `json:"expirations"`
	Entries     int    `json:"entries"`
}

// New creates a memoizer bounded to capacity entries, each expiring ttl
// after insertion. A positive cleanupInterval starts a janitor goroutine
// that actively removes expired entries; zero or negative disables it and
// the cache relies on lazy expiration alone.
func New(capacity int, ttl, cleanupInterval time.Duration) *Memoizer {
	m := &Memoizer{
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go m.janitor(cleanupInterval)
	}
	return m
}

// GetOrCompute returns the cached result for key, or runs compute exactly
// once and caches its result. Concurrent callers for the same in-flight key
// await the first computation instead of duplicating work. Compute errors
// are returned to every waiter and never cached.
func (m *Memoizer) GetOrCompute(key string, compute func() (*domain.CalculationResult, error)) (*domain.CalculationResult, error) {
	if res, ok := m.lookup(key); ok {
		return res, nil
	}

	v, err, _ := m.group.Do(key, func() (interface{}, error) {
		// A previous flight may have inserted the entry between the miss
		// and this callback. The re-check stays out of the hit/miss
		// counters: it is the same logical request that already missed.
		if res, ok := m.peek(key); ok {
			return res, nil
		}
		res, err := compute()
		if err != nil {
			return nil, err
		}
		m.insert(key, res)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.CalculationResult), nil
}

// Invalidate removes the entry for key, forcing the next request to
// recompute.
func (m *Memoizer) Invalidate(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if elem, ok := m.entries[key]; ok {
		m.removeElement(elem)
	}
}

// Stats returns a snapshot of the cache counters.
func (m *Memoizer) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.stats
	s.Entries = m.order.Len()
	return s
}

// Close stops the janitor goroutine. Safe to call more than once.
func (m *Memoizer) Close() {
	m.closeOnce.Do(func() { close(m.stop) })
}

// lookup returns a clone of the cached result, expiring the entry lazily if
// its TTL has passed. Callers own the clone exclusively.
func (m *Memoizer) lookup(key string) (*domain.CalculationResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.entries[key]
	if !ok {
		m.stats.Misses++
		return nil, false
	}
	e := elem.Value.(*entry)
	if m.now().After(e.expiresAt) {
		m.removeElement(elem)
		m.stats.Expirations++
		m.stats.Misses++
		return nil, false
	}
	m.stats.Hits++
	return e.result.Clone(), true
}

// peek is lookup without the hit/miss accounting. Lazy expiry still
// applies and still counts.
func (m *Memoizer) peek(key string) (*domain.CalculationResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	e := elem.Value.(*entry)
	if m.now().After(e.expiresAt) {
		m.removeElement(elem)
		m.stats.Expirations++
		return nil, false
	}
	return e.result.Clone(), true
}

func (m *Memoizer) insert(key string, res *domain.CalculationResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiresAt := m.now().Add(m.ttl)
	if elem, ok := m.entries[key]; ok {
		// Re-insertion refreshes both the value and the insertion order.
		e := elem.Value.(*entry)
		e.result = res.Clone()
		e.expiresAt = expiresAt
		m.order.MoveToFront(elem)
		return
	}

	if m.capacity > 0 {
		for m.order.Len() >= m.capacity {
			m.evictOldest()
		}
	}
	elem := m.order.PushFront(&entry{key: key, result: res.Clone(), expiresAt: expiresAt})
	m.entries[key] = elem
}

// evictOldest removes the least-recently-inserted entry. Caller holds mu.
func (m *Memoizer) evictOldest() {
	elem := m.order.Back()
	if elem != nil {
		m.removeElement(elem)
		m.stats.Evictions++
	}
}

// removeElement unlinks an entry. Caller holds mu.
func (m *Memoizer) removeElement(elem *list.Element) {
	m.order.Remove(elem)
	delete(m.entries, elem.Value.(*entry).key)
}

func (m *Memoizer) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.deleteExpired()
		case <-m.stop:
			return
		}
	}
}

func (m *Memoizer) deleteExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for elem := m.order.Back(); elem != nil; {
		prev := elem.Prev()
		if e := elem.Value.(*entry); now.After(e.expiresAt) {
			m.removeElement(elem)
			m.stats.Expirations++
		}
		elem = prev
	}
}
