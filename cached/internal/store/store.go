package store

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Store is the entry storage behind one instance cache.
//
// Implementations are memory safe under concurrent use but hold no lock
// beyond a single operation.
type Store[K comparable, V any] interface {
	// Get returns the value stored for key. On a bounded store a hit makes
	// key the most recently used entry.
	Get(key K) (V, bool)
	// Put stores value under key, refreshing its recency. It reports whether
	// the least recently used entry was evicted to make room.
	Put(key K, value V) (evicted bool)
	Contains(key K) bool
	Len() int
	// Keys returns the stored keys, least recently used first on a bounded
	// store and in no particular order otherwise.
	Keys() []K
	Clear()
	// Capacity is zero for unbounded stores.
	Capacity() int
}

// New returns a bounded LRU store when capacity is positive and an
// unbounded store otherwise. onEvict may be nil; it is never called by an
// unbounded store.
func New[K comparable, V any](capacity int, onEvict func(K, V)) Store[K, V] {
	if capacity <= 0 {
		return &unbounded[K, V]{}
	}
	return newBounded(capacity, onEvict)
}

type bounded[K comparable, V any] struct {
	entries  *lru.Cache[K, V]
	capacity int
}

var _ Store[string, int] = (*bounded[string, int])(nil)

func newBounded[K comparable, V any](capacity int, onEvict func(K, V)) *bounded[K, V] {
	var (
		entries *lru.Cache[K, V]
		err     error
	)
	if onEvict != nil {
		entries, err = lru.NewWithEvict(capacity, onEvict)
	} else {
		entries, err = lru.New[K, V](capacity)
	}
	if err != nil {
		// capacity is positive here, lru only rejects non-positive sizes
		panic(err)
	}
	return &bounded[K, V]{entries: entries, capacity: capacity}
}

func (b *bounded[K, V]) Get(key K) (V, bool) { return b.entries.Get(key) }

func (b *bounded[K, V]) Put(key K, value V) bool { return b.entries.Add(key, value) }

func (b *bounded[K, V]) Contains(key K) bool { return b.entries.Contains(key) }

func (b *bounded[K, V]) Len() int { return b.entries.Len() }

func (b *bounded[K, V]) Keys() []K { return b.entries.Keys() }

func (b *bounded[K, V]) Clear() { b.entries.Purge() }

func (b *bounded[K, V]) Capacity() int { return b.capacity }

// unbounded never evicts and keeps no recency order.
type unbounded[K comparable, V any] struct {
	entries sync.Map
}

var _ Store[string, int] = (*unbounded[string, int])(nil)

func (u *unbounded[K, V]) Get(key K) (V, bool) {
	v, ok := u.entries.Load(key)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

func (u *unbounded[K, V]) Put(key K, value V) bool {
	u.entries.Store(key, value)
	return false
}

func (u *unbounded[K, V]) Contains(key K) bool {
	_, ok := u.entries.Load(key)
	return ok
}

func (u *unbounded[K, V]) Len() int {
	n := 0
	u.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (u *unbounded[K, V]) Keys() []K {
	var keys []K
	u.entries.Range(func(k, _ any) bool {
		keys = append(keys, k.(K))
		return true
	})
	return keys
}

func (u *unbounded[K, V]) Clear() { u.entries.Clear() }

func (u *unbounded[K, V]) Capacity() int { return 0 }
