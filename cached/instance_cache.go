package cached

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/on-the-ground/cached_method/cached/internal/store"
)

// InstanceCache is the cache of one method on one owner. It lives in the
// owner's Slots and is reclaimed together with the owner.
type InstanceCache[V any] struct {
	id       uuid.UUID
	method   uuid.UUID
	name     string
	observer Observer
	entries  store.Store[Key, V]
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// Info is a snapshot of an instance cache's counters.
type Info struct {
	Hits   uint64
	Misses uint64
	// Evictions counts entries dropped to make room for a new one. Clear is
	// not counted.
	Evictions uint64
	MaxSize   int // zero when unbounded
	CurrSize  int
}

func newInstanceCache[V any](name string, method uuid.UUID, maxSize int, observer Observer) *InstanceCache[V] {
	c := &InstanceCache[V]{
		id:       uuid.New(),
		method:   method,
		name:     name,
		observer: observer,
	}
	var onEvict func(Key, V)
	if observer != nil {
		onEvict = func(k Key, _ V) { c.emit(EventEvict, k, nil) }
	}
	c.entries = store.New(maxSize, onEvict)
	return c
}

// ID identifies this cache in events.
func (c *InstanceCache[V]) ID() uuid.UUID { return c.id }

func (c *InstanceCache[V]) get(key Key) (V, bool) {
	v, ok := c.entries.Get(key)
	if ok {
		c.hits.Add(1)
		c.emit(EventHit, key, nil)
	} else {
		c.misses.Add(1)
		c.emit(EventMiss, key, nil)
	}
	return v, ok
}

// put stores value under key. Keys that never equal themselves are skipped.
func (c *InstanceCache[V]) put(key Key, value V) {
	if !key.storable() {
		return
	}
	if c.entries.Put(key, value) {
		c.evictions.Add(1)
	}
}

// Contains reports whether a result is cached for key without touching its
// recency.
func (c *InstanceCache[V]) Contains(key Key) bool { return c.entries.Contains(key) }

func (c *InstanceCache[V]) Len() int { return c.entries.Len() }

// Keys returns the cached keys, least recently used first when bounded.
func (c *InstanceCache[V]) Keys() []Key { return c.entries.Keys() }

// Clear drops every entry. Counters are kept.
func (c *InstanceCache[V]) Clear() { c.entries.Clear() }

func (c *InstanceCache[V]) Info() Info {
	return Info{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		MaxSize:   c.entries.Capacity(),
		CurrSize:  c.entries.Len(),
	}
}

func (c *InstanceCache[V]) emit(kind EventKind, key Key, err error) {
	if c.observer == nil {
		return
	}
	c.observer(Event{
		Kind:     kind,
		Method:   c.name,
		MethodID: c.method,
		CacheID:  c.id,
		Key:      key,
		Err:      err,
	})
}
