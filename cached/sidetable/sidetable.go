// Package sidetable keeps cache slots for owner types that cannot embed
// cached.Slots, such as types from another package.
//
// Entries are keyed by weak pointers and dropped by a runtime cleanup once
// the owner is collected, so the table never extends an owner's lifetime.
// Cached values must not reference their owner, or the owner stays
// reachable through the table.
package sidetable

import (
	"runtime"
	"sync"
	"weak"

	"github.com/cockroachdb/errors"
	"github.com/on-the-ground/cached_method/cached"
)

// Table maps owners of type *T to their slots.
type Table[T any] struct {
	mu      sync.Mutex
	entries map[weak.Pointer[T]]*cached.Slots
}

var _ cached.Locator = (*Table[int])(nil)

func New[T any]() *Table[T] {
	return &Table[T]{entries: make(map[weak.Pointer[T]]*cached.Slots)}
}

// SlotsFor returns the slots of owner, creating them on first use. owner
// must be a non-nil *T.
func (t *Table[T]) SlotsFor(owner any) (*cached.Slots, error) {
	p, ok := owner.(*T)
	if !ok || p == nil {
		return nil, errors.Wrapf(cached.ErrAttachmentConflict, "side table of %T cannot hold %T", (*T)(nil), owner)
	}
	wp := weak.Make(p)

	t.mu.Lock()
	defer t.mu.Unlock()
	if slots, ok := t.entries[wp]; ok {
		return slots, nil
	}
	slots := &cached.Slots{}
	t.entries[wp] = slots
	runtime.AddCleanup(p, t.forget, wp)
	return slots, nil
}

// Len returns the number of owners with slots that have not been collected yet.
func (t *Table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

func (t *Table[T]) forget(wp weak.Pointer[T]) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, wp)
}
