package cached

import (
	"slices"
	"sync"
)

// Slots holds the instance caches of one owner, one slot per cached method
// name. Embed it in any type whose methods are cached:
//
//	type Buffer struct {
//		cached.Slots
//		data []float32
//	}
//
// The zero value is ready to use. Slots must not be copied after first use.
// Its methods carry a CacheSlot prefix so they do not clash with the
// embedding type's own methods.
type Slots struct {
	m sync.Map
}

// Owner is implemented by types that hold their own cache slots. Embedding
// Slots satisfies it.
type Owner interface {
	CacheSlots() *Slots
}

// Locator finds the slots of owners that do not implement Owner.
type Locator interface {
	SlotsFor(owner any) (*Slots, error)
}

func (s *Slots) CacheSlots() *Slots { return s }

// ResetCacheSlot drops the slot of the named method. The next access through
// that method attaches a fresh, empty cache.
func (s *Slots) ResetCacheSlot(name string) {
	s.m.Delete(name)
}

// CacheSlotNames returns the names of the attached slots in sorted order.
func (s *Slots) CacheSlotNames() []string {
	var names []string
	s.m.Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	slices.Sort(names)
	return names
}

// loadOrAttach returns the slot stored under name, attaching the result of
// fresh when there is none. created reports whether this call attached it.
func (s *Slots) loadOrAttach(name string, fresh func() any) (slot any, created bool) {
	if slot, ok := s.m.Load(name); ok {
		return slot, false
	}
	slot, loaded := s.m.LoadOrStore(name, fresh())
	return slot, !loaded
}
