package cached

import (
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// binder routes calls of one cached method through the caller's instance
// cache. It is shared by every owner and keeps no reference to any of them.
type binder[T, V any] struct {
	name     string
	id       uuid.UUID
	maxSize  int
	observer Observer
	locator  Locator
}

func newBinder[T, V any](name string, missingFunc bool, opts []Option) *binder[T, V] {
	if name == "" {
		panic(ErrEmptyName)
	}
	if missingFunc {
		panic(errors.Newf("cached: method %q has no underlying function", name))
	}
	cfg := applyOptions(name, opts)
	return &binder[T, V]{
		name:     name,
		id:       uuid.New(),
		maxSize:  cfg.maxSize,
		observer: cfg.observer,
		locator:  cfg.locator,
	}
}

// Name returns the slot name of the method.
func (b *binder[T, V]) Name() string { return b.name }

// MaxSize returns the per-instance bound, zero when unbounded.
func (b *binder[T, V]) MaxSize() int { return b.maxSize }

// Cache returns the instance cache of recv, attaching it on first access.
func (b *binder[T, V]) Cache(recv *T) (*InstanceCache[V], error) {
	slots, err := b.slotsOf(recv)
	if err != nil {
		return nil, err
	}
	raw, created := slots.loadOrAttach(b.name, func() any {
		return newInstanceCache[V](b.name, b.id, b.maxSize, b.observer)
	})
	c, ok := raw.(*InstanceCache[V])
	if !ok {
		return nil, errors.Wrapf(ErrAttachmentConflict, "slot %q of %T holds %T", b.name, recv, raw)
	}
	if c.method != b.id {
		return nil, errors.Wrapf(ErrAttachmentConflict, "slot %q of %T belongs to another method", b.name, recv)
	}
	if created {
		c.emit(EventAttach, Key{}, nil)
	}
	return c, nil
}

// Info returns the counters of recv's instance cache.
func (b *binder[T, V]) Info(recv *T) (Info, error) {
	c, err := b.Cache(recv)
	if err != nil {
		return Info{}, err
	}
	return c.Info(), nil
}

// Clear empties recv's instance cache.
func (b *binder[T, V]) Clear(recv *T) error {
	c, err := b.Cache(recv)
	if err != nil {
		return err
	}
	c.Clear()
	return nil
}

func (b *binder[T, V]) slotsOf(recv *T) (*Slots, error) {
	if recv == nil {
		return nil, errors.Wrapf(ErrAttachmentConflict, "nil %T receiver for method %q", recv, b.name)
	}
	if b.locator != nil {
		slots, err := b.locator.SlotsFor(recv)
		if err != nil {
			return nil, err
		}
		if slots == nil {
			return nil, errors.Wrapf(ErrAttachmentConflict, "locator has no slots for %T", recv)
		}
		return slots, nil
	}
	owner, ok := any(recv).(Owner)
	if !ok {
		return nil, errors.Wrapf(ErrAttachmentConflict, "%T holds no cache slots for method %q", recv, b.name)
	}
	slots := owner.CacheSlots()
	if slots == nil {
		return nil, errors.Wrapf(ErrAttachmentConflict, "%T returned nil cache slots for method %q", recv, b.name)
	}
	return slots, nil
}

// do runs one cached call on c. invoke is only run on a miss, with no lock
// held, so concurrent misses on the same key may all compute; the last put
// wins. Failed or panicking calls store nothing.
func (b *binder[T, V]) do(c *InstanceCache[V], positional []any, keywords map[string]any, invoke func() (V, error)) (V, error) {
	key, err := KeyOf(positional, keywords)
	if err != nil {
		var zero V
		return zero, errors.Wrapf(err, "method %q", b.name)
	}
	if v, ok := c.get(key); ok {
		return v, nil
	}

	returned := false
	if c.observer != nil {
		defer func() {
			if !returned {
				c.emit(EventFailure, key, nil)
			}
		}()
	}

	v, err := invoke()
	returned = true
	if err != nil {
		c.emit(EventFailure, key, err)
		return v, err
	}
	c.put(key, v)
	return v, nil
}
