// Package cached memoizes methods per instance.
//
// A cached method is declared once, usually as a package-level variable, and
// every owner it is called on gets its own bounded cache:
//
//	type Buffer struct {
//		cached.Slots
//		data []float32
//	}
//
//	var bufferSum = cached.NewMethod1("Sum", (*Buffer).sum, cached.WithMaxSize(16))
//
//	func (b *Buffer) Sum(scale float32) (float32, error) { return bufferSum.Call(b, scale) }
//
// The cache lives in the owner's Slots, not in a table held by the method, so
// an owner that becomes unreachable takes its cache with it. This matters
// for owners that pin scarce resources (device memory, file handles): a
// process-wide memo keyed by receiver would keep every one of them alive.
//
// Keys are built from the call arguments only. The receiver is never hashed
// or compared, so owners need not be comparable, and a type's own hash
// method can be cached with Method0. Arguments must be comparable with ==;
// types holding slices or maps implement Keyer to supply a comparable key.
// Text from String methods is never trusted as a key. A result computed for
// a key that is not equal to itself, such as one holding a NaN, is returned
// but not stored.
//
// With WithMaxSize(n) each instance cache keeps the n most recently used
// results. Without it caches grow for the lifetime of their owner; choose a
// bound for methods with an open argument domain.
//
// Failed calls are never cached: an error or a panic from the underlying
// function reaches the caller unchanged and leaves no entry behind.
//
// No lock is held while the underlying function runs. Concurrent misses on
// the same key may compute more than once and the last result stored wins.
// The cached function must be free of side effects that matter for
// correctness. Callers that need once-only computation must synchronise
// around the method themselves.
//
// Do not cache methods whose results depend on state that changes: nothing
// is invalidated except by eviction, Clear, or ResetCacheSlot.
package cached
