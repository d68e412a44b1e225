package cached

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"
)

// Key identifies one call of a cached method by its arguments. The receiver
// is never part of a Key.
//
// Keys compare with ==. Two calls whose arguments compare equal, position by
// position and keyword by keyword, produce equal keys.
type Key struct {
	chain any
}

// cell links one key part to the rest of the key. Nested cells stay
// comparable, so a Key of any length can be used as a map key.
type cell struct {
	head any
	tail any
}

// keyword keeps keyword parts apart from positional parts with equal values.
type keyword struct {
	name  string
	value any
}

// Keyer is implemented by arguments that supply their own cache key, such
// as values holding slices or maps. CacheKey must return a comparable value
// that is equal for two arguments exactly when calls with them may share a
// result.
type Keyer interface {
	CacheKey() any
}

// keyerKey stands in for an argument that implements Keyer. The dynamic
// type keeps it apart from other arguments with an equal CacheKey.
type keyerKey struct {
	typ reflect.Type
	key any
}

// Args carries the arguments of a MethodKw call.
type Args struct {
	Positional []any
	Keyword    map[string]any
}

// KeyOf derives the key of a call from its positional arguments, in order,
// and its keyword arguments, in any order.
//
// An argument that implements Keyer is keyed by its dynamic type and
// CacheKey. Any other argument must be comparable with ==, or KeyOf fails
// with ErrUnkeyableArguments. String methods are never used for keys.
func KeyOf(positional []any, keywords map[string]any) (Key, error) {
	var chain any
	names := slices.Sorted(maps.Keys(keywords))
	for i := len(names) - 1; i >= 0; i-- {
		part, err := keyPart(keywords[names[i]])
		if err != nil {
			return Key{}, errors.Wrapf(err, "keyword argument %q", names[i])
		}
		chain = cell{head: keyword{name: names[i], value: part}, tail: chain}
	}
	for i := len(positional) - 1; i >= 0; i-- {
		part, err := keyPart(positional[i])
		if err != nil {
			return Key{}, errors.Wrapf(err, "positional argument %d", i)
		}
		chain = cell{head: part, tail: chain}
	}
	return Key{chain: chain}, nil
}

func keyPart(arg any) (any, error) {
	if arg == nil {
		return nil, nil
	}
	if k, ok := arg.(Keyer); ok {
		key := k.CacheKey()
		if key == nil || !reflect.ValueOf(key).Comparable() {
			return nil, errors.Wrapf(ErrUnkeyableArguments, "%T.CacheKey returned non-comparable %T", arg, key)
		}
		return keyerKey{typ: reflect.TypeOf(arg), key: key}, nil
	}
	if reflect.ValueOf(arg).Comparable() {
		return arg, nil
	}
	return nil, errors.Wrapf(ErrUnkeyableArguments, "%T is not comparable and does not implement cached.Keyer", arg)
}

// Len returns the number of arguments the key was derived from.
func (k Key) Len() int {
	n := 0
	for c, ok := k.chain.(cell); ok; c, ok = c.tail.(cell) {
		n++
	}
	return n
}

// storable reports whether k equals itself. A key holding a NaN does not,
// so a result stored under it could never be found again.
func (k Key) storable() bool {
	other := k
	return other == k
}

// Fingerprint hashes the key parts. It identifies a key in logs without
// exposing argument values.
func (k Key) Fingerprint() uint64 {
	d := xxhash.New()
	for c, ok := k.chain.(cell); ok; c, ok = c.tail.(cell) {
		switch part := c.head.(type) {
		case keyword:
			fmt.Fprintf(d, "%s=%T:%v;", part.name, part.value, part.value)
		case keyerKey:
			fmt.Fprintf(d, "%v:%T:%v;", part.typ, part.key, part.key)
		default:
			fmt.Fprintf(d, "%T:%v;", part, part)
		}
	}
	return d.Sum64()
}
