package cached_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/on-the-ground/cached_method/cached"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct{ X, Y int }

type samples struct {
	values []float64
}

func (s samples) CacheKey() any {
	b := make([]byte, 0, 8*len(s.values))
	for _, v := range s.values {
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(v))
	}
	return string(b)
}

// lossy prints the same text for every value.
type lossy struct {
	xs []int
}

func (lossy) String() string { return "lossy" }

type badKeyer struct{}

func (badKeyer) CacheKey() any { return []int{1} }

type opaque struct {
	raw map[string]int
}

func mustKey(t *testing.T, positional []any, keywords map[string]any) cached.Key {
	t.Helper()
	k, err := cached.KeyOf(positional, keywords)
	require.NoError(t, err)
	return k
}

func TestKeyOf_EqualArgumentsGiveEqualKeys(t *testing.T) {
	a := mustKey(t, []any{1, "x", point{1, 2}}, nil)
	b := mustKey(t, []any{1, "x", point{1, 2}}, nil)
	assert.Equal(t, a, b)
	assert.True(t, a == b)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestKeyOf_PositionalOrderMatters(t *testing.T) {
	assert.NotEqual(t, mustKey(t, []any{1, 2}, nil), mustKey(t, []any{2, 1}, nil))
}

func TestKeyOf_DynamicTypeMatters(t *testing.T) {
	assert.NotEqual(t, mustKey(t, []any{int(3)}, nil), mustKey(t, []any{int64(3)}, nil))
	assert.NotEqual(t, mustKey(t, []any{3}, nil), mustKey(t, []any{3.0}, nil))
}

func TestKeyOf_KeywordOrderDoesNotMatter(t *testing.T) {
	a := mustKey(t, []any{"q"}, map[string]any{"limit": 10, "offset": 5})
	b := mustKey(t, []any{"q"}, map[string]any{"offset": 5, "limit": 10})
	assert.Equal(t, a, b)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestKeyOf_KeywordsDifferFromPositionals(t *testing.T) {
	positional := mustKey(t, []any{10}, nil)
	keyword := mustKey(t, nil, map[string]any{"limit": 10})
	assert.NotEqual(t, positional, keyword)

	other := mustKey(t, nil, map[string]any{"offset": 10})
	assert.NotEqual(t, keyword, other)
}

func TestKeyOf_EmptyAndNil(t *testing.T) {
	empty := mustKey(t, nil, nil)
	assert.Equal(t, cached.Key{}, empty)
	assert.Equal(t, 0, empty.Len())

	withNil := mustKey(t, []any{nil}, nil)
	assert.NotEqual(t, empty, withNil)
	assert.Equal(t, withNil, mustKey(t, []any{nil}, nil))
}

func TestKeyOf_Keyer(t *testing.T) {
	a := mustKey(t, []any{samples{values: []float64{1, 2}}}, nil)
	b := mustKey(t, []any{samples{values: []float64{1, 2}}}, nil)
	c := mustKey(t, []any{samples{values: []float64{2, 1}}}, nil)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	// the CacheKey value alone must not collide with a plain argument
	raw := samples{values: []float64{1, 2}}.CacheKey()
	assert.NotEqual(t, a, mustKey(t, []any{raw}, nil))
}

func TestKeyOf_StringIsNotAKey(t *testing.T) {
	_, err := cached.KeyOf([]any{lossy{xs: []int{1}}}, nil)
	assert.ErrorIs(t, err, cached.ErrUnkeyableArguments)
}

func TestKeyOf_KeyerMustReturnComparable(t *testing.T) {
	_, err := cached.KeyOf([]any{badKeyer{}}, nil)
	assert.ErrorIs(t, err, cached.ErrUnkeyableArguments)
	assert.Contains(t, err.Error(), "CacheKey")
}

func TestKeyOf_UnkeyableArguments(t *testing.T) {
	_, err := cached.KeyOf([]any{1, []int{1}}, nil)
	assert.ErrorIs(t, err, cached.ErrUnkeyableArguments)
	assert.Contains(t, err.Error(), "positional argument 1")

	_, err = cached.KeyOf(nil, map[string]any{"filter": opaque{raw: map[string]int{}}})
	assert.ErrorIs(t, err, cached.ErrUnkeyableArguments)
	assert.Contains(t, err.Error(), `keyword argument "filter"`)

	// comparable type, non-comparable dynamic value
	_, err = cached.KeyOf([]any{struct{ V any }{V: []int{1}}}, nil)
	assert.ErrorIs(t, err, cached.ErrUnkeyableArguments)
}

func TestKeyOf_PointersCompareByIdentity(t *testing.T) {
	p1, p2 := &point{1, 1}, &point{1, 1}
	assert.True(t, mustKey(t, []any{p1}, nil) == mustKey(t, []any{p1}, nil))
	assert.False(t, mustKey(t, []any{p1}, nil) == mustKey(t, []any{p2}, nil))
}
