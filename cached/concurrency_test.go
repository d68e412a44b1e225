package cached_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/on-the-ground/cached_method/cached"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shared struct {
	cached.Slots
}

func TestMethod_ConcurrentMissesMayComputeTwice(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})
	slow := cached.NewMethod1("Slow", func(_ *shared, k int) (int, error) {
		calls.Add(1)
		<-release
		return k * 10, nil
	}, cached.WithMaxSize(4))

	s := &shared{}
	const callers = 8
	results := make([]int, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := slow.Call(s, 7)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	// let every caller miss before any of them stores
	require.Eventually(t, func() bool { return calls.Load() == callers }, 5*time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	for _, v := range results {
		assert.Equal(t, 70, v)
	}
	cache, err := slow.Cache(s)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	_, _ = slow.Call(s, 7)
	assert.Equal(t, int64(callers), calls.Load())
}

func TestMethod_ConcurrentOwnersAndKeys(t *testing.T) {
	var calls atomic.Int64
	square := cached.NewMethod1("Square", func(_ *shared, k int) (int, error) {
		calls.Add(1)
		return k * k, nil
	}, cached.WithMaxSize(16))

	owners := []*shared{{}, {}, {}, {}}
	var wg sync.WaitGroup
	for _, o := range owners {
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func(o *shared, g int) {
				defer wg.Done()
				for k := 0; k < 64; k++ {
					v, err := square.Call(o, (k+g)%32)
					assert.NoError(t, err)
					assert.Equal(t, ((k+g)%32)*((k+g)%32), v)
				}
			}(o, g)
		}
	}
	wg.Wait()

	for _, o := range owners {
		info, err := square.Info(o)
		require.NoError(t, err)
		assert.LessOrEqual(t, info.CurrSize, 16)
		assert.Equal(t, uint64(4*64), info.Hits+info.Misses)
	}
	assert.GreaterOrEqual(t, calls.Load(), int64(len(owners)*32))
}
