package sidetable_test

import (
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/on-the-ground/cached_method/cached"
	"github.com/on-the-ground/cached_method/cached/sidetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// document stands in for a type the caller cannot add fields to.
type document struct {
	body  string
	pages []string
}

var (
	documents = sidetable.New[document]()

	wordCountCalls int
	wordCount      = cached.NewMethod1("WordCount", func(d *document, page int) (int, error) {
		wordCountCalls++
		return len(strings.Fields(d.pages[page])), nil
	}, cached.WithLocator(documents))
)

func TestTable_CachesPerOwner(t *testing.T) {
	wordCountCalls = 0
	a := &document{pages: []string{"one two", "three"}}
	b := &document{pages: []string{"one two", "three"}}

	n, err := wordCount.Call(a, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	_, _ = wordCount.Call(a, 0)
	assert.Equal(t, 1, wordCountCalls)

	_, _ = wordCount.Call(b, 0)
	assert.Equal(t, 2, wordCountCalls)

	slots, err := documents.SlotsFor(a)
	require.NoError(t, err)
	assert.Equal(t, []string{"WordCount"}, slots.CacheSlotNames())

	runtime.KeepAlive(a)
	runtime.KeepAlive(b)
}

func TestTable_RejectsForeignOwners(t *testing.T) {
	_, err := documents.SlotsFor(&struct{}{})
	assert.ErrorIs(t, err, cached.ErrAttachmentConflict)

	_, err = documents.SlotsFor((*document)(nil))
	assert.ErrorIs(t, err, cached.ErrAttachmentConflict)
}

func TestTable_DropsCollectedOwners(t *testing.T) {
	table := sidetable.New[document]()
	pageCount := cached.NewMethod0("PageCount", func(d *document) (int, error) {
		return len(d.pages), nil
	}, cached.WithLocator(table))

	var last *document
	for i := 0; i < 100; i++ {
		last = &document{body: strings.Repeat("x", 64), pages: make([]string, i%7)}
		_, err := pageCount.Call(last)
		require.NoError(t, err)
	}
	assert.Positive(t, table.Len())
	runtime.KeepAlive(last)
	last = nil

	assert.Eventually(t, func() bool {
		runtime.GC()
		return table.Len() == 0
	}, 5*time.Second, 10*time.Millisecond)
}
