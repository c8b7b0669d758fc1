package queue

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCursor struct {
	words []int
	pos   int
}

func (c *fakeCursor) WordNum() int {
	if c.pos >= len(c.words) {
		return int(^uint(0) >> 1)
	}
	return c.words[c.pos]
}

func TestCursorHeap_Empty(t *testing.T) {
	h := NewCursorHeap[*fakeCursor](0)
	assert.Equal(t, 0, h.Len())

	_, ok := h.Top()
	assert.False(t, ok)

	_, ok = h.Pop()
	assert.False(t, ok)

	h.FixTop() // no-op on empty heap
}

func TestCursorHeap_PopOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	h := NewCursorHeap[*fakeCursor](64)
	for i := 0; i < 64; i++ {
		h.Push(&fakeCursor{words: []int{rng.Intn(1000)}})
	}

	prev := -1
	for h.Len() > 0 {
		c, ok := h.Pop()
		require.True(t, ok)
		assert.GreaterOrEqual(t, c.WordNum(), prev)
		prev = c.WordNum()
	}
}

func TestCursorHeap_FixTopMerge(t *testing.T) {
	// Merging three ascending streams through FixTop must yield a sorted stream.
	h := NewCursorHeap[*fakeCursor](3)
	h.Push(&fakeCursor{words: []int{1, 4, 9}})
	h.Push(&fakeCursor{words: []int{2, 3, 10}})
	h.Push(&fakeCursor{words: []int{0, 5, 6}})

	var got []int
	for {
		top, ok := h.Top()
		require.True(t, ok)
		if top.pos >= len(top.words) {
			break
		}
		got = append(got, top.WordNum())
		top.pos++
		h.FixTop()
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 9, 10}, got)
}
