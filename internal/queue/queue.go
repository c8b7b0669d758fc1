// Package queue provides a min-heap of word cursors keyed by word number.
package queue

// Cursor is a forward-only position over an ordered stream of words.
type Cursor interface {
	// WordNum returns the number of the word the cursor is currently on.
	WordNum() int
}

// CursorHeap is a binary min-heap ordered by Cursor.WordNum.
//
// Cursors are stored by value (usually pointers) and the heap never copies
// or advances them itself: callers advance the top cursor and call FixTop.
type CursorHeap[T Cursor] struct {
	items []T
}

// NewCursorHeap returns an empty heap with room for capacity cursors.
func NewCursorHeap[T Cursor](capacity int) *CursorHeap[T] {
	return &CursorHeap[T]{
		items: make([]T, 0, capacity),
	}
}

// Len returns the number of cursors in the heap.
func (h *CursorHeap[T]) Len() int {
	return len(h.items)
}

// Push inserts a cursor while maintaining the heap invariant.
func (h *CursorHeap[T]) Push(c T) {
	h.items = append(h.items, c)
	h.siftUp(len(h.items) - 1)
}

// Top returns the cursor with the smallest word number.
func (h *CursorHeap[T]) Top() (T, bool) {
	if len(h.items) == 0 {
		var zero T
		return zero, false
	}
	return h.items[0], true
}

// FixTop restores the heap invariant after the top cursor moved forward.
func (h *CursorHeap[T]) FixTop() {
	if len(h.items) > 1 {
		h.siftDown(0)
	}
}

// Pop removes and returns the cursor with the smallest word number.
func (h *CursorHeap[T]) Pop() (T, bool) {
	n := len(h.items)
	if n == 0 {
		var zero T
		return zero, false
	}
	root := h.items[0]
	last := h.items[n-1]
	var zero T
	h.items[n-1] = zero
	h.items = h.items[:n-1]
	if n-1 > 0 {
		h.items[0] = last
		h.siftDown(0)
	}
	return root, true
}

func (h *CursorHeap[T]) less(i, j int) bool {
	return h.items[i].WordNum() < h.items[j].WordNum()
}

func (h *CursorHeap[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !h.less(i, p) {
			return
		}
		h.items[i], h.items[p] = h.items[p], h.items[i]
		i = p
	}
}

func (h *CursorHeap[T]) siftDown(i int) {
	n := len(h.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && h.less(r, l) {
			best = r
		}
		if !h.less(best, i) {
			return
		}
		h.items[i], h.items[best] = h.items[best], h.items[i]
		i = best
	}
}
