package gridastar

import (
	"fmt"
	"strings"

	"github.com/pdrpinto/gridastar/internal/assert"
)

// CompareFunc orders two heap items by reading the weight slice the heap was
// bound to. It returns a negative number when lhs should pop first.
type CompareFunc[I, W any] func(lhs, rhs I, weights []W) int

// MinHeap is a binary min-heap of items I ordered through an externally owned
// weight slice. The heap never copies weights and has no decrease-key: the
// weight an item is ordered by must not change while the item is held.
type MinHeap[I, W any] struct {
	items   []I
	weights []W
	cmp     CompareFunc[I, W]
}

// NewMinHeap returns an empty heap with room for capacity items.
func NewMinHeap[I, W any](capacity int, weights []W, cmp CompareFunc[I, W]) *MinHeap[I, W] {
	return &MinHeap[I, W]{
		items:   make([]I, 0, capacity),
		weights: weights,
		cmp:     cmp,
	}
}

// SetWeights rebinds the heap to weights, typically after the owner grew the
// slice with append. Weights of held items must be unchanged.
func (h *MinHeap[I, W]) SetWeights(weights []W) { h.weights = weights }

func (h *MinHeap[I, W]) Len() int { return len(h.items) }

// Items is the heap array in storage order. It is a view, not a copy.
func (h *MinHeap[I, W]) Items() []I { return h.items }

// Clear drops every item and keeps the allocation.
func (h *MinHeap[I, W]) Clear() { h.items = h.items[:0] }

// Push adds item and sifts it up.
func (h *MinHeap[I, W]) Push(item I) {
	h.items = append(h.items, item)
	i := len(h.items) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if h.cmp(h.items[i], h.items[parent], h.weights) >= 0 {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

// Pop removes and returns the minimum item. Popping an empty heap is a
// contract violation.
func (h *MinHeap[I, W]) Pop() I {
	if assert.Enabled {
		assert.True(len(h.items) > 0, "pop on empty heap")
	}
	root := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	var zero I
	h.items[last] = zero
	h.items = h.items[:last]

	n := len(h.items)
	i := 0
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && h.cmp(h.items[right], h.items[left], h.weights) < 0 {
			smallest = right
		}
		if h.cmp(h.items[smallest], h.items[i], h.weights) >= 0 {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
	return root
}

// Peek returns the minimum item without removing it.
func (h *MinHeap[I, W]) Peek() I {
	if assert.Enabled {
		assert.True(len(h.items) > 0, "peek on empty heap")
	}
	return h.items[0]
}

// String dumps the heap array level by level.
func (h *MinHeap[I, W]) String() string {
	var b strings.Builder
	b.WriteString("MinHeap[")
	for i, item := range h.items {
		if i > 0 {
			// a new level starts at every index of the form 2^k-1
			if (i+1)&i == 0 {
				b.WriteString(" |")
			}
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, item)
	}
	b.WriteByte(']')
	return b.String()
}
