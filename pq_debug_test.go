//go:build griddebug

package gridastar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinHeapEmptyPopPanics(t *testing.T) {
	h := NewMinHeap(0, []int{}, byWeight)
	assert.PanicsWithValue(t, "contract violation: pop on empty heap", func() { h.Pop() })
	assert.Panics(t, func() { h.Peek() })
}
