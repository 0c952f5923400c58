package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBacktrack(t *testing.T) {
	// 0 <- 1 <- 2 <- 4, 3 unreached
	predecessor := []int{0, 0, 1, -1, 2}

	path, ok := Backtrack(nil, predecessor, 4, 0)
	assert.True(t, ok)
	assert.Equal(t, []int{4, 2, 1}, path)

	path, ok = Backtrack(path[:0], predecessor, 0, 0)
	assert.True(t, ok)
	assert.Empty(t, path)
}

func TestBacktrackInconsistentTable(t *testing.T) {
	cycle := []int{0, 2, 1}
	_, ok := Backtrack(nil, cycle, 1, 0)
	assert.False(t, ok)

	broken := []int{0, -1, 1}
	_, ok = Backtrack(nil, broken, 2, 0)
	assert.False(t, ok)
}
