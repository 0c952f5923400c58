package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexRoundTrip(t *testing.T) {
	for _, size := range []struct{ w, h int }{{1, 1}, {1, 7}, {7, 1}, {3, 5}, {16, 9}} {
		for i := 0; i < size.w*size.h; i++ {
			c := ToCoord(i, size.w)
			assert.Truef(t, c.In(size.w, size.h), "%v inside %dx%d", c, size.w, size.h)
			assert.Equal(t, i, ToIndex(c.X, c.Y, size.w))
			assert.Equal(t, i, c.Index(size.w))
		}
	}
}

func TestToCoordCorners(t *testing.T) {
	w, h := 12, 5
	assert.Equal(t, Coord{0, 0}, ToCoord(0, w))
	assert.Equal(t, Coord{w - 1, h - 1}, ToCoord(w*h-1, w))
	assert.Equal(t, Coord{0, 1}, ToCoord(w, w))
}

func TestBounds(t *testing.T) {
	assert.True(t, IsValid(0, 0, 1, 1))
	assert.False(t, IsValid(1, 0, 1, 1))
	assert.False(t, IsValid(-1, 0, 4, 4))
	assert.False(t, IsValid(0, 4, 4, 4))

	assert.True(t, IsIndexValid(0, 1))
	assert.False(t, IsIndexValid(-1, 10))
	assert.False(t, IsIndexValid(10, 10))

	assert.Equal(t, Coord{0, 3}, Clamp(-5, 3, 4, 4))
	assert.Equal(t, Coord{3, 3}, Clamp(9, 9, 4, 4))
	assert.Equal(t, 0, ClampIndex(-1, 8))
	assert.Equal(t, 7, ClampIndex(8, 8))
}

func TestRegionTranslation(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 4, Height: 2}
	outerWidth := 10

	assert.Equal(t, 8, r.Len())
	assert.True(t, r.Within(10, 5))
	assert.False(t, r.Within(5, 5))
	assert.False(t, Rect{Width: 0, Height: 1}.Within(10, 10))

	assert.Equal(t, Coord{2, 3}, TranslateCoord(r, Coord{0, 0}))
	assert.Equal(t, Coord{5, 4}, TranslateCoord(r, Coord{3, 1}))

	assert.Equal(t, 3*outerWidth+2, TranslateIndex(r, 0, 0, outerWidth))
	assert.Equal(t, 4*outerWidth+5, TranslateIndex(r, 3, 1, outerWidth))

	for ri := 0; ri < r.Len(); ri++ {
		local := ToCoord(ri, r.Width)
		want := TranslateCoord(r, local).Index(outerWidth)
		assert.Equal(t, want, TranslateRegionIndex(r, ri, outerWidth))
	}
}
