// Package geom holds the pure coordinate math shared by grids and searches:
// linear index <-> coordinate transforms, bounds checks, sub-region
// translation, continuous point to cell mapping and lazy cell enumerators.
//
// Index functions do not validate their input. Callers pre-validate with
// IsValid / IsIndexValid; builds tagged griddebug assert the contract.
package geom

import (
	"fmt"

	"github.com/pdrpinto/gridastar/internal/assert"
)

// Coord is an integer cell coordinate.
type Coord struct {
	X, Y int
}

// Add returns c+o.
func (c Coord) Add(o Coord) Coord { return Coord{X: c.X + o.X, Y: c.Y + o.Y} }

// Sub returns c-o.
func (c Coord) Sub(o Coord) Coord { return Coord{X: c.X - o.X, Y: c.Y - o.Y} }

// Index returns the linear index of c in a buffer of the given width.
func (c Coord) Index(width int) int { return ToIndex(c.X, c.Y, width) }

// In reports whether c lies inside a width x height grid.
func (c Coord) In(width, height int) bool { return IsValid(c.X, c.Y, width, height) }

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// ToIndex converts a coordinate to its row-major linear index.
func ToIndex(x, y, width int) int {
	if assert.Enabled {
		assert.True(width > 0, "width (%d) > 0", width)
		assert.True(x >= 0 && y >= 0, "coordinate (%d,%d) >= 0", x, y)
		assert.True(x < width, "x (%d) < width (%d)", x, width)
	}
	return y*width + x
}

// ToCoord converts a row-major linear index back to a coordinate.
func ToCoord(index, width int) Coord {
	if assert.Enabled {
		assert.True(width > 0, "width (%d) > 0", width)
		assert.True(index >= 0, "index (%d) >= 0", index)
	}
	return Coord{X: index % width, Y: index / width}
}

// IsValid reports whether (x,y) lies inside a width x height grid.
func IsValid(x, y, width, height int) bool {
	return x >= 0 && x < width && y >= 0 && y < height
}

// IsIndexValid reports whether i addresses a buffer of the given length.
func IsIndexValid(i, length int) bool { return i >= 0 && i < length }

// Clamp pulls (x,y) onto the nearest cell of a width x height grid.
func Clamp(x, y, width, height int) Coord {
	return Coord{X: clampInt(x, 0, width-1), Y: clampInt(y, 0, height-1)}
}

// ClampIndex pulls i into [0,length).
func ClampIndex(i, length int) int { return clampInt(i, 0, length-1) }

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Rect is an axis-aligned cell region: origin (X,Y) and size Width x Height.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Len is the number of cells covered by r.
func (r Rect) Len() int { return r.Width * r.Height }

// Within reports whether r is non-empty and fits entirely inside a
// width x height grid.
func (r Rect) Within(width, height int) bool {
	return r.Width > 0 && r.Height > 0 &&
		r.X >= 0 && r.Y >= 0 &&
		r.X+r.Width <= width && r.Y+r.Height <= height
}

func (r Rect) String() string {
	return fmt.Sprintf("[x:%d y:%d w:%d h:%d]", r.X, r.Y, r.Width, r.Height)
}

// TranslateCoord maps a region-local coordinate to the enclosing grid.
func TranslateCoord(r Rect, local Coord) Coord {
	if assert.Enabled {
		assertRegionLocal(r, local.X, local.Y)
	}
	return Coord{X: r.X + local.X, Y: r.Y + local.Y}
}

// TranslateIndex maps a region-local coordinate (rx,ry) to the linear index
// of an enclosing buffer that is outerWidth cells wide.
func TranslateIndex(r Rect, rx, ry, outerWidth int) int {
	if assert.Enabled {
		assert.True(outerWidth > 0, "outer width (%d) > 0", outerWidth)
		assert.True(r.Width <= outerWidth, "region width (%d) <= outer width (%d)", r.Width, outerWidth)
		assertRegionLocal(r, rx, ry)
	}
	return ToIndex(r.X+rx, r.Y+ry, outerWidth)
}

// TranslateRegionIndex maps a region-local linear index to the linear index
// of an enclosing buffer that is outerWidth cells wide.
func TranslateRegionIndex(r Rect, regionIndex, outerWidth int) int {
	local := ToCoord(regionIndex, r.Width)
	return TranslateIndex(r, local.X, local.Y, outerWidth)
}

func assertRegionLocal(r Rect, rx, ry int) {
	assert.True(r.Width > 0 && r.Height > 0, "region %s is not empty", r)
	assert.True(r.X >= 0 && r.Y >= 0, "region %s origin >= 0", r)
	assert.True(rx >= 0 && rx < r.Width, "rx (%d) is out of bounds for %s", rx, r)
	assert.True(ry >= 0 && ry < r.Height, "ry (%d) is out of bounds for %s", ry, r)
}
