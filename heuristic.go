package gridastar

import (
	"math"

	"github.com/pdrpinto/gridastar/geom"
)

// Heuristic estimates the remaining cost from a cell to the destination.
type Heuristic func(from, to geom.Coord) float64

// Euclidean is the straight-line distance between two cells. It never
// overestimates on a grid where an orthogonal step costs at least 1 and a
// diagonal step at least √2.
func Euclidean(from, to geom.Coord) float64 {
	return math.Hypot(float64(to.X-from.X), float64(to.Y-from.Y))
}

// EuclideanMaxLength is the diagonal of a grid holding length cells in rows
// of width.
func EuclideanMaxLength(length, width int) float64 {
	return math.Hypot(float64(width), float64(length/width))
}

// EuclideanNormalized returns Euclidean scaled by the diagonal of the grid,
// so estimates fall in [0,1] regardless of grid size.
func EuclideanNormalized(length, width int) Heuristic {
	diagonal := EuclideanMaxLength(length, width)
	return func(from, to geom.Coord) float64 {
		return Euclidean(from, to) / diagonal
	}
}
