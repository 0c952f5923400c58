package geom

import "math"

// relEpsilon bounds the relative error accepted by AboutEqual. Cell fraction
// math accumulates a few ulps near cell borders, so exact comparison would
// drop points that sit on a border into the lower cell.
const relEpsilon = 1e-12

// Vec2 is a continuous 2D point or size.
type Vec2 struct {
	X, Y float64
}

// AboutEqual compares x and y with a tolerance relative to their magnitude.
func AboutEqual(x, y float64) bool {
	return math.Abs(x-y) <= math.Max(math.Abs(x), math.Abs(y))*relEpsilon
}

// PositionInsideCell locates point along one axis split into numCells cells
// spanning worldSize. It returns the cell the point falls in, the next cell
// away from zero, and the normalized position between them.
func PositionInsideCell(point float64, numCells int, worldSize float64) (lower, upper int, fraction float64) {
	cellSize := worldSize / float64(numCells)
	cellFraction := point / cellSize
	if cellSize < 0 {
		lower = int(math.Ceil(cellFraction))
	} else {
		lower = int(math.Floor(cellFraction))
	}
	if lower < 0 {
		upper = lower - 1
	} else {
		upper = lower + 1
	}
	fraction = (point - float64(lower)*cellSize) / cellSize
	return lower, upper, fraction
}

// PointToCoord returns the cell owning point in a width x height grid that
// spans worldSize. A point lying on a border between two cells belongs to the
// upper one. The result is clamped to the grid.
func PointToCoord(point, worldSize Vec2, width, height int) Coord {
	xlo, xhi, xf := PositionInsideCell(point.X, width, worldSize.X)
	ylo, yhi, yf := PositionInsideCell(point.Y, height, worldSize.Y)
	c := Coord{X: xlo, Y: ylo}
	if AboutEqual(xf, 1) {
		c.X = xhi
	}
	if AboutEqual(yf, 1) {
		c.Y = yhi
	}
	return Clamp(c.X, c.Y, width, height)
}

// PointToIndex is PointToCoord followed by ToIndex.
func PointToIndex(point, worldSize Vec2, width, height int) int {
	return PointToCoord(point, worldSize, width, height).Index(width)
}

// IsPointBetweenCells returns a non-zero offset when point sits on the border
// between two cells along an axis of width cells spanning worldSize: +1 for
// non-negative points, -1 for negative ones. It returns 0 otherwise.
func IsPointBetweenCells(point float64, width int, worldSize float64) int {
	cellSize := worldSize / float64(width)
	cellFraction := math.Abs(math.Mod(point, cellSize) / cellSize)
	if !AboutEqual(cellFraction, 1) {
		return 0
	}
	if point < 0 {
		return -1
	}
	return 1
}

// IndexToPoint returns the continuous position of cell (x,y) for a cell step.
func IndexToPoint(x, y int, step Vec2) Vec2 {
	return Vec2{X: float64(x) * step.X, Y: float64(y) * step.Y}
}

// MidpointRoundAwayFromZero rounds to the nearest integer, halves away from zero.
func MidpointRoundAwayFromZero(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
