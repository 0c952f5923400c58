package geom

import "iter"

// offsets lists the 8 neighbor offsets clockwise, starting at (x, y+1).
var offsets = [8]Coord{
	{X: 0, Y: 1},
	{X: 1, Y: 1},
	{X: 1, Y: 0},
	{X: 1, Y: -1},
	{X: 0, Y: -1},
	{X: -1, Y: -1},
	{X: -1, Y: 0},
	{X: -1, Y: 1},
}

// IsOrthogonal reports whether a and b share a row or a column.
func IsOrthogonal(a, b Coord) bool { return a.X == b.X || a.Y == b.Y }

// Neighbors yields the up to 8 cells around origin that lie inside a
// width x height grid, clockwise from (x, y+1). Out-of-bounds candidates are
// skipped. The sequence can be ranged over any number of times.
func Neighbors(origin Coord, width, height int) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for _, o := range offsets {
			c := origin.Add(o)
			if !c.In(width, height) {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Spiral yields concentric clockwise rings of cells around origin, out to
// rng rings. Every candidate is clamped to the grid, so border origins repeat
// cells (and may yield origin itself). Ring r contributes 8*r cells.
//
//	..  24  25  26  27  28  29
//	46  23   8   9  10  11  30
//	45  22   7   0   1  12  31
//	44  21   6   ^   2  13  32
//	43  20   5   4   3  14  33
//	42  19  18  17  16  15  34
//	41  40  39  38  37  36  35
func Spiral(origin Coord, width, height, rng int) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		var o Coord
		emit := func() bool {
			c := origin.Add(o)
			return yield(Clamp(c.X, c.Y, width, height))
		}
		for ring := 1; ring <= rng; ring++ {
			o.Y++
			if !emit() {
				return
			}
			for i := 0; i < ring*2-1; i++ {
				o.X++
				if !emit() {
					return
				}
			}
			for i := 0; i < ring*2; i++ {
				o.Y--
				if !emit() {
					return
				}
			}
			for i := 0; i < ring*2; i++ {
				o.X--
				if !emit() {
					return
				}
			}
			for i := 0; i < ring*2; i++ {
				o.Y++
				if !emit() {
					return
				}
			}
		}
	}
}

// Line yields the Bresenham line from a to b, both ends included.
func Line(a, b Coord) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		pos := a
		if !yield(pos) {
			return
		}
		xi, dx := 1, b.X-a.X
		if a.X >= b.X {
			xi, dx = -1, a.X-b.X
		}
		yi, dy := 1, b.Y-a.Y
		if a.Y >= b.Y {
			yi, dy = -1, a.Y-b.Y
		}

		if dx > dy {
			ai := (dy - dx) * 2
			bi := dy * 2
			d := bi - dx
			for pos.X != b.X {
				if d >= 0 {
					pos.X += xi
					pos.Y += yi
					d += ai
				} else {
					d += bi
					pos.X += xi
				}
				if !yield(pos) {
					return
				}
			}
			return
		}

		ai := (dx - dy) * 2
		bi := dx * 2
		d := bi - dy
		for pos.Y != b.Y {
			if d >= 0 {
				pos.X += xi
				pos.Y += yi
				d += ai
			} else {
				d += bi
				pos.Y += yi
			}
			if !yield(pos) {
				return
			}
		}
	}
}

// TraceLine appends the Bresenham line from a to b to dst[:0] and returns it.
func TraceLine(dst []Coord, a, b Coord) []Coord {
	dst = dst[:0]
	if n := max(abs(a.X-b.X), abs(a.Y-b.Y)) + 1; cap(dst) < n {
		dst = make([]Coord, 0, n)
	}
	for c := range Line(a, b) {
		dst = append(dst, c)
	}
	return dst
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
