package grid

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pdrpinto/gridastar/geom"
	"github.com/pdrpinto/gridastar/internal/assert"
)

// batchSize is the number of cells one parallel-for worker handles at a time.
const batchSize = 1024

// parallelFor splits [0,n) into batches and runs body over them on up to
// GOMAXPROCS goroutines. Small ranges run inline.
func parallelFor(n int, body func(lo, hi int)) {
	if n <= batchSize {
		body(0, n)
		return
	}
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for lo := 0; lo < n; lo += batchSize {
		hi := min(lo+batchSize, n)
		g.Go(func() error {
			body(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

// Fill schedules writing value into every cell.
func (g *Grid[T]) Fill(value T, deps ...*Handle) *Handle {
	values := g.values
	return g.schedule("fill", func() {
		parallelFor(len(values), func(lo, hi int) {
			for i := lo; i < hi; i++ {
				values[i] = value
			}
		})
	}, deps)
}

// FillRegion schedules writing value into every cell of region.
func (g *Grid[T]) FillRegion(region geom.Rect, value T, deps ...*Handle) *Handle {
	if assert.Enabled {
		assert.True(region.Within(g.width, g.height), "region %s outside %dx%d grid", region, g.width, g.height)
	}
	values, width := g.values, g.width
	return g.schedule("fill_region", func() {
		parallelFor(region.Len(), func(lo, hi int) {
			for ri := lo; ri < hi; ri++ {
				values[geom.TranslateRegionIndex(region, ri, width)] = value
			}
		})
	}, deps)
}

// FillBorder schedules writing value into the outermost ring of cells.
func (g *Grid[T]) FillBorder(value T, deps ...*Handle) *Handle {
	values, width, height := g.values, g.width, g.height
	return g.schedule("fill_border", func() {
		yMax := height - 1
		for x := 0; x < width; x++ {
			values[geom.ToIndex(x, 0, width)] = value
			values[geom.ToIndex(x, yMax, width)] = value
		}
		xMax := width - 1
		for y := 1; y < height-1; y++ {
			values[geom.ToIndex(0, y, width)] = value
			values[geom.ToIndex(xMax, y, width)] = value
		}
	}, deps)
}

// Copy allocates a grid the size of region and schedules copying region's
// cells into it. The copy job joins g's chain, so later jobs on g cannot
// overwrite the source while it is read, and becomes the new grid's handle.
func (g *Grid[T]) Copy(region geom.Rect, deps ...*Handle) (*Grid[T], *Handle) {
	if assert.Enabled {
		assert.True(region.Within(g.width, g.height), "region %s outside %dx%d grid", region, g.width, g.height)
	}
	dst := New[T](region.Width, region.Height, WithLogger(g.logger))
	src, out, width := g.values, dst.values, g.width
	h := g.schedule("copy", func() {
		parallelFor(region.Len(), func(lo, hi int) {
			for ri := lo; ri < hi; ri++ {
				out[ri] = src[geom.TranslateRegionIndex(region, ri, width)]
			}
		})
	}, deps)

	dst.mu.Lock()
	dst.dependency = h
	dst.mu.Unlock()
	return dst, h
}

// Schedule chains a caller-defined job on g. fn receives the backing buffer
// and must not retain it past its return.
func (g *Grid[T]) Schedule(name string, fn func(values []T), deps ...*Handle) *Handle {
	values := g.values
	return g.schedule(name, func() { fn(values) }, deps)
}
