// Package grid provides Grid, a dense 2D container over a flat row-major
// buffer whose bulk mutations run as scheduled jobs.
//
// Every grid carries one pending-operation Handle. Scheduling a job on a grid
// makes the job depend on that handle and then replaces it, so jobs on one
// grid form a single chain and never overlap, while jobs on different grids
// run concurrently. Direct element access waits for the handle first.
//
// A Grid has one owner. Disposing it while a job is pending, or touching an
// out-of-range cell, is a contract violation that is only checked in builds
// tagged griddebug.
package grid

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pdrpinto/gridastar/geom"
	"github.com/pdrpinto/gridastar/internal/assert"
	"github.com/pdrpinto/gridastar/internal/telemetry"
)

// Grid is a width x height buffer of T with a dependency-chained job model.
type Grid[T any] struct {
	width  int
	height int
	values []T
	logger *slog.Logger

	mu         sync.Mutex
	dependency *Handle
	disposed   bool
}

// Options configures a Grid.
type Options struct {
	Logger *slog.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLogger sets the logger used for job scheduling debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// New allocates a zeroed width x height grid.
func New[T any](width, height int, options ...Option) *Grid[T] {
	if assert.Enabled {
		assert.True(width > 0 && height > 0, "grid size %dx%d must be positive", width, height)
	}
	return FromSlice(width, height, make([]T, width*height), options...)
}

// FromSlice wraps values as a width x height grid without copying.
// The grid takes ownership of values.
func FromSlice[T any](width, height int, values []T, options ...Option) *Grid[T] {
	if assert.Enabled {
		assert.True(width > 0 && height > 0, "grid size %dx%d must be positive", width, height)
		assert.True(len(values) == width*height, "buffer length (%d) == %d*%d", len(values), width, height)
	}
	gridOptions := Options{Logger: slog.Default()}
	for _, option := range options {
		option(&gridOptions)
	}
	return &Grid[T]{
		width:      width,
		height:     height,
		values:     values,
		logger:     gridOptions.Logger,
		dependency: completed,
	}
}

func (g *Grid[T]) Width() int  { return g.width }
func (g *Grid[T]) Height() int { return g.height }

// Len is the number of cells, Width*Height.
func (g *Grid[T]) Len() int { return g.width * g.height }

// Dependency returns the handle of the last job scheduled on g.
func (g *Grid[T]) Dependency() *Handle {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dependency
}

// Complete blocks until every job scheduled on g so far finished.
func (g *Grid[T]) Complete() { g.Dependency().Complete() }

// Wait is Complete with cancellation.
func (g *Grid[T]) Wait(ctx context.Context) error { return g.Dependency().Wait(ctx) }

// IsValid reports whether (x,y) is a cell of g.
func (g *Grid[T]) IsValid(x, y int) bool { return geom.IsValid(x, y, g.width, g.height) }

// IsIndexValid reports whether i is a cell index of g.
func (g *Grid[T]) IsIndexValid(i int) bool { return geom.IsIndexValid(i, g.Len()) }

// CoordToIndex converts (x,y) to a linear index of g.
func (g *Grid[T]) CoordToIndex(x, y int) int { return geom.ToIndex(x, y, g.width) }

// IndexToCoord converts a linear index of g to a coordinate.
func (g *Grid[T]) IndexToCoord(i int) geom.Coord { return geom.ToCoord(i, g.width) }

// Get returns the value at linear index i.
func (g *Grid[T]) Get(i int) T {
	g.Complete()
	g.checkIndex(i)
	return g.values[i]
}

// Set stores v at linear index i.
func (g *Grid[T]) Set(i int, v T) {
	g.Complete()
	g.checkIndex(i)
	g.values[i] = v
}

// At returns the value at (x,y).
func (g *Grid[T]) At(x, y int) T {
	g.checkCoord(x, y)
	return g.Get(g.CoordToIndex(x, y))
}

// SetAt stores v at (x,y).
func (g *Grid[T]) SetAt(x, y int, v T) {
	g.checkCoord(x, y)
	g.Set(g.CoordToIndex(x, y), v)
}

// AtCoord returns the value at c.
func (g *Grid[T]) AtCoord(c geom.Coord) T { return g.At(c.X, c.Y) }

// SetCoord stores v at c.
func (g *Grid[T]) SetCoord(c geom.Coord, v T) { g.SetAt(c.X, c.Y, v) }

// Values waits for pending jobs and returns the backing buffer. The slice is
// only safe to use until the next job is scheduled on g.
func (g *Grid[T]) Values() []T {
	g.Complete()
	if assert.Enabled {
		assert.True(!g.isDisposed(), "values of a disposed grid")
	}
	return g.values
}

// Dispose releases the buffer. Every scheduled job must have completed.
func (g *Grid[T]) Dispose() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disposed {
		return
	}
	if assert.Enabled {
		assert.True(g.dependency.IsCompleted(), "grid %dx%d disposed with a pending job", g.width, g.height)
	}
	g.dependency.Complete()
	g.values = nil
	g.disposed = true
}

func (g *Grid[T]) isDisposed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.disposed
}

func (g *Grid[T]) checkIndex(i int) {
	if assert.Enabled {
		assert.True(!g.isDisposed(), "access to a disposed grid")
		assert.True(g.IsIndexValid(i), "index %d outside grid of length %d", i, g.Len())
	}
}

func (g *Grid[T]) checkCoord(x, y int) {
	if assert.Enabled {
		assert.True(g.IsValid(x, y), "(%d,%d) outside %dx%d grid", x, y, g.width, g.height)
	}
}

// schedule chains run after g's current handle and deps, then makes the new
// job g's current handle.
func (g *Grid[T]) schedule(op string, run func(), deps []*Handle) *Handle {
	g.mu.Lock()
	defer g.mu.Unlock()
	if assert.Enabled {
		assert.True(!g.disposed, "%s scheduled on a disposed grid", op)
	}

	all := make([]*Handle, 0, len(deps)+1)
	all = append(all, g.dependency)
	all = append(all, deps...)
	h := Schedule(func() {
		start := time.Now()
		run()
		telemetry.ObserveGridOp(op, time.Since(start))
	}, all...)
	g.dependency = h

	g.logger.Debug("grid job scheduled",
		slog.String("op", op),
		slog.Int("width", g.width),
		slog.Int("height", g.height),
		slog.Int("extra_deps", len(deps)),
	)
	return h
}
