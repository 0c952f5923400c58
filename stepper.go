package gridastar

import (
	"cmp"
	"context"
	"log/slog"
	"math"
	"slices"

	"github.com/pdrpinto/gridastar/geom"
	"github.com/pdrpinto/gridastar/internal"
	"github.com/pdrpinto/gridastar/internal/assert"
)

// Impassable is the movement cost that blocks a cell. Lower costs are
// normalized to [0,1) by dividing by Impassable.
const Impassable = math.MaxUint8

// ctxCheckInterval is how many steps Run takes between context checks.
const ctxCheckInterval = 1024

// State is the phase of a search.
type State int

const (
	StateSearching State = iota
	StatePathFound
	StateNoPath
	StateBudgetExhausted
)

func (s State) String() string {
	switch s {
	case StateSearching:
		return "searching"
	case StatePathFound:
		return "path_found"
	case StateNoPath:
		return "no_path"
	case StateBudgetExhausted:
		return "budget_exhausted"
	}
	return "unknown"
}

// StepSnapshot exposes the per-iteration state of the search.
type StepSnapshot struct {
	// Current is the cell popped by the last step.
	Current     geom.Coord
	State       State
	Done        bool
	Found       bool
	StepIndex   int
	FrontierLen int
}

// frontierEntry is one push onto the frontier. Entries are never modified, so
// the heap ordering stays valid when a cell's F improves; the improvement
// pushes a new entry and the old one is dropped as stale when popped.
type frontierEntry struct {
	cell int
	f    float64
}

// compareEntries orders by F, then by cell index, then by push order.
func compareEntries(lhs, rhs int, entries []frontierEntry) int {
	a, b := entries[lhs], entries[rhs]
	if c := cmp.Compare(a.f, b.f); c != 0 {
		return c
	}
	if c := cmp.Compare(a.cell, b.cell); c != 0 {
		return c
	}
	return cmp.Compare(lhs, rhs)
}

// Stepper is the A* state machine over a byte cost buffer, advanced one
// expansion at a time. FindPath drives one to completion; visualizers and
// debuggers can drive it by hand and inspect the workspace between steps.
//
// A Stepper is single-use and not safe for concurrent use.
type Stepper struct {
	moveCost    []byte
	width       int
	height      int
	start       int
	destination int
	opts        Options
	heuristic   Heuristic

	// workspace, indexed by cell
	g        []float64
	f        []float64
	solution []int
	visited  []bool
	expanded []bool

	entries  []frontierEntry
	frontier *MinHeap[int, frontierEntry]

	state   State
	steps   int
	current int
	path    []geom.Coord
	cost    float64
	closed  bool
}

// NewStepper validates the request and prepares a search from start to
// destination. Invalid requests return an error wrapping ErrInvalidRequest.
func NewStepper(
	moveCost []byte,
	width int,
	start geom.Coord,
	destination geom.Coord,
	options ...Option,
) (*Stepper, error) {
	return newStepper(moveCost, width, start, destination, buildOptions(options))
}

func newStepper(moveCost []byte, width int, start, destination geom.Coord, opts Options) (*Stepper, error) {
	if err := validateRequest(moveCost, width, start, destination); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	length := len(moveCost)
	s := &Stepper{
		moveCost:    moveCost,
		width:       width,
		height:      length / width,
		start:       start.Index(width),
		destination: destination.Index(width),
		opts:        opts,
		heuristic:   Euclidean,
		g:           make([]float64, length),
		f:           make([]float64, length),
		solution:    make([]int, length),
		visited:     make([]bool, length),
		expanded:    make([]bool, length),
		entries:     make([]frontierEntry, 0, 64),
		current:     -1,
	}
	if opts.NormalizedHeuristic {
		s.heuristic = EuclideanNormalized(length, width)
	}
	s.frontier = NewMinHeap(64, s.entries, compareEntries)
	for i := range s.g {
		s.g[i] = math.Inf(1)
		s.f[i] = math.Inf(1)
		s.solution[i] = -1
	}

	if moveCost[s.start] == Impassable || moveCost[s.destination] == Impassable {
		s.state = StateNoPath
		return s, nil
	}
	s.g[s.start] = 0
	s.f[s.start] = s.heuristic(start, destination) * opts.HMultiplier
	s.solution[s.start] = s.start
	s.visited[s.start] = true
	s.push(s.start)
	return s, nil
}

func validateRequest(moveCost []byte, width int, start, destination geom.Coord) error {
	switch {
	case width <= 0:
		return newInvalidRequestError("width %d must be positive", width)
	case len(moveCost) == 0 || len(moveCost)%width != 0:
		return newInvalidRequestError("cost buffer length %d is not a positive multiple of width %d", len(moveCost), width)
	}
	height := len(moveCost) / width
	if !start.In(width, height) {
		return newInvalidRequestError("start %s outside %dx%d grid", start, width, height)
	}
	if !destination.In(width, height) {
		return newInvalidRequestError("destination %s outside %dx%d grid", destination, width, height)
	}
	return nil
}

func (s *Stepper) push(cell int) {
	s.entries = append(s.entries, frontierEntry{cell: cell, f: s.f[cell]})
	s.frontier.SetWeights(s.entries)
	s.frontier.Push(len(s.entries) - 1)
}

// popLive pops until it finds an entry that still carries its cell's best F
// and whose cell was not expanded since.
func (s *Stepper) popLive() (int, bool) {
	for s.frontier.Len() > 0 {
		e := s.entries[s.frontier.Pop()]
		if s.expanded[e.cell] || e.f != s.f[e.cell] {
			continue
		}
		return e.cell, true
	}
	return -1, false
}

// Step advances the search by one expansion and returns a snapshot. Stale
// frontier entries are skipped without counting against the step budget.
// Once the search is done Step keeps returning the final snapshot.
func (s *Stepper) Step() StepSnapshot {
	if assert.Enabled {
		assert.True(!s.closed, "step on a closed stepper")
	}
	if s.state != StateSearching {
		return s.snapshot()
	}

	cur, ok := s.popLive()
	if !ok {
		s.finish(StateNoPath)
		return s.snapshot()
	}
	s.current = cur

	if cur == s.destination {
		s.finish(StatePathFound)
		return s.snapshot()
	}
	if s.steps == s.opts.StepBudget {
		s.finish(StateBudgetExhausted)
		return s.snapshot()
	}

	s.expand(cur)
	s.steps++
	return s.snapshot()
}

func (s *Stepper) expand(cur int) {
	s.expanded[cur] = true
	origin := geom.ToCoord(cur, s.width)
	destination := geom.ToCoord(s.destination, s.width)
	gCur := s.g[cur]

	for n := range geom.Neighbors(origin, s.width, s.height) {
		ni := n.Index(s.width)
		cost := s.moveCost[ni]
		if cost == Impassable {
			continue
		}
		stepMultiplier := 1.0
		if !geom.IsOrthogonal(origin, n) {
			stepMultiplier = math.Sqrt2
		}
		g := gCur + (1+float64(cost)/Impassable*s.opts.CostSensitivity)*stepMultiplier
		if g >= s.g[ni] {
			continue
		}
		s.g[ni] = g
		s.f[ni] = g + s.heuristic(n, destination)*s.opts.HMultiplier
		s.solution[ni] = cur
		// An improved cell is live again even if it was expanded before,
		// which only happens with an inadmissible heuristic multiplier.
		s.expanded[ni] = false
		s.visited[ni] = true
		s.push(ni)
	}
}

func (s *Stepper) finish(state State) {
	s.state = state
	if state != StatePathFound {
		return
	}
	s.cost = s.g[s.destination]
	if s.destination == s.start {
		s.path = []geom.Coord{geom.ToCoord(s.start, s.width)}
		return
	}

	indices, ok := internal.Backtrack(make([]int, 0, 32), s.solution, s.destination, s.start)
	if !ok {
		s.opts.Logger.Warn("inconsistent solution table, dropping path",
			slog.Int("start", s.start),
			slog.Int("destination", s.destination),
		)
		s.state = StateNoPath
		s.cost = 0
		return
	}
	path := make([]geom.Coord, len(indices))
	for i, cell := range indices {
		path[i] = geom.ToCoord(cell, s.width)
	}
	// Backtrack yields destination first.
	if !s.opts.ReverseOrder {
		slices.Reverse(path)
	}
	s.path = path
}

func (s *Stepper) snapshot() StepSnapshot {
	snapshot := StepSnapshot{
		State:       s.state,
		Done:        s.state != StateSearching,
		Found:       s.state == StatePathFound,
		StepIndex:   s.steps,
		FrontierLen: s.frontier.Len(),
	}
	if s.current >= 0 {
		snapshot.Current = geom.ToCoord(s.current, s.width)
	}
	return snapshot
}

// Run steps until the search is done or ctx is cancelled. The context is
// checked every ctxCheckInterval steps.
func (s *Stepper) Run(ctx context.Context) (StepSnapshot, error) {
	for n := 0; ; n++ {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return s.snapshot(), err
			}
		}
		if snapshot := s.Step(); snapshot.Done {
			return snapshot, nil
		}
	}
}

// Path is the found path, or nil. Cells run from the first step after start to
// the destination, or the other way round with WithReverseOrder. A search
// whose start is its destination yields just that cell.
func (s *Stepper) Path() []geom.Coord { return s.path }

// Cost is the G-score of the destination when a path was found, else 0.
func (s *Stepper) Cost() float64 { return s.cost }

// Visited reports whether c was pushed onto the frontier at least once.
func (s *Stepper) Visited(c geom.Coord) bool { return s.visited[c.Index(s.width)] }

// Expanded reports whether c was expanded and has not improved since.
func (s *Stepper) Expanded(c geom.Coord) bool { return s.expanded[c.Index(s.width)] }

// Score returns the G and F scores of c. Unreached cells score +Inf.
func (s *Stepper) Score(c geom.Coord) (g, f float64) {
	i := c.Index(s.width)
	return s.g[i], s.f[i]
}

// Predecessor returns the cell c was reached from.
func (s *Stepper) Predecessor(c geom.Coord) (geom.Coord, bool) {
	p := s.solution[c.Index(s.width)]
	if p < 0 {
		return geom.Coord{}, false
	}
	return geom.ToCoord(p, s.width), true
}

// Close releases the workspace. Path, Cost and the final snapshot stay
// readable; the per-cell accessors do not.
func (s *Stepper) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.g, s.f, s.solution = nil, nil, nil
	s.visited, s.expanded = nil, nil
	s.entries = nil
	s.frontier.Clear()
	s.frontier.SetWeights(nil)
}
