package gridastar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pdrpinto/gridastar/geom"
	"github.com/pdrpinto/gridastar/grid"
	"github.com/pdrpinto/gridastar/internal/telemetry"
)

// ErrInvalidRequest is wrapped by every error returned for a malformed search
// request or option set. An unreachable destination is not an error.
var ErrInvalidRequest = errors.New("invalid path request")

func newInvalidRequestError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// Result contains the outcome of a search.
type Result struct {
	// Path runs from the first cell after start to the destination. It is
	// empty when the destination is unreachable or the step budget ran out.
	Path          []geom.Coord
	Cost          float64
	ExpandedNodes int
	Found         bool
}

// Options defines parameters for the search.
type Options struct {
	// HMultiplier scales the heuristic. Values above 1 trade optimality for
	// fewer expansions.
	HMultiplier float64
	// CostSensitivity scales how much a cell's normalized movement cost adds
	// to the base step cost of 1.
	CostSensitivity float64
	// StepBudget caps the number of expansions.
	StepBudget          int
	ReverseOrder        bool
	NormalizedHeuristic bool
	// NumberOfWorkers bounds how many searches a Planner runs at once.
	NumberOfWorkers int
	Logger          *slog.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

func WithHMultiplier(multiplier float64) Option {
	return func(options *Options) { options.HMultiplier = multiplier }
}

func WithCostSensitivity(sensitivity float64) Option {
	return func(options *Options) { options.CostSensitivity = sensitivity }
}

// WithStepBudget caps expansions. A budget of 0 only finds a path when start
// is the destination.
func WithStepBudget(budget int) Option {
	return func(options *Options) { options.StepBudget = budget }
}

// WithReverseOrder returns paths destination first.
func WithReverseOrder() Option {
	return func(options *Options) { options.ReverseOrder = true }
}

// WithNormalizedHeuristic divides the Euclidean estimate by the grid diagonal.
func WithNormalizedHeuristic() Option {
	return func(options *Options) { options.NormalizedHeuristic = true }
}

// WithWorkers specifies how many searches a Planner runs concurrently.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

func defaultOptions() Options {
	return Options{
		HMultiplier:     1,
		CostSensitivity: 1,
		StepBudget:      math.MaxInt,
		NumberOfWorkers: runtime.NumCPU(),
		Logger:          slog.Default(),
	}
}

func buildOptions(options []Option) Options {
	searchOptions := defaultOptions()
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.Default()
	}
	return searchOptions
}

func (o Options) validate() error {
	switch {
	case math.IsNaN(o.HMultiplier) || o.HMultiplier < 0:
		return newInvalidRequestError("heuristic multiplier %v must be >= 0", o.HMultiplier)
	case math.IsNaN(o.CostSensitivity) || o.CostSensitivity < 0:
		return newInvalidRequestError("cost sensitivity %v must be >= 0", o.CostSensitivity)
	case o.StepBudget < 0:
		return newInvalidRequestError("step budget %d must be >= 0", o.StepBudget)
	case o.NumberOfWorkers <= 0:
		return newInvalidRequestError("worker count %d must be positive", o.NumberOfWorkers)
	}
	return nil
}

// Search runs A* from start to destination over a row-major cost buffer of
// the given width and returns the path with its cost.
//
// Costs are bytes where Impassable blocks a cell. Moving onto a cell costs
// (1 + cost/255*sensitivity), times √2 for a diagonal move. An unreachable
// destination and an exhausted step budget both yield an empty path and a
// nil error. Cancelling ctx stops the search with ctx.Err().
func Search(
	ctx context.Context,
	moveCost []byte,
	width int,
	start geom.Coord,
	destination geom.Coord,
	options ...Option,
) (Result, error) {
	return search(ctx, moveCost, width, start, destination, buildOptions(options))
}

// FindPath is Search returning only the path.
func FindPath(
	ctx context.Context,
	moveCost []byte,
	width int,
	start geom.Coord,
	destination geom.Coord,
	options ...Option,
) ([]geom.Coord, error) {
	result, err := Search(ctx, moveCost, width, start, destination, options...)
	return result.Path, err
}

// FindPathOnGrid waits for pending jobs on costs and searches its buffer.
// The caller must not schedule jobs on costs until FindPathOnGrid returns.
func FindPathOnGrid(
	ctx context.Context,
	costs *grid.Grid[byte],
	start geom.Coord,
	destination geom.Coord,
	options ...Option,
) ([]geom.Coord, error) {
	if err := costs.Wait(ctx); err != nil {
		return nil, err
	}
	return FindPath(ctx, costs.Values(), costs.Width(), start, destination, options...)
}

func search(
	ctx context.Context,
	moveCost []byte,
	width int,
	start geom.Coord,
	destination geom.Coord,
	opts Options,
) (Result, error) {
	ctx, span := telemetry.Tracer.Start(ctx, "gridastar.Search", trace.WithAttributes(
		attribute.Int("grid.width", width),
		attribute.Int("grid.cells", len(moveCost)),
		attribute.String("search.start", start.String()),
		attribute.String("search.destination", destination.String()),
	))
	defer span.End()
	began := time.Now()

	stepper, err := newStepper(moveCost, width, start, destination, opts)
	if err != nil {
		telemetry.ObserveSearch(telemetry.OutcomeInvalid, 0, time.Since(began))
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		return Result{}, err
	}
	defer stepper.Close()

	snapshot, err := stepper.Run(ctx)
	if err != nil {
		telemetry.ObserveSearch(telemetry.OutcomeCancelled, snapshot.StepIndex, time.Since(began))
		span.RecordError(err)
		span.SetStatus(codes.Error, "search cancelled")
		return Result{ExpandedNodes: snapshot.StepIndex}, err
	}

	outcome := outcomeOf(snapshot.State)
	elapsed := time.Since(began)
	telemetry.ObserveSearch(outcome, snapshot.StepIndex, elapsed)
	span.SetAttributes(
		attribute.String("search.outcome", outcome),
		attribute.Int("search.steps", snapshot.StepIndex),
	)
	opts.Logger.Debug("search finished",
		slog.String("start", start.String()),
		slog.String("destination", destination.String()),
		slog.String("outcome", outcome),
		slog.Int("steps", snapshot.StepIndex),
		slog.Int("path_len", len(stepper.Path())),
		slog.Duration("elapsed", elapsed),
	)

	return Result{
		Path:          stepper.Path(),
		Cost:          stepper.Cost(),
		ExpandedNodes: snapshot.StepIndex,
		Found:         snapshot.Found,
	}, nil
}

func outcomeOf(state State) string {
	switch state {
	case StatePathFound:
		return telemetry.OutcomeFound
	case StateBudgetExhausted:
		return telemetry.OutcomeBudgetExhausted
	}
	return telemetry.OutcomeNoPath
}
