package gridastar

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/pdrpinto/gridastar/geom"
	"github.com/pdrpinto/gridastar/internal/telemetry"
)

// Job is one path request handed to a Planner. An empty ID is replaced by a
// generated one.
type Job struct {
	ID          string
	Start       geom.Coord
	Destination geom.Coord
}

// JobResult is the answer to one Job. Err is set only for a malformed job;
// an unreachable destination is an empty Result.Path.
type JobResult struct {
	Job    Job
	Result Result
	// Shared is true when the result was computed once for several identical
	// jobs running at the same time.
	Shared bool
	Err    error
}

// Planner runs many independent searches against one read-only cost buffer.
// Each search is single-threaded; the planner bounds how many run at once and
// coalesces identical in-flight requests.
type Planner struct {
	moveCost []byte
	width    int
	opts     Options
	inflight singleflight.Group
}

// NewPlanner validates the buffer shape and options. The buffer must not be
// written while a Plan call is running.
func NewPlanner(moveCost []byte, width int, options ...Option) (*Planner, error) {
	if width <= 0 || len(moveCost) == 0 || len(moveCost)%width != 0 {
		return nil, newInvalidRequestError("cost buffer length %d does not fit width %d", len(moveCost), width)
	}
	plannerOptions := buildOptions(options)
	if err := plannerOptions.validate(); err != nil {
		return nil, err
	}
	return &Planner{moveCost: moveCost, width: width, opts: plannerOptions}, nil
}

// Plan runs every job and returns results in input order. A malformed job
// records its error in its JobResult and does not stop the batch; a cancelled
// ctx stops the batch and is returned.
func (p *Planner) Plan(ctx context.Context, jobs []Job) ([]JobResult, error) {
	batchID := uuid.NewString()
	ctx, span := telemetry.Tracer.Start(ctx, "gridastar.Planner.Plan", trace.WithAttributes(
		attribute.String("batch.id", batchID),
		attribute.Int("batch.jobs", len(jobs)),
		attribute.Int("batch.workers", p.opts.NumberOfWorkers),
	))
	defer span.End()
	began := time.Now()

	results := make([]JobResult, len(jobs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.opts.NumberOfWorkers)

	for i, job := range jobs {
		if job.ID == "" {
			job.ID = uuid.NewString()
		}
		group.Go(func() error {
			result, shared, err := p.run(groupCtx, job)
			if err != nil && !errors.Is(err, ErrInvalidRequest) {
				return err
			}
			results[i] = JobResult{Job: job, Result: result, Shared: shared, Err: err}
			telemetry.ObservePlannerJob(jobLabel(results[i]))
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch aborted")
		p.opts.Logger.Warn("batch aborted",
			slog.String("batch_id", batchID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	p.opts.Logger.Debug("batch finished",
		slog.String("batch_id", batchID),
		slog.Int("jobs", len(jobs)),
		slog.Duration("elapsed", time.Since(began)),
	)
	return results, nil
}

func (p *Planner) run(ctx context.Context, job Job) (Result, bool, error) {
	key := job.Start.String() + ">" + job.Destination.String()
	value, err, shared := p.inflight.Do(key, func() (any, error) {
		return search(ctx, p.moveCost, p.width, job.Start, job.Destination, p.opts)
	})
	result, _ := value.(Result)
	if shared {
		// Each caller gets its own path slice.
		result.Path = slices.Clone(result.Path)
	}
	return result, shared, err
}

func jobLabel(r JobResult) string {
	switch {
	case r.Err != nil:
		return "error"
	case r.Shared:
		return "shared"
	case r.Result.Found:
		return "found"
	}
	return "empty"
}
