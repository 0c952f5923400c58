// Package telemetry owns the Prometheus metrics and the OpenTelemetry tracer
// shared by grids, searches and the planner.
//
// Metrics register with the default Prometheus registry on package init. The
// tracer resolves through the global provider, which is a no-op until the
// host process installs one.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

// Tracer is the tracer used for every span this module starts.
var Tracer = otel.Tracer("github.com/pdrpinto/gridastar")

// Search outcomes. Budget exhaustion is kept apart from no-path here even
// though callers see the same empty path for both.
const (
	OutcomeFound           = "found"
	OutcomeNoPath          = "no_path"
	OutcomeBudgetExhausted = "budget_exhausted"
	OutcomeInvalid         = "invalid"
	OutcomeCancelled       = "cancelled"
)

var (
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridastar_search_total",
		Help: "Total A* searches by outcome",
	}, []string{"outcome"})

	searchSteps = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridastar_search_steps",
		Help:    "Frontier expansions per A* search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10), // 1 to ~260k
	})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridastar_search_duration_seconds",
		Help:    "A* search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us to ~2.6s
	})

	gridOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridastar_grid_ops_total",
		Help: "Completed scheduled grid operations by kind",
	}, []string{"op"})

	gridOpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gridastar_grid_op_duration_seconds",
		Help:    "Run time of scheduled grid operations, excluding dependency waits",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	}, []string{"op"})

	plannerJobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridastar_planner_jobs_total",
		Help: "Planner jobs by result (found, empty, shared, error)",
	}, []string{"result"})
)

// ObserveSearch records one finished search.
func ObserveSearch(outcome string, steps int, d time.Duration) {
	searchTotal.WithLabelValues(outcome).Inc()
	searchSteps.Observe(float64(steps))
	searchDuration.Observe(d.Seconds())
}

// ObserveGridOp records one completed grid operation.
func ObserveGridOp(op string, d time.Duration) {
	gridOpsTotal.WithLabelValues(op).Inc()
	gridOpDuration.WithLabelValues(op).Observe(d.Seconds())
}

// ObservePlannerJob records one planner job result.
func ObservePlannerJob(result string) {
	plannerJobsTotal.WithLabelValues(result).Inc()
}

// SearchCount returns the search counter for outcome. Used by tests.
func SearchCount(outcome string) prometheus.Counter {
	return searchTotal.WithLabelValues(outcome)
}

// GridOpCount returns the grid operation counter for op. Used by tests.
func GridOpCount(op string) prometheus.Counter {
	return gridOpsTotal.WithLabelValues(op)
}

// PlannerJobCount returns the planner job counter for result. Used by tests.
func PlannerJobCount(result string) prometheus.Counter {
	return plannerJobsTotal.WithLabelValues(result)
}
