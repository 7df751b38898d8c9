// Package metrics computes centrality measures over a citation graph.
//
// Every computation is read-only and independent of the others. A failing
// metric (for example a power iteration that does not converge) is reported
// in its own MetricResult and never prevents the other metrics from running.
package metrics

import (
	"time"

	"github.com/matsen/citenet/internal/citegraph"
	"go.uber.org/zap"
)

// Name identifies a metric.
type Name string

const (
	MetricDegree      Name = "degree"
	MetricEigenvector Name = "eigenvector"
	MetricBetweenness Name = "betweenness"
	MetricPageRank    Name = "pagerank"
)

// Names lists the metrics in report order.
var Names = []Name{MetricDegree, MetricEigenvector, MetricBetweenness, MetricPageRank}

// Scores maps node names to a metric value.
type Scores map[string]float64

// Defaults for the iterative metrics.
const (
	DefaultDamping         = 0.85
	DefaultTolerance       = 1e-6
	DefaultEigenMaxIter    = 1000
	DefaultPageRankMaxIter = 100
)

// IterOptions configures an iterative metric.
type IterOptions struct {
	MaxIter   int
	Tolerance float64
	Damping   float64 // PageRank only
}

// Option configures an iterative metric.
type Option func(*IterOptions)

// WithMaxIter sets the iteration limit.
func WithMaxIter(n int) Option {
	return func(o *IterOptions) {
		o.MaxIter = n
	}
}

// WithTolerance sets the per-node convergence tolerance.
func WithTolerance(tol float64) Option {
	return func(o *IterOptions) {
		o.Tolerance = tol
	}
}

// WithDamping sets the PageRank damping factor.
func WithDamping(d float64) Option {
	return func(o *IterOptions) {
		o.Damping = d
	}
}

func applyOptions(o IterOptions, opts []Option) IterOptions {
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Config holds the parameters Compute passes to each metric.
type Config struct {
	Damping         float64
	Tolerance       float64
	EigenMaxIter    int
	PageRankMaxIter int
}

// DefaultConfig returns the standard parameters.
func DefaultConfig() Config {
	return Config{
		Damping:         DefaultDamping,
		Tolerance:       DefaultTolerance,
		EigenMaxIter:    DefaultEigenMaxIter,
		PageRankMaxIter: DefaultPageRankMaxIter,
	}
}

// MetricResult is the outcome of one metric.
type MetricResult struct {
	Name   Name
	Scores Scores
	Err    error
}

// OK reports whether the metric computed successfully.
func (m MetricResult) OK() bool {
	return m.Err == nil
}

// Result bundles all metrics computed over one graph.
type Result struct {
	Graph   *citegraph.Graph
	Metrics []MetricResult
	Degrees citegraph.DegreeDistribution
}

// Metric returns the result for a metric name.
func (r *Result) Metric(name Name) (MetricResult, bool) {
	for _, m := range r.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return MetricResult{}, false
}

// Compute runs every metric over g. Failures are recorded per metric.
func Compute(g *citegraph.Graph, cfg Config, log *zap.Logger) *Result {
	if log == nil {
		log = zap.NewNop()
	}

	runs := []struct {
		name Name
		fn   func() (Scores, error)
	}{
		{MetricDegree, func() (Scores, error) { return DegreeCentrality(g) }},
		{MetricEigenvector, func() (Scores, error) {
			return EigenvectorCentrality(g, WithMaxIter(cfg.EigenMaxIter), WithTolerance(cfg.Tolerance))
		}},
		{MetricBetweenness, func() (Scores, error) { return BetweennessCentrality(g), nil }},
		{MetricPageRank, func() (Scores, error) {
			return PageRank(g, WithDamping(cfg.Damping), WithMaxIter(cfg.PageRankMaxIter), WithTolerance(cfg.Tolerance))
		}},
	}

	result := &Result{Graph: g, Degrees: g.Degrees()}
	for _, run := range runs {
		start := time.Now()
		scores, err := run.fn()
		if err != nil {
			log.Warn("metric failed", zap.String("metric", string(run.name)), zap.Error(err))
		} else {
			log.Debug("metric computed",
				zap.String("metric", string(run.name)),
				zap.Int("nodes", len(scores)),
				zap.Duration("elapsed", time.Since(start)),
			)
		}
		result.Metrics = append(result.Metrics, MetricResult{Name: run.name, Scores: scores, Err: err})
	}
	return result
}
