package metrics

import (
	"errors"
	"fmt"
)

// Errors returned by centrality computations.
var (
	// ErrNotConverged indicates a power iteration hit its iteration limit.
	ErrNotConverged = errors.New("power iteration failed to converge")

	// ErrDegenerateGraph indicates the graph is too small for the metric's definition.
	ErrDegenerateGraph = errors.New("degenerate graph")
)

// ConvergenceError reports a metric whose iteration did not converge.
type ConvergenceError struct {
	Metric     Name
	Iterations int
	Tolerance  float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s: %v in %d iterations (tolerance %g)", e.Metric, ErrNotConverged, e.Iterations, e.Tolerance)
}

func (e *ConvergenceError) Unwrap() error {
	return ErrNotConverged
}

// DegenerateGraphError reports a metric that needs more nodes than the graph has.
type DegenerateGraphError struct {
	Metric Name
	Nodes  int
}

func (e *DegenerateGraphError) Error() string {
	return fmt.Sprintf("%s: %v: %d node(s)", e.Metric, ErrDegenerateGraph, e.Nodes)
}

func (e *DegenerateGraphError) Unwrap() error {
	return ErrDegenerateGraph
}

// IsConvergence returns true if err reports a non-converged iteration.
func IsConvergence(err error) bool {
	return errors.Is(err, ErrNotConverged)
}

// IsDegenerate returns true if err reports a graph too small for the metric.
func IsDegenerate(err error) bool {
	return errors.Is(err, ErrDegenerateGraph)
}
