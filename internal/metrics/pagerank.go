package metrics

import (
	"github.com/matsen/citenet/internal/citegraph"
	"gonum.org/v1/gonum/floats"
)

// PageRank computes the damped random-walk stationary distribution.
//
// Dangling nodes (out-degree 0, which includes every paper node) spread their
// rank uniformly over all nodes, and teleportation is uniform. Nodes are
// visited in graph insertion order, so the result is deterministic for a
// given graph. Scores sum to 1.
func PageRank(g *citegraph.Graph, opts ...Option) (Scores, error) {
	o := applyOptions(IterOptions{
		MaxIter:   DefaultPageRankMaxIter,
		Tolerance: DefaultTolerance,
		Damping:   DefaultDamping,
	}, opts)

	n := g.Len()
	if n == 0 {
		return Scores{}, nil
	}

	uniform := 1 / float64(n)
	x := make([]float64, n)
	floats.AddConst(uniform, x)
	next := make([]float64, n)

	var dangling []int
	for i := 0; i < n; i++ {
		if len(g.SuccessorIndices(i)) == 0 {
			dangling = append(dangling, i)
		}
	}

	for iter := 0; iter < o.MaxIter; iter++ {
		danglingMass := 0.0
		for _, i := range dangling {
			danglingMass += x[i]
		}

		for j := range next {
			next[j] = 0
		}
		for i := 0; i < n; i++ {
			succ := g.SuccessorIndices(i)
			if len(succ) == 0 {
				continue
			}
			share := x[i] / float64(len(succ))
			for _, j := range succ {
				next[j] += share
			}
		}
		for j := range next {
			next[j] = o.Damping*(next[j]+danglingMass*uniform) + (1-o.Damping)*uniform
		}

		err := floats.Distance(next, x, 1)
		x, next = next, x
		if err < float64(n)*o.Tolerance {
			scores := make(Scores, n)
			for i, name := range g.Nodes() {
				scores[name] = x[i]
			}
			return scores, nil
		}
	}

	return nil, &ConvergenceError{Metric: MetricPageRank, Iterations: o.MaxIter, Tolerance: o.Tolerance}
}
