package metrics

import (
	"github.com/matsen/citenet/internal/citegraph"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/mat"
)

// DegreeCentrality returns (in-degree + out-degree) / (|V| - 1) per node.
// An empty graph yields empty scores; a single node is a DegenerateGraphError.
func DegreeCentrality(g *citegraph.Graph) (Scores, error) {
	n := g.Len()
	scores := make(Scores, n)
	if n == 0 {
		return scores, nil
	}
	if n == 1 {
		return scores, &DegenerateGraphError{Metric: MetricDegree, Nodes: n}
	}

	s := 1 / float64(n-1)
	for _, name := range g.Nodes() {
		scores[name] = float64(g.InDegree(name)+g.OutDegree(name)) * s
	}
	return scores, nil
}

// EigenvectorCentrality computes in-edge eigenvector centrality by power
// iteration on (A^T + I), starting from the uniform vector and normalizing to
// unit L2 norm after every step. It converges when the L1 change between
// steps drops below |V| * tolerance and otherwise returns a ConvergenceError.
func EigenvectorCentrality(g *citegraph.Graph, opts ...Option) (Scores, error) {
	o := applyOptions(IterOptions{MaxIter: DefaultEigenMaxIter, Tolerance: DefaultTolerance}, opts)

	n := g.Len()
	if n == 0 {
		return Scores{}, nil
	}

	x := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x.SetVec(i, 1/float64(n))
	}
	xlast := mat.NewVecDense(n, nil)
	diff := mat.NewVecDense(n, nil)

	for iter := 0; iter < o.MaxIter; iter++ {
		xlast.CopyVec(x)
		for i := 0; i < n; i++ {
			for _, j := range g.SuccessorIndices(i) {
				x.SetVec(j, x.AtVec(j)+xlast.AtVec(i))
			}
		}

		norm := mat.Norm(x, 2)
		if norm == 0 {
			norm = 1
		}
		x.ScaleVec(1/norm, x)

		diff.SubVec(x, xlast)
		if mat.Norm(diff, 1) < float64(n)*o.Tolerance {
			return scoresFromVec(g, x), nil
		}
	}

	return nil, &ConvergenceError{Metric: MetricEigenvector, Iterations: o.MaxIter, Tolerance: o.Tolerance}
}

// BetweennessCentrality computes shortest-path betweenness with Brandes'
// algorithm. Scores are normalized by 1/((n-1)(n-2)), the directed-graph
// factor, when n > 2 and left unnormalized otherwise. Every node is present.
func BetweennessCentrality(g *citegraph.Graph) Scores {
	n := g.Len()
	scores := make(Scores, n)
	for _, name := range g.Nodes() {
		scores[name] = 0
	}
	if n == 0 {
		return scores
	}

	scale := 1.0
	if n > 2 {
		scale = 1 / float64((n-1)*(n-2))
	}
	for id, cb := range network.Betweenness(g.Directed()) {
		scores[g.NameOf(id)] = cb * scale
	}
	return scores
}

func scoresFromVec(g *citegraph.Graph, x mat.Vector) Scores {
	scores := make(Scores, x.Len())
	for i, name := range g.Nodes() {
		scores[name] = x.AtVec(i)
	}
	return scores
}
