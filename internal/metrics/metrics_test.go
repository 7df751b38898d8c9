package metrics

import (
	"errors"
	"testing"

	"github.com/matsen/citenet/internal/citegraph"
	"github.com/matsen/citenet/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/graph/network"
)

func scenarioGraph() *citegraph.Graph {
	return citegraph.Build([]record.Publication{
		{Title: "A", CitedBy: 5},
		{Title: "B", CitedBy: 5},
		{Title: "C", CitedBy: 0},
	})
}

func largerGraph() *citegraph.Graph {
	return citegraph.Build([]record.Publication{
		{Title: "p1", CitedBy: 12}, {Title: "p2", CitedBy: 3}, {Title: "p3", CitedBy: 3},
		{Title: "p4", CitedBy: 0}, {Title: "p5", CitedBy: 1}, {Title: "p6", CitedBy: 3},
		{Title: "p7", CitedBy: 40}, {Title: "p8", CitedBy: 0}, {Title: "p9", CitedBy: 1},
	})
}

func TestDegreeCentrality(t *testing.T) {
	scores, err := DegreeCentrality(scenarioGraph())
	require.NoError(t, err)

	assert.InDelta(t, 1.0/3, scores["A"], 1e-12)
	assert.InDelta(t, 1.0/3, scores["B"], 1e-12)
	assert.InDelta(t, 2.0/3, scores["Cited 5 times"], 1e-12)
	assert.Equal(t, 0.0, scores["C"])
}

func TestDegreeCentrality_InUnitInterval(t *testing.T) {
	scores, err := DegreeCentrality(largerGraph())
	require.NoError(t, err)
	for node, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0, node)
		assert.LessOrEqual(t, s, 1.0, node)
	}
}

func TestDegreeCentrality_Degenerate(t *testing.T) {
	scores, err := DegreeCentrality(citegraph.Build(nil))
	require.NoError(t, err)
	assert.Empty(t, scores)

	scores, err = DegreeCentrality(citegraph.Build([]record.Publication{{Title: "solo"}}))
	require.Error(t, err)
	assert.True(t, IsDegenerate(err))
	var derr *DegenerateGraphError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, 1, derr.Nodes)
	assert.Empty(t, scores)
}

func TestEigenvectorCentrality_ScenarioConverges(t *testing.T) {
	scores, err := EigenvectorCentrality(scenarioGraph())
	require.NoError(t, err)

	assert.Equal(t, scores["A"], scores["B"])
	assert.Equal(t, scores["C"], scores["Cited 5 times"])
	assert.InDelta(t, 0.7071058, scores["A"], 1e-6)
	assert.InDelta(t, 0.0011864, scores["C"], 1e-6)
}

func TestEigenvectorCentrality_NotConverged(t *testing.T) {
	scores, err := EigenvectorCentrality(scenarioGraph(), WithMaxIter(5))
	require.Error(t, err)
	assert.Nil(t, scores)
	assert.True(t, IsConvergence(err))

	var cerr *ConvergenceError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, MetricEigenvector, cerr.Metric)
	assert.Equal(t, 5, cerr.Iterations)
}

func TestEigenvectorCentrality_IsolatedOnly(t *testing.T) {
	g := citegraph.Build([]record.Publication{{Title: "x"}, {Title: "y"}})
	scores, err := EigenvectorCentrality(g)
	require.NoError(t, err)
	assert.InDelta(t, 0.7071068, scores["x"], 1e-6)
	assert.InDelta(t, scores["x"], scores["y"], 1e-12)
}

func TestBetweennessCentrality(t *testing.T) {
	// Bucket edges never chain, so no node lies between two others.
	scores := BetweennessCentrality(largerGraph())
	assert.Len(t, scores, largerGraph().Len())
	for node, s := range scores {
		assert.Equal(t, 0.0, s, node)
	}

	assert.Empty(t, BetweennessCentrality(citegraph.Build(nil)))
}

func TestBetweennessCentrality_Chain(t *testing.T) {
	// A title equal to a bucket label chains "Cited 3 times" -> "Cited 5 times" -> A.
	g := citegraph.Build([]record.Publication{
		{Title: "Cited 5 times", CitedBy: 3},
		{Title: "A", CitedBy: 5},
	})
	require.Equal(t, 3, g.Len())

	scores := BetweennessCentrality(g)
	assert.InDelta(t, 0.5, scores["Cited 5 times"], 1e-12)
	assert.InDelta(t, 0.0, scores["Cited 3 times"], 1e-12)
	assert.InDelta(t, 0.0, scores["A"], 1e-12)
}

func TestPageRank_Scenario(t *testing.T) {
	scores, err := PageRank(scenarioGraph())
	require.NoError(t, err)

	// Closed form with uniform dangling redistribution and damping 0.85.
	c := 0.25 / 1.2125
	a := (1 - 2*c) / 2
	assert.InDelta(t, a, scores["A"], 1e-5)
	assert.InDelta(t, a, scores["B"], 1e-5)
	assert.InDelta(t, c, scores["C"], 1e-5)
	assert.InDelta(t, c, scores["Cited 5 times"], 1e-5)
}

func TestPageRank_SumsToOne(t *testing.T) {
	for _, g := range []*citegraph.Graph{scenarioGraph(), largerGraph()} {
		scores, err := PageRank(g)
		require.NoError(t, err)

		var sum float64
		for _, s := range scores {
			sum += s
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestPageRank_Deterministic(t *testing.T) {
	g := largerGraph()
	first, err := PageRank(g)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := PageRank(g)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestPageRank_MatchesGonum(t *testing.T) {
	g := largerGraph()
	scores, err := PageRank(g, WithTolerance(1e-12), WithMaxIter(1000))
	require.NoError(t, err)

	ref := network.PageRank(g.Directed(), DefaultDamping, 1e-12)
	for id, want := range ref {
		assert.InDelta(t, want, scores[g.NameOf(id)], 1e-6, g.NameOf(id))
	}
}

func TestPageRank_NotConverged(t *testing.T) {
	_, err := PageRank(largerGraph(), WithMaxIter(1))
	require.Error(t, err)
	assert.True(t, IsConvergence(err))
}

func TestCompute_EmptyGraph(t *testing.T) {
	result := Compute(citegraph.Build(nil), DefaultConfig(), nil)

	require.Len(t, result.Metrics, len(Names))
	for _, m := range result.Metrics {
		assert.True(t, m.OK(), m.Name)
		assert.Empty(t, m.Scores, m.Name)
	}
	assert.Equal(t, 0.0, result.Degrees.MeanIn)
	assert.Equal(t, 0.0, result.Degrees.MeanOut)
}

func TestCompute_IsolatesFailures(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	cfg := DefaultConfig()
	cfg.EigenMaxIter = 3

	result := Compute(scenarioGraph(), cfg, zap.New(core))

	eig, ok := result.Metric(MetricEigenvector)
	require.True(t, ok)
	assert.False(t, eig.OK())
	assert.True(t, IsConvergence(eig.Err))

	for _, name := range []Name{MetricDegree, MetricBetweenness, MetricPageRank} {
		m, ok := result.Metric(name)
		require.True(t, ok)
		assert.True(t, m.OK(), name)
		assert.Len(t, m.Scores, 4, name)
	}

	assert.Equal(t, 1, logs.FilterMessage("metric failed").Len())
	assert.InDelta(t, 0.5, result.Degrees.MeanIn, 1e-12)
}

func TestResult_MetricUnknown(t *testing.T) {
	r := &Result{}
	_, ok := r.Metric(MetricDegree)
	assert.False(t, ok)
}
