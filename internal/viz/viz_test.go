package viz

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matsen/citenet/internal/citegraph"
	"github.com/matsen/citenet/internal/metrics"
	"github.com/matsen/citenet/internal/record"
)

func scenarioGraph() *citegraph.Graph {
	return citegraph.Build([]record.Publication{
		{Title: "A", CitedBy: 5},
		{Title: "B", CitedBy: 5},
		{Title: "C", CitedBy: 0},
	})
}

func TestLayout_DeterministicAndInCanvas(t *testing.T) {
	g := scenarioGraph()

	first := Layout(g, DefaultSeed)
	second := Layout(g, DefaultSeed)
	require.Len(t, first, g.Len())
	assert.Equal(t, first, second)

	for name, p := range first {
		assert.True(t, p.X >= 0 && p.X <= CanvasSize, "x of %s out of canvas: %v", name, p.X)
		assert.True(t, p.Y >= 0 && p.Y <= CanvasSize, "y of %s out of canvas: %v", name, p.Y)
	}
}

func TestLayout_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, Layout(citegraph.New(), DefaultSeed))

	single := citegraph.Build([]record.Publication{{Title: "Only", CitedBy: 0}})
	pos := Layout(single, DefaultSeed)
	assert.Equal(t, Point{X: CanvasSize / 2, Y: CanvasSize / 2}, pos["Only"])
}

func TestNormalize(t *testing.T) {
	out := normalize([]Point{{X: -1, Y: 0}, {X: 1, Y: 0}})
	assert.InDelta(t, 50, out[0].X, 1e-9)
	assert.InDelta(t, 950, out[1].X, 1e-9)
	assert.InDelta(t, 50, out[0].Y, 1e-9)
}

func TestNewGraphData(t *testing.T) {
	g := scenarioGraph()
	scores := metrics.Scores{"A": 1.0 / 3, citegraph.BucketLabel(5): 2.0 / 3}
	data := NewGraphData(g, Positions{"A": {X: 1, Y: 2}}, scores, "Cited 5 times")

	require.Len(t, data.Nodes, 4)
	assert.Equal(t, Node{
		ID: "n0", Type: "paper", Label: "A", Name: "A",
		InDegree: 1, Score: 1.0 / 3, Position: Point{X: 1, Y: 2},
	}, data.Nodes[0])
	assert.Equal(t, "bucket", data.Nodes[1].Type)
	assert.True(t, data.Nodes[1].Center)
	assert.Equal(t, 2, data.Nodes[1].OutDegree)

	assert.Equal(t, []Edge{{Source: "n1", Target: "n0"}, {Source: "n1", Target: "n2"}}, data.Edges)
}

func TestNewGraphData_TruncatesLabels(t *testing.T) {
	long := strings.Repeat("x", 100)
	g := citegraph.Build([]record.Publication{{Title: long, CitedBy: 0}})
	data := NewGraphData(g, nil, nil, "")
	assert.Equal(t, LabelMaxLen, len([]rune(data.Nodes[0].Label)))
	assert.Equal(t, long, data.Nodes[0].Name)
}

func TestToCytoscapeJSON(t *testing.T) {
	g := scenarioGraph()
	data := NewGraphData(g, Layout(g, DefaultSeed), nil, "")

	out, err := data.ToCytoscapeJSON()
	require.NoError(t, err)

	var elements CytoscapeElements
	require.NoError(t, json.Unmarshal([]byte(out), &elements))
	assert.Len(t, elements.Nodes, 4)
	assert.Len(t, elements.Edges, 2)
	assert.Equal(t, "n1-n0-0", elements.Edges[0].Data.ID)
	assert.Contains(t, out, `"position":{"x":`)
}

func TestNetworkHTML(t *testing.T) {
	g := scenarioGraph()
	html, err := NetworkHTML(g, Layout(g, DefaultSeed), HTMLOptions{Title: "Citation Network of <Two> Authors"})
	require.NoError(t, err)

	assert.Contains(t, html, CytoscapeCDN)
	assert.Contains(t, html, "name: 'preset'")
	assert.Contains(t, html, "Citation Network of &lt;Two&gt; Authors")
	assert.Contains(t, html, `"name":"Cited 5 times"`)

	_, err = NetworkHTML(nil, nil, HTMLOptions{})
	assert.Error(t, err)
}

func TestNetworkHTML_Empty(t *testing.T) {
	html, err := NetworkHTML(citegraph.New(), nil, HTMLOptions{})
	require.NoError(t, err)
	assert.Contains(t, html, "No graph data")
	assert.NotContains(t, html, CytoscapeCDN)
}

func TestEgoHTML(t *testing.T) {
	g := scenarioGraph()

	html, err := EgoHTML(g, "Cited 5 times", DefaultSeed, HTMLOptions{})
	require.NoError(t, err)
	assert.Contains(t, html, "Ego-Centric Network of &#39;Cited 5 times&#39;")
	assert.Contains(t, html, `"center":true`)
	assert.NotContains(t, html, `"name":"C"`)

	_, err = EgoHTML(g, "missing", DefaultSeed, HTMLOptions{})
	assert.ErrorIs(t, err, citegraph.ErrNodeNotFound)
}

func TestDegreeChartsHTML(t *testing.T) {
	html, err := DegreeChartsHTML(scenarioGraph().Degrees(), 0)
	require.NoError(t, err)

	assert.Contains(t, html, ChartJSCDN)
	assert.Contains(t, html, "Log-Log Distribution of In-degree")
	assert.Contains(t, html, "Average in-degree: 0.5000")
	// Only the bucket has positive out-degree
	assert.Contains(t, html, `"outRank":[{"x":1,"y":2}]`)
}

func TestDegreeChartsHTML_Empty(t *testing.T) {
	html, err := DegreeChartsHTML(citegraph.New().Degrees(), DefaultBins)
	require.NoError(t, err)
	assert.Contains(t, html, `"inHist":{"labels":[],"counts":[]}`)
}

func TestRankPoints(t *testing.T) {
	assert.Equal(t, []rankPoint{{X: 1, Y: 3}, {X: 2, Y: 1}}, rankPoints([]int{3, 1, 0, 0}))
}

func TestRender(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	written, err := Render(dir, scenarioGraph(), "Cited 5 times", RenderOptions{Seed: DefaultSeed, Bins: 5})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, NetworkFile),
		filepath.Join(dir, EgoFile),
		filepath.Join(dir, DegreesFile),
	}, written)
	for _, path := range written {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestRender_NoCenter(t *testing.T) {
	dir := t.TempDir()
	written, err := Render(dir, citegraph.New(), "", RenderOptions{})
	require.NoError(t, err)
	assert.Len(t, written, 2)
	assert.NoFileExists(t, filepath.Join(dir, EgoFile))
}
