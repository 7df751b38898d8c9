package viz

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/layout"

	"github.com/matsen/citenet/internal/citegraph"
)

// DefaultSeed seeds the spring layout.
const DefaultSeed = 42

// CanvasSize is the width and height of the box layouts are scaled into.
const CanvasSize = 1000.0

// Spring layout parameters.
const (
	eadesUpdates   = 100
	eadesRepulsion = 1
	eadesRate      = 0.05
	eadesTheta     = 0.2
)

// Point is a 2D position in canvas pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Positions maps node names to canvas positions.
type Positions map[string]Point

// Layout computes a force-directed layout of g scaled into a
// CanvasSize x CanvasSize box. The same seed yields the same layout.
func Layout(g *citegraph.Graph, seed uint64) Positions {
	pos := make(Positions, g.Len())
	if g.Len() == 0 {
		return pos
	}

	dg := orderedGraph{g.Directed()}
	eades := layout.EadesR2{
		Updates:   eadesUpdates,
		Repulsion: eadesRepulsion,
		Rate:      eadesRate,
		Theta:     eadesTheta,
		Src:       rand.NewPCG(seed, seed),
	}
	opt := layout.NewOptimizerR2(dg, eades.Update)
	for opt.Update() {
	}

	raw := make([]Point, g.Len())
	for i := range raw {
		c := opt.Coord2(int64(i))
		raw[i] = Point{X: c.X, Y: c.Y}
	}

	for i, p := range normalize(raw) {
		pos[g.NameOf(int64(i))] = p
	}
	return pos
}

// orderedGraph iterates nodes and neighbors in ID order, so the random
// initial placement is assigned to the same nodes on every run.
type orderedGraph struct {
	graph.Graph
}

func (g orderedGraph) Nodes() graph.Nodes {
	return sortedNodes(g.Graph.Nodes())
}

func (g orderedGraph) From(id int64) graph.Nodes {
	return sortedNodes(g.Graph.From(id))
}

func sortedNodes(it graph.Nodes) graph.Nodes {
	nodes := graph.NodesOf(it)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
	return iterator.NewOrderedNodes(nodes)
}

// normalize scales points into the canvas with a margin, keeping aspect ratio.
// A single point, or points that coincide, land at the center.
func normalize(pts []Point) []Point {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	const margin = 0.05 * CanvasSize
	span := math.Max(maxX-minX, maxY-minY)
	out := make([]Point, len(pts))
	if span == 0 || math.IsNaN(span) {
		for i := range out {
			out[i] = Point{X: CanvasSize / 2, Y: CanvasSize / 2}
		}
		return out
	}

	scale := (CanvasSize - 2*margin) / span
	for i, p := range pts {
		out[i] = Point{
			X: margin + (p.X-minX)*scale,
			Y: margin + (p.Y-minY)*scale,
		}
	}
	return out
}
