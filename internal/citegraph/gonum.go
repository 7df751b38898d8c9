package citegraph

import (
	"gonum.org/v1/gonum/graph/simple"
)

// Directed returns a gonum view of g. Node IDs are insertion indices, so
// results keyed by ID map back to names with NameOf.
func (g *Graph) Directed() *simple.DirectedGraph {
	dg := simple.NewDirectedGraph()
	for i := range g.names {
		dg.AddNode(simple.Node(int64(i)))
	}
	for _, e := range g.edges {
		dg.SetEdge(dg.NewEdge(simple.Node(int64(e[0])), simple.Node(int64(e[1]))))
	}
	return dg
}
