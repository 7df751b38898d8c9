// Package citegraph builds the citation-proxy graph from publication records.
//
// The scraped data carries only an aggregate citation count per paper, not the
// identities of citing papers. The graph therefore links a synthetic bucket
// node "Cited N times" to every paper that received exactly N citations, so
// papers with equal counts share an in-neighbor. Papers with zero citations
// are isolated nodes.
package citegraph

import (
	"errors"
	"fmt"

	"github.com/matsen/citenet/internal/record"
)

// ErrNodeNotFound is returned when a node name is not part of the graph.
var ErrNodeNotFound = errors.New("node not found")

// Kind distinguishes paper nodes from bucket nodes.
type Kind string

const (
	KindPaper  Kind = "paper"
	KindBucket Kind = "bucket"
)

// Edge is a directed bucket -> paper edge.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is a directed graph with string-named nodes kept in insertion order.
// It is not safe for concurrent mutation, but it is never mutated after Build.
type Graph struct {
	names []string
	kinds []Kind
	index map[string]int

	out [][]int
	in  [][]int

	edgeSet map[[2]int]struct{}
	edges   [][2]int

	duplicates int // records whose title was already a paper node
}

// BucketLabel returns the node name for papers cited exactly n times.
func BucketLabel(n int) string {
	return fmt.Sprintf("Cited %d times", n)
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		index:   make(map[string]int),
		edgeSet: make(map[[2]int]struct{}),
	}
}

// Build constructs the citation-proxy graph. For every record a paper node is
// ensured; when CitedBy > 0 the bucket node for that count is ensured and an
// edge bucket -> paper added. Adding an existing node or edge is a no-op.
func Build(records []record.Publication) *Graph {
	g := New()
	for _, r := range records {
		if i, ok := g.index[r.Title]; ok && g.kinds[i] == KindPaper {
			g.duplicates++
		}
		title := g.addNode(r.Title, KindPaper)
		if r.CitedBy > 0 {
			bucket := g.addNode(BucketLabel(r.CitedBy), KindBucket)
			g.addEdge(bucket, title)
		}
	}
	return g
}

// addNode inserts name if absent and returns its index.
func (g *Graph) addNode(name string, kind Kind) int {
	if i, ok := g.index[name]; ok {
		return i
	}
	i := len(g.names)
	g.names = append(g.names, name)
	g.kinds = append(g.kinds, kind)
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	g.index[name] = i
	return i
}

// addEdge inserts from -> to if absent.
func (g *Graph) addEdge(from, to int) {
	key := [2]int{from, to}
	if _, ok := g.edgeSet[key]; ok {
		return
	}
	g.edgeSet[key] = struct{}{}
	g.edges = append(g.edges, key)
	g.out[from] = append(g.out[from], to)
	g.in[to] = append(g.in[to], from)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.names)
}

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// DuplicateTitles returns how many input records named an existing paper.
// Duplicate titles collapse into one node; this counts the collapses.
func (g *Graph) DuplicateTitles() int {
	return g.duplicates
}

// Nodes returns node names in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	for i, e := range g.edges {
		out[i] = Edge{From: g.names[e[0]], To: g.names[e[1]]}
	}
	return out
}

// HasNode reports whether name is a node.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.index[name]
	return ok
}

// HasEdge reports whether from -> to is an edge.
func (g *Graph) HasEdge(from, to string) bool {
	i, ok := g.index[from]
	if !ok {
		return false
	}
	j, ok := g.index[to]
	if !ok {
		return false
	}
	_, ok = g.edgeSet[[2]int{i, j}]
	return ok
}

// Kind returns the kind of a node and whether it exists.
func (g *Graph) Kind(name string) (Kind, bool) {
	i, ok := g.index[name]
	if !ok {
		return "", false
	}
	return g.kinds[i], true
}

// IDOf returns the insertion index of a node, which is also its gonum node ID.
func (g *Graph) IDOf(name string) (int64, bool) {
	i, ok := g.index[name]
	return int64(i), ok
}

// NameOf returns the node name for a gonum node ID.
func (g *Graph) NameOf(id int64) string {
	return g.names[id]
}

// InDegree returns the in-degree of a node, or 0 if absent.
func (g *Graph) InDegree(name string) int {
	i, ok := g.index[name]
	if !ok {
		return 0
	}
	return len(g.in[i])
}

// OutDegree returns the out-degree of a node, or 0 if absent.
func (g *Graph) OutDegree(name string) int {
	i, ok := g.index[name]
	if !ok {
		return 0
	}
	return len(g.out[i])
}

// Successors returns the out-neighbors of a node in edge insertion order.
func (g *Graph) Successors(name string) []string {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	return g.namesOf(g.out[i])
}

// Predecessors returns the in-neighbors of a node in edge insertion order.
func (g *Graph) Predecessors(name string) []string {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	return g.namesOf(g.in[i])
}

func (g *Graph) namesOf(idx []int) []string {
	out := make([]string, len(idx))
	for k, i := range idx {
		out[k] = g.names[i]
	}
	return out
}

// SuccessorIndices returns the out-neighbor indices of the node at index i.
// The returned slice must not be modified.
func (g *Graph) SuccessorIndices(i int) []int {
	return g.out[i]
}
