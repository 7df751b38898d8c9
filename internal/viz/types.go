// Package viz renders the citation network and its degree statistics as
// self-contained HTML pages (Cytoscape.js for graphs, Chart.js for charts).
package viz

import (
	"fmt"

	"github.com/matsen/citenet/internal/citegraph"
	"github.com/matsen/citenet/internal/metrics"
)

// LabelMaxLen is the display width of node labels; tooltips show full names.
const LabelMaxLen = 40

// GraphData contains all data needed to render a graph page.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is a paper or bucket node with its layout position.
type Node struct {
	ID    string `json:"id"`
	Type  string `json:"type"` // "paper" or "bucket"
	Label string `json:"label"`
	Name  string `json:"name"` // Full node name for tooltips

	InDegree  int     `json:"inDegree"`
	OutDegree int     `json:"outDegree"`
	Score     float64 `json:"score"` // Degree centrality, used for sizing
	Center    bool    `json:"center,omitempty"`

	Position Point `json:"-"`
}

// Edge is a bucket -> paper edge between node IDs.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}

// NewGraphData converts g into page data. Positions missing from pos are
// left at the origin; nodes missing from scores get 0. center, when set,
// marks the ego node.
func NewGraphData(g *citegraph.Graph, pos Positions, scores metrics.Scores, center string) *GraphData {
	names := g.Nodes()
	ids := make(map[string]string, len(names))
	data := &GraphData{
		Nodes: make([]Node, 0, len(names)),
		Edges: make([]Edge, 0, g.EdgeCount()),
	}

	for i, name := range names {
		id := fmt.Sprintf("n%d", i)
		ids[name] = id
		kind, _ := g.Kind(name)
		data.Nodes = append(data.Nodes, Node{
			ID:        id,
			Type:      string(kind),
			Label:     truncateString(name, LabelMaxLen),
			Name:      name,
			InDegree:  g.InDegree(name),
			OutDegree: g.OutDegree(name),
			Score:     scores[name],
			Center:    name == center,
			Position:  pos[name],
		})
	}

	for _, e := range g.Edges() {
		data.Edges = append(data.Edges, Edge{Source: ids[e.From], Target: ids[e.To]})
	}
	return data
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
