package citegraph

import "fmt"

// Ego returns the ego network of center: the subgraph induced by center and
// every node reachable from it along outgoing edges within radius hops.
// Node and edge order follow g. Node kinds are preserved.
func (g *Graph) Ego(center string, radius int) (*Graph, error) {
	start, ok := g.index[center]
	if !ok {
		return nil, fmt.Errorf("ego network of %q: %w", center, ErrNodeNotFound)
	}

	dist := map[int]int{start: 0}
	queue := []int{start}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if dist[v] >= radius {
			continue
		}
		for _, w := range g.out[v] {
			if _, seen := dist[w]; !seen {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
		}
	}

	sub := New()
	for i, name := range g.names {
		if _, in := dist[i]; in {
			sub.addNode(name, g.kinds[i])
		}
	}
	for _, e := range g.edges {
		_, fromIn := dist[e[0]]
		_, toIn := dist[e[1]]
		if fromIn && toIn {
			sub.addEdge(sub.index[g.names[e[0]]], sub.index[g.names[e[1]]])
		}
	}
	return sub, nil
}
