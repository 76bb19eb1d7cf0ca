package value

// Edge is one edge of a Graph value: an ordered pair of node indices
// (0-based) plus an optional label, which is the unit Value when the
// graph carries no edge labels.
type Edge struct {
	U, V  int
	Label Value
}

// Graph is the shape generated and read for a Graph variable: a node
// count, an edge list, and optional per-node labels (nil when the
// variable carries no node labels).
type Graph struct {
	NumNodes   int
	Edges      []Edge
	NodeLabels []Value
}

// Every edge is stored as an ordered (U,V) pair. Neither this type nor
// the Graph variable kind normalizes the endpoint order of an undirected
// edge; HasParallelEdges and IsConnected treat (U,V) and (V,U) alike.

func graphsEqual(a, b *Graph) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.NumNodes != b.NumNodes || len(a.Edges) != len(b.Edges) {
		return false
	}
	for i := range a.Edges {
		ae, be := a.Edges[i], b.Edges[i]
		if ae.U != be.U || ae.V != be.V || !Equal(ae.Label, be.Label) {
			return false
		}
	}
	if (a.NodeLabels == nil) != (b.NodeLabels == nil) {
		return false
	}
	for i := range a.NodeLabels {
		if !Equal(a.NodeLabels[i], b.NodeLabels[i]) {
			return false
		}
	}
	return true
}

// Degree returns the undirected degree of node i: the number of edges
// with i as either endpoint, counting a self-loop twice.
func (g *Graph) Degree(i int) int {
	d := 0
	for _, e := range g.Edges {
		if e.U == i {
			d++
		}
		if e.V == i {
			d++
		}
	}
	return d
}

// HasParallelEdges reports whether any unordered pair of nodes is
// connected by more than one edge.
func (g *Graph) HasParallelEdges() bool {
	seen := make(map[[2]int]bool, len(g.Edges))
	for _, e := range g.Edges {
		key := [2]int{e.U, e.V}
		if e.U > e.V {
			key = [2]int{e.V, e.U}
		}
		if seen[key] {
			return true
		}
		seen[key] = true
	}
	return false
}

// HasSelfLoops reports whether any edge connects a node to itself.
func (g *Graph) HasSelfLoops() bool {
	for _, e := range g.Edges {
		if e.U == e.V {
			return true
		}
	}
	return false
}

// IsConnected reports whether the graph, viewed as undirected, has
// exactly one component and at least one node. The empty graph
// (NumNodes == 0) is explicitly not connected.
func (g *Graph) IsConnected() bool {
	if g.NumNodes == 0 {
		return false
	}
	adj := make([][]int, g.NumNodes)
	for _, e := range g.Edges {
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}
	seen := make([]bool, g.NumNodes)
	stack := []int{0}
	seen[0] = true
	count := 1
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range adj[n] {
			if !seen[next] {
				seen[next] = true
				count++
				stack = append(stack, next)
			}
		}
	}
	return count == g.NumNodes
}
