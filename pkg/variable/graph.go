package variable

import (
	"fmt"
	"math"

	"github.com/mathcrusader/vargen/pkg/constraint"
	"github.com/mathcrusader/vargen/pkg/mverrors"
	"github.com/mathcrusader/vargen/pkg/policy"
	"github.com/mathcrusader/vargen/pkg/testctx"
	"github.com/mathcrusader/vargen/pkg/value"
)

// Graph is a variable generating an undirected graph bounded by its
// installed constraint.GraphBundle. NewNodeLabel/NewEdgeLabel are
// optional element factories; when nil the graph carries no labels.
//
// Wire format (edge-list): a header line "n m", then m lines each
// "u v" (0-based), followed by "u v label" when edge labels are
// installed, followed by one line of n space-separated node labels
// when node labels are installed.
type Graph struct {
	name          string
	Constraints   *constraint.GraphBundle
	NewNodeLabel  ElementFactory
	NewEdgeLabel  ElementFactory
}

// NewGraph declares a Graph variable named name.
func NewGraph(name string, c *constraint.GraphBundle) *Graph {
	if c == nil {
		c = constraint.NewGraphBundle()
	}
	return &Graph{name: name, Constraints: c}
}

func (v *Graph) Name() string           { return v.name }
func (v *Graph) Kind() value.Kind       { return value.KindGraph }
func (v *Graph) Dependencies() []string { return v.Constraints.Dependencies() }
func (v *Graph) Describe() string       { return fmt.Sprintf("%s is %s", v.name, v.Constraints.Describe()) }

func (v *Graph) Generate(ctx testctx.ResolverContext) (value.Value, error) {
	return runGenerate(ctx, v.name, func() (value.Value, error) {
		nLo, nHi, err := v.Constraints.NumNodes.ResolvedRange(ctx.Lookup)
		if err != nil {
			return value.Value{}, err
		}
		if nLo < 0 {
			nLo = 0
		}
		if nHi == math.MaxInt64 && !v.Constraints.NumNodes.HasExactly() && !v.Constraints.NumNodes.HasOneOf() {
			return value.Value{}, &mverrors.ConfigurationError{Site: v.name, Message: "NumNodes must be constrained to generate a Graph"}
		}
		n, err := drawFromIntBundleInRange(ctx, v.name, v.Constraints.NumNodes, nLo, nHi)
		if err != nil {
			return value.Value{}, err
		}

		mLo, mHi, err := v.Constraints.NumEdges.ResolvedRange(ctx.Lookup)
		if err != nil {
			return value.Value{}, err
		}
		if mLo < 0 {
			mLo = 0
		}
		if v.Constraints.Connected && n > 0 && mLo < n-1 {
			mLo = n - 1
		}
		if v.Constraints.Loopless || v.Constraints.NoParallelEdges {
			maxSimple := int64(n) * (int64(n) - 1) / 2
			if mHi > maxSimple {
				mHi = maxSimple
			}
		}
		if mHi == math.MaxInt64 && !v.Constraints.NumEdges.HasExactly() && !v.Constraints.NumEdges.HasOneOf() {
			return value.Value{}, &mverrors.ConfigurationError{Site: v.name, Message: "NumEdges must be constrained to generate a Graph"}
		}
		m, err := drawFromIntBundleInRange(ctx, v.name, v.Constraints.NumEdges, mLo, mHi)
		if err != nil {
			return value.Value{}, err
		}

		edges, err := v.generateEdges(ctx, int(n), int(m))
		if err != nil {
			return value.Value{}, err
		}

		var nodeLabels []value.Value
		if v.NewNodeLabel != nil {
			nodeLabels = make([]value.Value, n)
			for i := range nodeLabels {
				elemName := fmt.Sprintf("%s.node.%d", v.name, i)
				lv, err := v.NewNodeLabel(elemName).Generate(ctx)
				if err != nil {
					return value.Value{}, err
				}
				nodeLabels[i] = lv
			}
		}

		g := &value.Graph{NumNodes: int(n), Edges: edges, NodeLabels: nodeLabels}
		reason, err := v.Constraints.Check(ctx.Lookup, g)
		if err != nil {
			return value.Value{}, err
		}
		if reason != "" {
			return value.Value{}, retry(v.name, reason)
		}
		return value.Gr(g), nil
	})
}

// generateEdges builds m edges over n nodes. When Connected is
// installed, a random spanning tree (n-1 edges, the recursive-random-
// parent construction) is generated first so the graph is guaranteed
// connected, then the remaining m-(n-1) edges are added at random.
// NoParallelEdges/Loopless are enforced by rejection sampling with a
// budget proportional to the number of edges requested.
func (v *Graph) generateEdges(ctx testctx.ResolverContext, n, m int) ([]value.Edge, error) {
	edges := make([]value.Edge, 0, m)
	seen := map[[2]int]bool{}
	addEdge := func(u, w int) bool {
		if v.Constraints.Loopless && u == w {
			return false
		}
		key := [2]int{u, w}
		if u > w {
			key = [2]int{w, u}
		}
		if v.Constraints.NoParallelEdges && seen[key] {
			return false
		}
		seen[key] = true
		return true
	}

	if v.Constraints.Connected && n > 1 {
		for i := 1; i < n; i++ {
			parent, err := ctx.RNG().IntRange(0, int64(i-1))
			if err != nil {
				return nil, err
			}
			if addEdge(i, int(parent)) {
				edges = append(edges, value.Edge{U: i, V: int(parent)})
			}
		}
	}

	budget := 20 * (m + 1)
	for len(edges) < m {
		budget--
		if budget < 0 {
			return nil, retry(v.name, fmt.Sprintf("could not find %d edges satisfying its simple-graph constraints within its retry budget", m))
		}
		if n == 0 {
			break
		}
		u, err := ctx.RNG().IntRange(0, int64(n-1))
		if err != nil {
			return nil, err
		}
		w, err := ctx.RNG().IntRange(0, int64(n-1))
		if err != nil {
			return nil, err
		}
		if !addEdge(int(u), int(w)) {
			continue
		}
		edges = append(edges, value.Edge{U: int(u), V: int(w)})
	}

	if v.NewEdgeLabel != nil {
		for i := range edges {
			elemName := fmt.Sprintf("%s.edge.%d", v.name, i)
			lv, err := v.NewEdgeLabel(elemName).Generate(ctx)
			if err != nil {
				return nil, err
			}
			edges[i].Label = lv
		}
	}
	return edges, nil
}

func (v *Graph) Validate(ctx testctx.AnalysisContext, val value.Value) error {
	g, ok := val.Graph()
	if !ok {
		return &mverrors.MVariableTypeMismatch{ConvertingFrom: val.Kind().String(), ConvertingTo: "Graph"}
	}
	reason, err := v.Constraints.Check(ctx.Lookup, g)
	if err != nil {
		return err
	}
	if reason != "" {
		return &mverrors.ValidationError{Name: v.name, Reason: reason}
	}
	return nil
}

func (v *Graph) Read(ctx testctx.ReaderContext) (value.Value, error) {
	n, err := ctx.Cursor().ReadInt()
	if err != nil {
		return value.Value{}, err
	}
	if err := ctx.Cursor().ReadWhitespace(policy.Space); err != nil {
		return value.Value{}, err
	}
	m, err := ctx.Cursor().ReadInt()
	if err != nil {
		return value.Value{}, err
	}

	edges := make([]value.Edge, 0, m)
	for i := int64(0); i < m; i++ {
		if err := ctx.Cursor().ReadWhitespace(policy.Newline); err != nil {
			return value.Value{}, err
		}
		u, err := ctx.Cursor().ReadInt()
		if err != nil {
			return value.Value{}, err
		}
		if err := ctx.Cursor().ReadWhitespace(policy.Space); err != nil {
			return value.Value{}, err
		}
		w, err := ctx.Cursor().ReadInt()
		if err != nil {
			return value.Value{}, err
		}
		edge := value.Edge{U: int(u), V: int(w)}
		if v.NewEdgeLabel != nil {
			if err := ctx.Cursor().ReadWhitespace(policy.Space); err != nil {
				return value.Value{}, err
			}
			elemName := fmt.Sprintf("%s.edge.%d", v.name, i)
			lv, err := v.NewEdgeLabel(elemName).Read(ctx)
			if err != nil {
				return value.Value{}, err
			}
			edge.Label = lv
		}
		edges = append(edges, edge)
	}

	var nodeLabels []value.Value
	if v.NewNodeLabel != nil {
		nodeLabels = make([]value.Value, n)
		for i := int64(0); i < n; i++ {
			if i > 0 {
				if err := ctx.Cursor().ReadWhitespace(policy.Space); err != nil {
					return value.Value{}, err
				}
			} else if err := ctx.Cursor().ReadWhitespace(policy.Newline); err != nil {
				return value.Value{}, err
			}
			elemName := fmt.Sprintf("%s.node.%d", v.name, i)
			lv, err := v.NewNodeLabel(elemName).Read(ctx)
			if err != nil {
				return value.Value{}, err
			}
			nodeLabels[i] = lv
		}
	}

	g := &value.Graph{NumNodes: int(n), Edges: edges, NodeLabels: nodeLabels}
	val := value.Gr(g)
	if err := v.Validate(ctx, val); err != nil {
		return value.Value{}, ioValidationError(ctx, err)
	}
	return val, nil
}

func (v *Graph) Write(ctx testctx.WriterContext, val value.Value) error {
	g, ok := val.Graph()
	if !ok {
		return &mverrors.MVariableTypeMismatch{ConvertingFrom: val.Kind().String(), ConvertingTo: "Graph"}
	}
	if err := ctx.Writer().WriteInt(int64(g.NumNodes)); err != nil {
		return err
	}
	if err := ctx.Writer().WriteWhitespace(policy.Space); err != nil {
		return err
	}
	if err := ctx.Writer().WriteInt(int64(len(g.Edges))); err != nil {
		return err
	}
	for i, e := range g.Edges {
		if err := ctx.Writer().WriteWhitespace(policy.Newline); err != nil {
			return err
		}
		if err := ctx.Writer().WriteInt(int64(e.U)); err != nil {
			return err
		}
		if err := ctx.Writer().WriteWhitespace(policy.Space); err != nil {
			return err
		}
		if err := ctx.Writer().WriteInt(int64(e.V)); err != nil {
			return err
		}
		if v.NewEdgeLabel != nil {
			if err := ctx.Writer().WriteWhitespace(policy.Space); err != nil {
				return err
			}
			elemName := fmt.Sprintf("%s.edge.%d", v.name, i)
			if err := v.NewEdgeLabel(elemName).Write(ctx, e.Label); err != nil {
				return err
			}
		}
	}
	if v.NewNodeLabel != nil {
		for i, l := range g.NodeLabels {
			if i == 0 {
				if err := ctx.Writer().WriteWhitespace(policy.Newline); err != nil {
					return err
				}
			} else if err := ctx.Writer().WriteWhitespace(policy.Space); err != nil {
				return err
			}
			elemName := fmt.Sprintf("%s.node.%d", v.name, i)
			if err := v.NewNodeLabel(elemName).Write(ctx, l); err != nil {
				return err
			}
		}
	}
	return nil
}
