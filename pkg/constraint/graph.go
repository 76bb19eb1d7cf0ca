package constraint

import (
	"fmt"
	"sort"

	"github.com/mathcrusader/vargen/pkg/value"
)

// GraphBundle holds every constraint installed on a Graph variable.
type GraphBundle struct {
	NumNodes        *IntBundle
	NumEdges        *IntBundle
	Connected       bool
	NoParallelEdges bool
	Loopless        bool
	NodeLabels      ElementConstraint
	EdgeLabels      ElementConstraint
}

// NewGraphBundle returns a bundle with unconstrained NumNodes/NumEdges.
func NewGraphBundle() *GraphBundle {
	return &GraphBundle{NumNodes: NewIntBundle(), NumEdges: NewIntBundle()}
}

// SetSimpleGraph is the conjunction of NoParallelEdges and Loopless.
func (b *GraphBundle) SetSimpleGraph() {
	b.NoParallelEdges = true
	b.Loopless = true
}

// Merge combines other into b.
func (b *GraphBundle) Merge(other *GraphBundle) error {
	if err := b.NumNodes.Merge(other.NumNodes); err != nil {
		return err
	}
	if err := b.NumEdges.Merge(other.NumEdges); err != nil {
		return err
	}
	b.Connected = b.Connected || other.Connected
	b.NoParallelEdges = b.NoParallelEdges || other.NoParallelEdges
	b.Loopless = b.Loopless || other.Loopless
	if other.NodeLabels != nil {
		b.NodeLabels = other.NodeLabels
	}
	if other.EdgeLabels != nil {
		b.EdgeLabels = other.EdgeLabels
	}
	return nil
}

// Check reports a violation reason for g.
func (b *GraphBundle) Check(env Env, g *value.Graph) (string, error) {
	if reason, err := b.NumNodes.CheckAs(env, int64(g.NumNodes), "node count"); err != nil || reason != "" {
		return reason, err
	}
	if reason, err := b.NumEdges.CheckAs(env, int64(len(g.Edges)), "edge count"); err != nil || reason != "" {
		return reason, err
	}
	if b.Connected && !g.IsConnected() {
		return "is not connected", nil
	}
	if b.NoParallelEdges && g.HasParallelEdges() {
		return "has parallel edges", nil
	}
	if b.Loopless && g.HasSelfLoops() {
		return "has a self loop", nil
	}
	if b.NodeLabels != nil {
		for i, l := range g.NodeLabels {
			if reason, err := b.NodeLabels.CheckValue(env, l); err != nil {
				return "", err
			} else if reason != "" {
				return fmt.Sprintf("has node label %d that %s", i, reason), nil
			}
		}
	}
	if b.EdgeLabels != nil {
		for i, e := range g.Edges {
			if reason, err := b.EdgeLabels.CheckValue(env, e.Label); err != nil {
				return "", err
			} else if reason != "" {
				return fmt.Sprintf("has edge label %d that %s", i, reason), nil
			}
		}
	}
	return "", nil
}

// CheckValue implements ElementConstraint.
func (b *GraphBundle) CheckValue(env Env, v value.Value) (string, error) {
	g, ok := v.Graph()
	if !ok {
		return "", mismatch(v.Kind().String(), "Graph")
	}
	return b.Check(env, g)
}

func (b *GraphBundle) Describe() string {
	return "a graph constrained by its installed NumNodes/NumEdges/Connected/SimpleGraph constraints"
}

func (b *GraphBundle) Dependencies() []string {
	set := map[string]struct{}{}
	for _, d := range b.NumNodes.Dependencies() {
		set[d] = struct{}{}
	}
	for _, d := range b.NumEdges.Dependencies() {
		set[d] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
