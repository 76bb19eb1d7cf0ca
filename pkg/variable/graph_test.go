package variable

import (
	"testing"

	"github.com/mathcrusader/vargen/pkg/constraint"
	"github.com/mathcrusader/vargen/pkg/expr"
	"github.com/mathcrusader/vargen/pkg/resolver"
)

func TestGraphGenerateConnectedSimple(t *testing.T) {
	c := constraint.NewGraphBundle()
	c.NumNodes.Between(expr.MustParse("6"), expr.MustParse("6"))
	c.NumEdges.Between(expr.MustParse("5"), expr.MustParse("10"))
	c.Connected = true
	c.SetSimpleGraph()
	v := NewGraph("g", c)

	ctx := resolver.New(newTestEngine(t))
	ctx.Declare(v)

	for i := 0; i < 10; i++ {
		val, err := ctx.Resolve("g")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		g, ok := val.Graph()
		if !ok {
			t.Fatalf("got %v, want a graph value", val)
		}
		if g.NumNodes != 6 {
			t.Fatalf("got %d nodes, want 6", g.NumNodes)
		}
		if !g.IsConnected() {
			t.Fatalf("graph %+v is not connected", g)
		}
		if g.HasParallelEdges() {
			t.Fatalf("graph %+v has parallel edges, want simple", g)
		}
		if g.HasSelfLoops() {
			t.Fatalf("graph %+v has self loops, want simple", g)
		}
		ctx.Store().Unset("g")
	}
}

func TestGraphGenerateEmpty(t *testing.T) {
	c := constraint.NewGraphBundle()
	c.NumNodes.Exactly(expr.MustParse("0"))
	c.NumEdges.Exactly(expr.MustParse("0"))
	v := NewGraph("g", c)

	ctx := resolver.New(newTestEngine(t))
	ctx.Declare(v)
	val, err := ctx.Resolve("g")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	g, _ := val.Graph()
	if g.NumNodes != 0 || len(g.Edges) != 0 {
		t.Fatalf("got %+v, want the empty graph", g)
	}
	if g.IsConnected() {
		t.Fatal("the empty graph must not be considered connected")
	}
}
