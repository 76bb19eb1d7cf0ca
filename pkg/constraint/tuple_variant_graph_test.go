package constraint

import (
	"testing"

	"github.com/mathcrusader/vargen/pkg/expr"
	"github.com/mathcrusader/vargen/pkg/policy"
	"github.com/mathcrusader/vargen/pkg/value"
)

func TestTupleBundleElements(t *testing.T) {
	b := NewTupleBundle(2)
	ib := NewIntBundle()
	ib.Between(expr.MustParse("0"), expr.MustParse("9"))
	b.SetElement(0, ib)
	sb := NewStringBundle()
	sb.Length.Between(expr.MustParse("1"), expr.MustParse("3"))
	b.SetElement(1, sb)

	ok := []value.Value{value.Int(3), value.Str("hi")}
	if reason, err := b.Check(noEnv, ok); err != nil || reason != "" {
		t.Fatalf("Check(ok) = %q, %v", reason, err)
	}
	bad := []value.Value{value.Int(99), value.Str("hi")}
	if reason, _ := b.Check(noEnv, bad); reason == "" {
		t.Fatal("expected a component violation")
	}
}

func TestTupleBundleSeparatorConflict(t *testing.T) {
	b := NewTupleBundle(2)
	if err := b.SetSeparator(policy.Space); err != nil {
		t.Fatalf("SetSeparator: %v", err)
	}
	if err := b.SetSeparator(policy.Tab); err == nil {
		t.Fatal("expected ImpossibleToSatisfy for conflicting separators")
	}
}

func TestVariantBundleExactlyPromotes(t *testing.T) {
	b := NewVariantBundle([]string{"int", "str"})
	ib := NewIntBundle()
	ib.Between(expr.MustParse("0"), expr.MustParse("9"))
	b.SetAlternative(0, ib)
	if err := b.ExactlyIndex(0); err != nil {
		t.Fatalf("ExactlyIndex: %v", err)
	}
	elig := b.EligibleAlternatives()
	if len(elig) != 1 || elig[0] != 0 {
		t.Fatalf("EligibleAlternatives = %v, want [0]", elig)
	}
	if reason, _ := b.Check(noEnv, value.VariantValue{Index: 1, Payload: value.Str("x")}); reason == "" {
		t.Fatal("expected a violation for the non-exact alternative")
	}
	if reason, _ := b.Check(noEnv, value.VariantValue{Index: 0, Payload: value.Int(3)}); reason != "" {
		t.Fatalf("the pinned alternative should pass, got %q", reason)
	}
}

func TestGraphBundleConnectedAndSimple(t *testing.T) {
	b := NewGraphBundle()
	b.NumNodes.Between(expr.MustParse("1"), expr.MustParse("10"))
	b.NumEdges.Between(expr.MustParse("0"), expr.MustParse("10"))
	b.Connected = true
	b.SetSimpleGraph()

	connected := &value.Graph{NumNodes: 3, Edges: []value.Edge{{U: 0, V: 1}, {U: 1, V: 2}}}
	if reason, err := b.Check(noEnv, connected); err != nil || reason != "" {
		t.Fatalf("Check(connected) = %q, %v", reason, err)
	}
	disconnected := &value.Graph{NumNodes: 3, Edges: []value.Edge{{U: 0, V: 1}}}
	if reason, _ := b.Check(noEnv, disconnected); reason == "" {
		t.Fatal("expected a connectivity violation")
	}
	withLoop := &value.Graph{NumNodes: 2, Edges: []value.Edge{{U: 0, V: 1}, {U: 0, V: 0}}}
	if reason, _ := b.Check(noEnv, withLoop); reason == "" {
		t.Fatal("expected a loopless violation")
	}
}
