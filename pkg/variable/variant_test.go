package variable

import (
	"testing"

	"github.com/mathcrusader/vargen/pkg/constraint"
	"github.com/mathcrusader/vargen/pkg/resolver"
	"github.com/mathcrusader/vargen/pkg/testctx"
)

func TestVariantGenerateChoosesAmongAlternatives(t *testing.T) {
	c := constraint.NewVariantBundle([]string{"int", "none"})
	alternatives := []ElementFactory{
		intElementFactory(1, 5),
		func(name string) testctx.AbstractVariable { return NewNone(name) },
	}
	v := NewVariant("v", c, alternatives)

	ctx := resolver.New(newTestEngine(t))
	ctx.Declare(v)

	sawInt, sawNone := false, false
	for i := 0; i < 200; i++ {
		val, err := ctx.Resolve("v")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		vv, ok := val.VariantValue()
		if !ok {
			t.Fatalf("got %v, want a variant value", val)
		}
		switch vv.Index {
		case 0:
			sawInt = true
			n, ok := vv.Payload.Int()
			if !ok || n < 1 || n > 5 {
				t.Fatalf("int alternative payload = %v, want int in [1,5]", vv.Payload)
			}
		case 1:
			sawNone = true
			if vv.Payload.Kind().String() == "" {
				t.Fatalf("none alternative payload kind is unexpectedly empty")
			}
		default:
			t.Fatalf("unexpected alternative index %d", vv.Index)
		}
		ctx.Store().Unset("v")
	}
	if !sawInt || !sawNone {
		t.Fatalf("expected to see both alternatives over 200 draws, sawInt=%v sawNone=%v", sawInt, sawNone)
	}
}

func TestVariantExactlyIndexPinsAlternative(t *testing.T) {
	c := constraint.NewVariantBundle([]string{"int", "none"})
	if err := c.ExactlyIndex(0); err != nil {
		t.Fatalf("ExactlyIndex: %v", err)
	}
	alternatives := []ElementFactory{
		intElementFactory(1, 5),
		func(name string) testctx.AbstractVariable { return NewNone(name) },
	}
	v := NewVariant("v", c, alternatives)

	ctx := resolver.New(newTestEngine(t))
	ctx.Declare(v)
	val, err := ctx.Resolve("v")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	vv, _ := val.VariantValue()
	if vv.Index != 0 {
		t.Fatalf("got alternative %d, want 0 (pinned by ExactlyIndex)", vv.Index)
	}
}
