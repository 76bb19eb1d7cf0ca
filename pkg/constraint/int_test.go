package constraint

import (
	"testing"

	"github.com/mathcrusader/vargen/pkg/expr"
)

func noEnv(name string) (int64, error) { return 0, &missingErr{name} }

type missingErr struct{ name string }

func (e *missingErr) Error() string { return "not found: " + e.name }

func constEnv(vals map[string]int64) Env {
	return func(name string) (int64, error) {
		if v, ok := vals[name]; ok {
			return v, nil
		}
		return 0, &missingErr{name}
	}
}

func TestIntBundleBetween(t *testing.T) {
	b := NewIntBundle()
	b.Between(expr.MustParse("5"), expr.MustParse("10"))
	lo, hi, err := b.ResolvedRange(noEnv)
	if err != nil || lo != 5 || hi != 10 {
		t.Fatalf("ResolvedRange = %d, %d, %v; want 5, 10, nil", lo, hi, err)
	}
	if reason, _ := b.Check(noEnv, 3); reason == "" {
		t.Fatal("3 should violate Between(5, 10)")
	}
	if reason, _ := b.Check(noEnv, 7); reason != "" {
		t.Fatalf("7 should satisfy Between(5, 10), got %q", reason)
	}
}

func TestIntBundleMergeNarrowsRange(t *testing.T) {
	a := NewIntBundle()
	a.AtLeast(expr.MustParse("0"))
	b := NewIntBundle()
	b.AtMost(expr.MustParse("100"))
	if err := a.Merge(b); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	lo, hi, _ := a.ResolvedRange(noEnv)
	if lo != 0 || hi != 100 {
		t.Fatalf("merged range = [%d, %d]; want [0, 100]", lo, hi)
	}
}

func TestIntBundleMergeConflictingExactly(t *testing.T) {
	a := NewIntBundle()
	a.Exactly(expr.MustParse("5"))
	b := NewIntBundle()
	b.Exactly(expr.MustParse("6"))
	if err := a.Merge(b); err == nil {
		t.Fatal("expected ImpossibleToSatisfy merging Exactly(5) with Exactly(6)")
	}
}

func TestIntBundleMergeConflictingRange(t *testing.T) {
	a := NewIntBundle()
	a.AtLeast(expr.MustParse("10"))
	b := NewIntBundle()
	b.AtMost(expr.MustParse("5"))
	if err := a.Merge(b); err == nil {
		t.Fatal("expected ImpossibleToSatisfy merging AtLeast(10) with AtMost(5)")
	}
}

func TestIntBundleOneOf(t *testing.T) {
	b := NewIntBundle()
	b.OneOf([]*expr.Expression{expr.MustParse("1"), expr.MustParse("2"), expr.MustParse("3")})
	if reason, _ := b.Check(noEnv, 2); reason != "" {
		t.Fatalf("2 should satisfy OneOf(1,2,3), got %q", reason)
	}
	if reason, _ := b.Check(noEnv, 4); reason == "" {
		t.Fatal("4 should violate OneOf(1,2,3)")
	}
}

func TestIntBundleMod(t *testing.T) {
	b := NewIntBundle()
	b.Mod(expr.MustParse("2"), expr.MustParse("5"))
	if reason, _ := b.Check(noEnv, 7); reason != "" {
		t.Fatalf("7 mod 5 == 2, should satisfy, got %q", reason)
	}
	if reason, _ := b.Check(noEnv, 8); reason == "" {
		t.Fatal("8 mod 5 == 3, should violate Mod(2, 5)")
	}
}

func TestIntBundleExpressionBound(t *testing.T) {
	b := NewIntBundle()
	b.Between(expr.MustParse("0"), expr.MustParse("N"))
	lo, hi, err := b.ResolvedRange(constEnv(map[string]int64{"N": 42}))
	if err != nil || lo != 0 || hi != 42 {
		t.Fatalf("ResolvedRange = %d, %d, %v; want 0, 42, nil", lo, hi, err)
	}
	deps := b.Dependencies()
	if len(deps) != 1 || deps[0] != "N" {
		t.Fatalf("Dependencies() = %v, want [N]", deps)
	}
}
