package constraint

import (
	"testing"

	"github.com/mathcrusader/vargen/pkg/expr"
	"github.com/mathcrusader/vargen/pkg/value"
)

func TestArrayBundleLengthAndElements(t *testing.T) {
	b := NewArrayBundle()
	b.Length.Between(expr.MustParse("2"), expr.MustParse("3"))
	elemBundle := NewIntBundle()
	elemBundle.Between(expr.MustParse("0"), expr.MustParse("9"))
	b.Elements = elemBundle

	ok := []value.Value{value.Int(1), value.Int(2)}
	if reason, err := b.Check(noEnv, ok); err != nil || reason != "" {
		t.Fatalf("Check(ok) = %q, %v; want \"\", nil", reason, err)
	}

	badLen := []value.Value{value.Int(1)}
	if reason, _ := b.Check(noEnv, badLen); reason == "" {
		t.Fatal("expected a length violation")
	}

	badElem := []value.Value{value.Int(1), value.Int(99)}
	if reason, _ := b.Check(noEnv, badElem); reason == "" {
		t.Fatal("expected an element violation")
	}
}

func TestArrayBundleDistinctElements(t *testing.T) {
	b := NewArrayBundle()
	b.Length.Between(expr.MustParse("0"), expr.MustParse("10"))
	b.Distinct = true
	if reason, _ := b.Check(noEnv, []value.Value{value.Int(1), value.Int(1)}); reason == "" {
		t.Fatal("expected a distinctness violation")
	}
	if reason, _ := b.Check(noEnv, []value.Value{value.Int(1), value.Int(2)}); reason != "" {
		t.Fatalf("distinct elements should pass, got %q", reason)
	}
}

func TestArrayBundleSorted(t *testing.T) {
	b := NewArrayBundle()
	b.Length.Between(expr.MustParse("0"), expr.MustParse("10"))
	b.SetSorted(SortAscending)
	if reason, _ := b.Check(noEnv, []value.Value{value.Int(1), value.Int(2), value.Int(3)}); reason != "" {
		t.Fatalf("ascending input should pass, got %q", reason)
	}
	if reason, _ := b.Check(noEnv, []value.Value{value.Int(3), value.Int(1)}); reason == "" {
		t.Fatal("expected a sort-order violation")
	}
}
