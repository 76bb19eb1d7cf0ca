package constraint

import (
	"testing"

	"github.com/mathcrusader/vargen/pkg/expr"
	"github.com/mathcrusader/vargen/pkg/pattern"
)

func TestStringBundleLengthAndAlphabet(t *testing.T) {
	b := NewStringBundle()
	b.Length.Between(expr.MustParse("2"), expr.MustParse("4"))
	b.SetAlphabet([]byte("abc"))

	if reason, _ := b.Check(noEnv, "ab"); reason != "" {
		t.Fatalf("ab should satisfy, got %q", reason)
	}
	if reason, _ := b.Check(noEnv, "a"); reason == "" {
		t.Fatal("a is too short")
	}
	if reason, _ := b.Check(noEnv, "abz"); reason == "" {
		t.Fatal("z is outside the alphabet")
	}
}

func TestStringBundleDistinctCharacters(t *testing.T) {
	b := NewStringBundle()
	b.Length.Between(expr.MustParse("1"), expr.MustParse("10"))
	b.SetDistinctCharacters()
	if reason, _ := b.Check(noEnv, "abc"); reason != "" {
		t.Fatalf("abc has distinct characters, got %q", reason)
	}
	if reason, _ := b.Check(noEnv, "aab"); reason == "" {
		t.Fatal("aab has a repeated character")
	}
}

func TestStringBundlePattern(t *testing.T) {
	p, err := pattern.Compile("[a-z]+[0-9]{2}")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	b := NewStringBundle()
	b.Length.Between(expr.MustParse("0"), expr.MustParse("100"))
	b.SetPattern(p)
	if reason, _ := b.Check(noEnv, "abc12"); reason != "" {
		t.Fatalf("abc12 should match, got %q", reason)
	}
	if reason, _ := b.Check(noEnv, "ABC"); reason == "" {
		t.Fatal("ABC should not match")
	}
}

func TestStringBundleMergeAlphabetIntersection(t *testing.T) {
	a := NewStringBundle()
	a.SetAlphabet([]byte("abcdef"))
	b := NewStringBundle()
	b.SetAlphabet([]byte("defghi"))
	if err := a.Merge(b); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	got := string(a.Alphabet())
	if got != "def" {
		t.Fatalf("merged alphabet = %q, want \"def\"", got)
	}
}

func TestStringBundleMergeDisjointAlphabets(t *testing.T) {
	a := NewStringBundle()
	a.SetAlphabet([]byte("abc"))
	b := NewStringBundle()
	b.SetAlphabet([]byte("xyz"))
	if err := a.Merge(b); err == nil {
		t.Fatal("expected ImpossibleToSatisfy for disjoint alphabets")
	}
}
