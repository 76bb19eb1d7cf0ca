package pattern

import (
	"testing"

	"github.com/mathcrusader/vargen/pkg/expr"
	"github.com/mathcrusader/vargen/pkg/rng"
)

func noLookup(name string) (int64, error) {
	return 0, &notFoundErr{name}
}

type notFoundErr struct{ name string }

func (e *notFoundErr) Error() string { return "variable not found: " + e.name }

func constLookup(env map[string]int64) expr.LookupFunc {
	return func(name string) (int64, error) {
		if v, ok := env[name]; ok {
			return v, nil
		}
		return 0, &notFoundErr{name}
	}
}

func TestMatchLiteralAndClass(t *testing.T) {
	p, err := Compile("[a-z]+[0-9]{2,4}")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	cases := map[string]bool{
		"abc12":   true,
		"a99":     true,
		"ABC12":   false,
		"abc":     false,
		"abc1":    false,
		"abc12345": false,
	}
	for s, want := range cases {
		got, err := p.Match(s, noLookup)
		if err != nil {
			t.Fatalf("Match(%q): %v", s, err)
		}
		if got != want {
			t.Errorf("Match(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestMatchAlternationAndGroup(t *testing.T) {
	p, err := Compile("(abc|de)+f")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ok, err := p.Match("abcdef", noLookup)
	if err != nil || !ok {
		t.Fatalf("Match(abcdef) = %v, %v; want true, nil", ok, err)
	}
	ok, err = p.Match("abcabcf", noLookup)
	if err != nil || !ok {
		t.Fatalf("Match(abcabcf) = %v, %v; want true, nil", ok, err)
	}
	ok, _ = p.Match("xyz", noLookup)
	if ok {
		t.Fatal("Match(xyz) should be false")
	}
}

func TestValidateExampleFromSpec(t *testing.T) {
	// SimplePattern("[a-z]{N,X}") with N=2, X=7.
	p, err := Compile("[a-z]{N,X}")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	lookup := constLookup(map[string]int64{"N": 2, "X": 7})

	ok, err := p.Match("abcdef", lookup)
	if err != nil || !ok {
		t.Fatalf("Match(abcdef) = %v, %v; want true, nil", ok, err)
	}
	ok, err = p.Match("ABCD", lookup)
	if err != nil {
		t.Fatalf("Match(ABCD): %v", err)
	}
	if ok {
		t.Fatal("Match(ABCD) should be false (uppercase not in [a-z])")
	}
	ok, err = p.Match("a", lookup)
	if err != nil {
		t.Fatalf("Match(a): %v", err)
	}
	if ok {
		t.Fatal("Match(a) should be false (below minimum length 2)")
	}
}

func TestGenerateRespectsBounds(t *testing.T) {
	p, err := Compile("[a-z]{2,7}")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	lookup := constLookup(map[string]int64{"N": 2, "X": 7})
	eng, err := rng.NewEngine(make([]byte, 16))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	for i := 0; i < 200; i++ {
		s, err := p.Generate(nil, lookup, eng)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if len(s) < 2 || len(s) > 7 {
			t.Fatalf("Generate produced out-of-range length: %q", s)
		}
		ok, err := p.Match(s, lookup)
		if err != nil || !ok {
			t.Fatalf("generated string %q does not match its own pattern: %v", s, err)
		}
	}
}

func TestGenerateRejectsUnboundedRepetition(t *testing.T) {
	p, err := Compile("[a-z]+")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	eng, _ := rng.NewEngine(make([]byte, 16))
	if _, err := p.Generate(nil, noLookup, eng); err == nil {
		t.Fatal("expected error generating unbounded repetition")
	}
}

func TestLiteralBypassesAlphabet(t *testing.T) {
	// A literal character outside the alphabet is a legal override.
	p, err := Compile("Q[a-c]{3}")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	eng, _ := rng.NewEngine(make([]byte, 16))
	alphabet := []byte("abc") // does not include 'Q'

	s, err := p.Generate(alphabet, noLookup, eng)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(s) == 0 || s[0] != 'Q' {
		t.Fatalf("expected literal Q to be emitted verbatim, got %q", s)
	}
	for _, c := range s[1:] {
		if c != 'a' && c != 'b' && c != 'c' {
			t.Fatalf("class character %q outside alphabet", string(c))
		}
	}
}

func TestClassAlphabetIntersectionEmptyFails(t *testing.T) {
	p, err := Compile("[x-z]{1}")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	eng, _ := rng.NewEngine(make([]byte, 16))
	if _, err := p.Generate([]byte("abc"), noLookup, eng); err == nil {
		t.Fatal("expected error for empty alphabet/class intersection")
	}
}

func TestDependencies(t *testing.T) {
	p, err := Compile("[a-z]{N,max(X,2)}")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	deps := map[string]bool{}
	for _, d := range p.Dependencies() {
		deps[d] = true
	}
	if !deps["N"] || !deps["X"] {
		t.Fatalf("missing dependencies, got %v", p.Dependencies())
	}
}

func TestNegatedClass(t *testing.T) {
	p, err := Compile("[^0-9]{3}")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ok, err := p.Match("abc", noLookup)
	if err != nil || !ok {
		t.Fatalf("Match(abc) = %v, %v; want true", ok, err)
	}
	ok, _ = p.Match("a1c", noLookup)
	if ok {
		t.Fatal("Match(a1c) should be false")
	}
}

func TestMalformedPatterns(t *testing.T) {
	bad := []string{"[a-z", "(abc", "a)", "[]"}
	for _, src := range bad {
		if _, err := Compile(src); err == nil {
			t.Errorf("Compile(%q) unexpectedly succeeded", src)
		}
	}
}
