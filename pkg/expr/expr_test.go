package expr

import (
	"math"
	"testing"

	"github.com/mathcrusader/vargen/pkg/mverrors"
)

func lookupMap(m map[string]int64) LookupFunc {
	return func(name string) (int64, error) {
		v, ok := m[name]
		if !ok {
			return 0, &mverrors.VariableNotFound{Name: name}
		}
		return v, nil
	}
}

func mustEval(t *testing.T, src string, env map[string]int64) int64 {
	t.Helper()
	e, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	v, err := e.Evaluate(lookupMap(env))
	if err != nil {
		t.Fatalf("Evaluate(%q): %v", src, err)
	}
	return v
}

func TestPrecedence(t *testing.T) {
	cases := map[string]int64{
		"1+2*3":     7,
		"(1+2)*3":   9,
		"2*3+4*5":   26,
		"2^3^2":     512, // right-assoc: 2^(3^2) = 2^9
		"-2^2":      -4,  // unary binds looser than ^
		"10-3-2":    5,
		"10/3":      3,
		"10%3":      1,
		"-5":        -5,
		"--5":       5,
		"2*(3+4)/7": 2,
	}
	for src, want := range cases {
		if got := mustEval(t, src, nil); got != want {
			t.Errorf("%s = %d, want %d", src, got, want)
		}
	}
}

func TestIdentifiersAndFunctions(t *testing.T) {
	env := map[string]int64{"N": 5, "A": 2, "B": 9}
	cases := map[string]int64{
		"3*N+1":        16,
		"max(A,B)":     9,
		"min(A,B)":     2,
		"abs(A-B)":     7,
		"max(A,B,N,1)": 9,
	}
	for src, want := range cases {
		if got := mustEval(t, src, env); got != want {
			t.Errorf("%s = %d, want %d", src, got, want)
		}
	}
}

func TestDependencies(t *testing.T) {
	e, err := Parse("3*N + max(A, B) - abs(C)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := map[string]bool{}
	for _, name := range e.Dependencies() {
		got[name] = true
	}
	for _, want := range []string{"N", "A", "B", "C"} {
		if !got[want] {
			t.Errorf("missing dependency %q in %v", want, e.Dependencies())
		}
	}
	if len(got) != 4 {
		t.Errorf("expected exactly 4 dependencies, got %v", got)
	}
}

func TestMalformedExpressions(t *testing.T) {
	bad := []string{"", "1+", "(1+2", "1 2", "1 + + 2", "$bad"}
	for _, src := range bad {
		if _, err := Parse(src); err == nil {
			t.Errorf("Parse(%q) unexpectedly succeeded", src)
		}
	}
}

func TestUnknownIdentifierPropagates(t *testing.T) {
	e := MustParse("N+1")
	_, err := e.Evaluate(lookupMap(nil))
	var notFound *mverrors.VariableNotFound
	if !errorsAs(err, &notFound) {
		t.Fatalf("expected VariableNotFound, got %v (%T)", err, err)
	}
}

func TestDivisionAndModByZero(t *testing.T) {
	e := MustParse("1/0")
	if _, err := e.Evaluate(lookupMap(nil)); err == nil {
		t.Fatal("expected division-by-zero error")
	}
	e2 := MustParse("1%0")
	if _, err := e2.Evaluate(lookupMap(nil)); err == nil {
		t.Fatal("expected modulo-by-zero error")
	}
}

func TestOverflow(t *testing.T) {
	env := map[string]int64{"MAX": math.MaxInt64}
	e := MustParse("MAX+1")
	if _, err := e.Evaluate(lookupMap(env)); err == nil {
		t.Fatal("expected overflow error")
	}

	e2 := MustParse("MAX*2")
	if _, err := e2.Evaluate(lookupMap(env)); err == nil {
		t.Fatal("expected overflow error on multiplication")
	}
}

// errorsAs is a tiny local shim so this test file doesn't need to import
// "errors" just for As.
func errorsAs(err error, target **mverrors.VariableNotFound) bool {
	v, ok := err.(*mverrors.VariableNotFound)
	if ok {
		*target = v
	}
	return ok
}
