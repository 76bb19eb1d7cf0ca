package variable

import (
	"strings"
	"testing"

	"github.com/mathcrusader/vargen/pkg/constraint"
	"github.com/mathcrusader/vargen/pkg/expr"
	"github.com/mathcrusader/vargen/pkg/ioengine"
	"github.com/mathcrusader/vargen/pkg/policy"
	"github.com/mathcrusader/vargen/pkg/resolver"
	"github.com/mathcrusader/vargen/pkg/rng"
	"github.com/mathcrusader/vargen/pkg/value"
)

func newTestEngine(t *testing.T) *rng.Engine {
	t.Helper()
	e, err := rng.NewEngine(make([]byte, 16))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestIntegerGenerateHonorsCustomConstraint(t *testing.T) {
	c := constraint.NewIntBundle()
	c.Between(expr.MustParse("1"), expr.MustParse("10"))
	c.AddCustom(constraint.NewCustom("even", nil, func(env constraint.Env, v value.Value) (string, error) {
		n, _ := v.Int()
		if n%2 != 0 {
			return "is odd but must be even", nil
		}
		return "", nil
	}))
	v := NewInteger("n", c)

	ctx := resolver.New(newTestEngine(t))
	ctx.Declare(v)
	for i := 0; i < 20; i++ {
		val, err := ctx.Resolve("n")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		n, _ := val.Int()
		if n%2 != 0 || n < 1 || n > 10 {
			t.Fatalf("got %d, want an even value in [1, 10]", n)
		}
		ctx.Store().Unset("n")
	}
	if err := v.Validate(ctx, value.Int(3)); err == nil {
		t.Fatal("expected a validation error for an odd value")
	}
}

func TestIntegerGenerateRespectsRange(t *testing.T) {
	c := constraint.NewIntBundle()
	c.Between(expr.MustParse("3"), expr.MustParse("5"))
	v := NewInteger("n", c)

	ctx := resolver.New(newTestEngine(t))
	ctx.Declare(v)

	for i := 0; i < 50; i++ {
		val, err := ctx.Resolve("n")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		n, _ := val.Int()
		if n < 3 || n > 5 {
			t.Fatalf("generated %d outside [3, 5]", n)
		}
		ctx.Store().Unset("n")
	}
}

func TestIntegerGenerateExactly(t *testing.T) {
	c := constraint.NewIntBundle()
	c.Exactly(expr.MustParse("42"))
	v := NewInteger("n", c)

	ctx := resolver.New(newTestEngine(t))
	ctx.Declare(v)
	val, err := ctx.Resolve("n")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	n, _ := val.Int()
	if n != 42 {
		t.Fatalf("got %d, want 42", n)
	}
}

func TestIntegerGenerateOneOf(t *testing.T) {
	c := constraint.NewIntBundle()
	c.OneOf([]*expr.Expression{expr.MustParse("1"), expr.MustParse("2"), expr.MustParse("3")})
	v := NewInteger("n", c)

	ctx := resolver.New(newTestEngine(t))
	ctx.Declare(v)
	for i := 0; i < 20; i++ {
		val, err := ctx.Resolve("n")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		n, _ := val.Int()
		if n < 1 || n > 3 {
			t.Fatalf("got %d, want one of 1,2,3", n)
		}
		ctx.Store().Unset("n")
	}
}

func TestIntegerValidateRejectsOutOfRange(t *testing.T) {
	c := constraint.NewIntBundle()
	c.Between(expr.MustParse("0"), expr.MustParse("10"))
	v := NewInteger("n", c)
	ctx := resolver.New(newTestEngine(t))

	if err := v.Validate(ctx, value.Int(20)); err == nil {
		t.Fatal("expected a validation error for 20 outside [0, 10]")
	}
	if err := v.Validate(ctx, value.Int(5)); err != nil {
		t.Fatalf("unexpected error validating 5: %v", err)
	}
}

func TestIntegerReadWriteRoundTrip(t *testing.T) {
	c := constraint.NewIntBundle()
	c.Between(expr.MustParse("-100"), expr.MustParse("100"))
	v := NewInteger("n", c)

	ctx := resolver.New(newTestEngine(t))
	ctx.Declare(v)

	var sb strings.Builder
	w := ioengine.NewWriter(&sb)
	wctx := ctx.WithWriter(w)
	if err := v.Write(wctx, value.Int(-42)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if sb.String() != "-42" {
		t.Fatalf("wrote %q, want -42", sb.String())
	}

	cur := ioengine.NewCursor(strings.NewReader("-42"), policy.Flexible, policy.NumericPrecise)
	rctx := ctx.WithCursor(cur)
	val, err := v.Read(rctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	n, _ := val.Int()
	if n != -42 {
		t.Fatalf("read %d, want -42", n)
	}
}

func TestIntegerReadRejectsOutOfRange(t *testing.T) {
	c := constraint.NewIntBundle()
	c.Between(expr.MustParse("0"), expr.MustParse("10"))
	v := NewInteger("n", c)
	ctx := resolver.New(newTestEngine(t))

	cur := ioengine.NewCursor(strings.NewReader("99"), policy.Flexible, policy.NumericPrecise)
	rctx := ctx.WithCursor(cur)
	if _, err := v.Read(rctx); err == nil {
		t.Fatal("expected an IOError for an out-of-range read")
	}
}
