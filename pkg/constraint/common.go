package constraint

import (
	"strconv"

	"github.com/mathcrusader/vargen/pkg/expr"
	"github.com/mathcrusader/vargen/pkg/mverrors"
	"github.com/mathcrusader/vargen/pkg/value"
)

// Env resolves a previously-generated Integer variable's value so an
// expression-valued bound can be evaluated. *resolver.Context and
// *rng-free test doubles both satisfy this via expr.LookupFunc.
type Env = expr.LookupFunc

// ElementConstraint is the common shape every per-kind bundle
// implements, so Array<E>'s Elements and Tuple's Element<I,...> can
// hold a bundle for an unspecified child kind without knowing which
// concrete kind it is.
type ElementConstraint interface {
	// CheckValue reports a non-empty violation reason if v fails any
	// constraint in the bundle, evaluating expression-valued bounds
	// against env.
	CheckValue(env Env, v value.Value) (reason string, err error)
	Describe() string
	Dependencies() []string
}

// asConst evaluates e if it carries no dependencies, returning the
// constant value and true; returns false if e depends on a variable,
// so the caller must defer the check to generation time.
func asConst(e *expr.Expression) (int64, bool) {
	if e == nil {
		return 0, false
	}
	if len(e.Dependencies()) != 0 {
		return 0, false
	}
	n, err := e.Evaluate(func(string) (int64, error) { return 0, nil })
	if err != nil {
		return 0, false
	}
	return n, true
}

func mustExpr(src string) *expr.Expression {
	e, err := expr.Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

func constExpr(n int64) *expr.Expression {
	return expr.MustParse(strconv.FormatInt(n, 10))
}

func impossible(left, right string) error {
	return &mverrors.ImpossibleToSatisfy{Left: left, Right: right}
}

func mismatch(from, to string) error {
	return &mverrors.MVariableTypeMismatch{ConvertingFrom: from, ConvertingTo: to}
}
