package expr

import (
	"regexp"
	"sort"

	"github.com/mathcrusader/vargen/pkg/mverrors"
)

// identPattern matches the variable-name grammar: first character
// alphabetic, subsequent characters alphanumeric or underscore.
var identPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// IsValidIdentifier reports whether name follows the variable-name
// grammar, the same grammar the lexer accepts for identifiers. Callers use
// it to validate a name before referencing it in an expression.
func IsValidIdentifier(name string) bool {
	return identPattern.MatchString(name)
}

// LookupFunc resolves an identifier to its current int64 value. It
// should return a descriptive error (conventionally a
// mverrors.VariableNotFound) when name is unknown.
type LookupFunc func(name string) (int64, error)

// Expression is a parsed arithmetic tree over identifiers and int64
// literals. It is immutable and safe to evaluate repeatedly against
// different lookup functions.
type Expression struct {
	src  string
	root node
}

// Parse compiles src into an Expression. An empty or syntactically
// malformed input fails with *mverrors.InvalidExpression.
func Parse(src string) (*Expression, error) {
	root, err := parse(src)
	if err != nil {
		return nil, err
	}
	return &Expression{src: src, root: root}, nil
}

// MustParse is like Parse but panics on error; intended for expressions
// that are compile-time constants in calling code (e.g. tests).
func MustParse(src string) *Expression {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns the original source text.
func (e *Expression) String() string { return e.src }

// Evaluate evaluates the expression using lookup to resolve identifiers.
// Overflow, division/modulo by zero, and lookup failures all surface as
// an error; lookup failures are returned unwrapped so callers can
// distinguish *mverrors.VariableNotFound from *mverrors.EvaluationError.
func (e *Expression) Evaluate(lookup LookupFunc) (int64, error) {
	v, err := e.root.eval(lookup)
	if err != nil {
		if evalErr, ok := err.(*mverrors.EvaluationError); ok && evalErr.Expression == "" {
			return 0, &mverrors.EvaluationError{Expression: e.src, Message: evalErr.Message}
		}
		return 0, err
	}
	return v, nil
}

// Dependencies returns the set of distinct identifiers referenced by the
// expression, in sorted order.
func (e *Expression) Dependencies() []string {
	set := map[string]struct{}{}
	e.root.dependencies(set)
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// EvaluateConstant parses and evaluates src in one step against an
// always-failing lookup, succeeding only if src contains no identifiers
// (e.g. a plain integer literal or a closed-form expression like
// "3+4*2"). Useful for constraint authors who want to accept either a
// literal or an expression interchangeably.
func EvaluateConstant(src string) (int64, error) {
	e, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return e.Evaluate(func(name string) (int64, error) {
		return 0, &mverrors.VariableNotFound{Name: name}
	})
}
