package constraint

import (
	"fmt"

	"github.com/mathcrusader/vargen/pkg/value"
)

// CustomPredicate is a user-supplied check run after every native
// constraint passes. It returns a non-empty reason to fail the value.
type CustomPredicate func(env Env, v value.Value) (reason string, err error)

// Custom wraps a CustomPredicate with a human description and its
// named dependencies, so it composes with the native bundles as an
// ElementConstraint.
type Custom struct {
	Name    string
	Predicate CustomPredicate
	deps    []string
}

// NewCustom builds a Custom constraint. deps lists any variable names
// the predicate reads through env.
func NewCustom(name string, deps []string, predicate CustomPredicate) *Custom {
	return &Custom{Name: name, Predicate: predicate, deps: deps}
}

func (c *Custom) CheckValue(env Env, v value.Value) (string, error) {
	return c.Predicate(env, v)
}

func (c *Custom) Describe() string {
	return fmt.Sprintf("a custom constraint (%s)", c.Name)
}

func (c *Custom) Dependencies() []string { return c.deps }
