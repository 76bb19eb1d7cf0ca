// Package testcase is a thin orchestration façade: load a variable
// spec, generate or import it, then export the result in one
// straight-line sequence.
package testcase

import (
	"fmt"
	"io"

	"github.com/mathcrusader/vargen/pkg/ioengine"
	"github.com/mathcrusader/vargen/pkg/policy"
	"github.com/mathcrusader/vargen/pkg/resolver"
	"github.com/mathcrusader/vargen/pkg/rng"
	"github.com/mathcrusader/vargen/pkg/value"
	"github.com/mathcrusader/vargen/pkg/varspec"
)

// TestCase holds one run's resolver context and the order its
// variables generate/import/export in.
type TestCase struct {
	ctx   *resolver.Context
	order []string
}

// New builds a TestCase from a loaded variable spec, seeding generation
// with rngEngine.
func New(spec *varspec.Spec, rngEngine *rng.Engine) (*TestCase, error) {
	ctx, order, err := varspec.Build(spec, rngEngine)
	if err != nil {
		return nil, err
	}
	return &TestCase{ctx: ctx, order: order}, nil
}

// Order returns the generation order this TestCase was built with.
func (tc *TestCase) Order() []string { return append([]string(nil), tc.order...) }

// Generate resolves every declared variable, in order.
func (tc *TestCase) Generate() error {
	return tc.ctx.GenerateInOrder(tc.order)
}

// Value returns the current value of a declared variable, if one has
// been generated or imported yet.
func (tc *TestCase) Value(name string) (value.Value, bool) {
	return tc.ctx.Store().Get(name)
}

// Export writes every declared variable's current value to w, in
// order, separated by a newline between variables.
func (tc *TestCase) Export(w io.Writer) error {
	writer := ioengine.NewWriter(w)
	wctx := tc.ctx.WithWriter(writer)
	for i, name := range tc.order {
		av, ok := tc.ctx.Variable(name)
		if !ok {
			return fmt.Errorf("variable %q was not declared", name)
		}
		val, ok := tc.ctx.Store().Get(name)
		if !ok {
			return fmt.Errorf("variable %q has not been generated", name)
		}
		if err := av.Write(wctx, val); err != nil {
			return err
		}
		if i < len(tc.order)-1 {
			if err := writer.WriteWhitespace(policy.Newline); err != nil {
				return err
			}
		}
	}
	return writer.Flush()
}

// Import reads every declared variable's value from r, in order,
// validating each against its installed constraints as it is read.
func (tc *TestCase) Import(r io.Reader, ws policy.WhitespaceStrictness, num policy.NumericStrictness) error {
	cursor := ioengine.NewCursor(r, ws, num)
	rctx := tc.ctx.WithCursor(cursor)
	for i, name := range tc.order {
		av, ok := tc.ctx.Variable(name)
		if !ok {
			return fmt.Errorf("variable %q was not declared", name)
		}
		val, err := av.Read(rctx)
		if err != nil {
			return err
		}
		if err := tc.ctx.Store().Set(name, val); err != nil {
			return err
		}
		if i < len(tc.order)-1 {
			if err := cursor.ReadWhitespace(policy.Newline); err != nil {
				return err
			}
		}
	}
	return cursor.ReadEOF()
}
