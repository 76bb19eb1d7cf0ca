package variable

import (
	"fmt"
	"math"

	"github.com/mathcrusader/vargen/pkg/constraint"
	"github.com/mathcrusader/vargen/pkg/mverrors"
	"github.com/mathcrusader/vargen/pkg/testctx"
	"github.com/mathcrusader/vargen/pkg/value"
)

// ElementFactory builds a fresh element variable named name, for use as
// the i-th element of an Array or Tuple. The same factory is invoked
// once per index with a distinct qualified name so each element gets
// its own handler retry frame.
type ElementFactory func(name string) testctx.AbstractVariable

// Array is a variable generating a fixed- or variable-length sequence
// of elements of a single kind, bounded by its installed
// constraint.ArrayBundle.
type Array struct {
	name        string
	Constraints *constraint.ArrayBundle
	NewElement  ElementFactory
}

// NewArray declares an Array variable named name, whose elements are
// produced by newElement.
func NewArray(name string, c *constraint.ArrayBundle, newElement ElementFactory) *Array {
	if c == nil {
		c = constraint.NewArrayBundle()
	}
	return &Array{name: name, Constraints: c, NewElement: newElement}
}

func (v *Array) Name() string            { return v.name }
func (v *Array) Kind() value.Kind        { return value.KindArray }
func (v *Array) Dependencies() []string  { return v.Constraints.Dependencies() }
func (v *Array) Describe() string {
	return fmt.Sprintf("%s is an array of length %s", v.name, v.Constraints.Length.Describe())
}

// harmonicRetryBudget returns the retry budget for DistinctElements:
// n*H_n + 14n, where H_n is the nth harmonic number. This keeps the
// probability of exhausting the budget (when a large-enough element
// pool exists) under roughly 1%.
func harmonicRetryBudget(n int) int {
	if n <= 0 {
		return 0
	}
	h := 0.0
	for k := 1; k <= n; k++ {
		h += 1.0 / float64(k)
	}
	return int(math.Ceil(float64(n)*h)) + 14*n
}

func (v *Array) Generate(ctx testctx.ResolverContext) (value.Value, error) {
	return runGenerate(ctx, v.name, func() (value.Value, error) {
		lo, hi, err := v.Constraints.Length.ResolvedRange(ctx.Lookup)
		if err != nil {
			return value.Value{}, err
		}
		if lo < 0 {
			lo = 0
		}
		if hi == math.MaxInt64 && !v.Constraints.Length.HasExactly() && !v.Constraints.Length.HasOneOf() {
			return value.Value{}, &mverrors.ConfigurationError{Site: v.name, Message: "Length must be constrained to generate an Array"}
		}
		n, err := drawFromIntBundleInRange(ctx, v.name, v.Constraints.Length, lo, hi)
		if err != nil {
			return value.Value{}, err
		}

		elems, err := v.generateElements(ctx, int(n))
		if err != nil {
			return value.Value{}, err
		}

		if err := v.Constraints.SortValues(elems); err != nil {
			return value.Value{}, err
		}

		reason, err := v.Constraints.Check(ctx.Lookup, elems)
		if err != nil {
			return value.Value{}, err
		}
		if reason != "" {
			return value.Value{}, retry(v.name, reason)
		}
		return value.Arr(elems), nil
	})
}

func (v *Array) generateElements(ctx testctx.ResolverContext, n int) ([]value.Value, error) {
	elems := make([]value.Value, 0, n)
	if !v.Constraints.Distinct {
		for i := 0; i < n; i++ {
			ev, err := v.generateOne(ctx, i)
			if err != nil {
				return nil, err
			}
			elems = append(elems, ev)
		}
		return elems, nil
	}

	// Total attempts across every index are bounded by a single shared
	// harmonic-sum budget: enough slack to find n distinct elements
	// from a large-enough pool with failure probability under ~1%,
	// without letting one hard index starve the rest.
	budget := harmonicRetryBudget(n)
	spent := 0
	for i := 0; i < n; i++ {
		found := false
		for spent < budget {
			spent++
			ev, err := v.generateOne(ctx, i)
			if err != nil {
				return nil, err
			}
			dup := false
			for _, existing := range elems {
				if value.Equal(existing, ev) {
					dup = true
					break
				}
			}
			if !dup {
				elems = append(elems, ev)
				found = true
				break
			}
		}
		if !found {
			return nil, retry(v.name, fmt.Sprintf("could not find a distinct element for index %d within its retry budget", i))
		}
	}
	return elems, nil
}

func (v *Array) generateOne(ctx testctx.ResolverContext, i int) (value.Value, error) {
	elemName := fmt.Sprintf("%s.%d", v.name, i)
	elem := v.NewElement(elemName)
	return elem.Generate(ctx)
}

func (v *Array) Validate(ctx testctx.AnalysisContext, val value.Value) error {
	elems, ok := val.Vec()
	if !ok || val.Kind() != value.KindArray {
		return &mverrors.MVariableTypeMismatch{ConvertingFrom: val.Kind().String(), ConvertingTo: "Array"}
	}
	reason, err := v.Constraints.Check(ctx.Lookup, elems)
	if err != nil {
		return err
	}
	if reason != "" {
		return &mverrors.ValidationError{Name: v.name, Reason: reason}
	}
	return nil
}

func (v *Array) Read(ctx testctx.ReaderContext) (value.Value, error) {
	n, ok, err := v.Constraints.Length.ResolvedExactly(ctx.Lookup)
	if err != nil {
		return value.Value{}, err
	}
	if !ok {
		lo, hi, rerr := v.Constraints.Length.ResolvedRange(ctx.Lookup)
		if rerr != nil {
			return value.Value{}, rerr
		}
		if lo == hi {
			n, ok = lo, true
		}
	}
	if !ok {
		return value.Value{}, &mverrors.ConfigurationError{Site: v.name, Message: "Length has no resolvable unique value to read an Array"}
	}

	elems := make([]value.Value, 0, n)
	for i := int64(0); i < n; i++ {
		if i > 0 {
			if err := ctx.Cursor().ReadWhitespace(v.Constraints.Separator()); err != nil {
				return value.Value{}, err
			}
		}
		elemName := fmt.Sprintf("%s.%d", v.name, i)
		elem := v.NewElement(elemName)
		ev, err := elem.Read(ctx)
		if err != nil {
			return value.Value{}, err
		}
		elems = append(elems, ev)
	}

	val := value.Arr(elems)
	if err := v.Validate(ctx, val); err != nil {
		return value.Value{}, ioValidationError(ctx, err)
	}
	return val, nil
}

func (v *Array) Write(ctx testctx.WriterContext, val value.Value) error {
	elems, ok := val.Vec()
	if !ok {
		return &mverrors.MVariableTypeMismatch{ConvertingFrom: val.Kind().String(), ConvertingTo: "Array"}
	}
	for i, ev := range elems {
		if i > 0 {
			if err := ctx.Writer().WriteWhitespace(v.Constraints.Separator()); err != nil {
				return err
			}
		}
		elemName := fmt.Sprintf("%s.%d", v.name, i)
		elem := v.NewElement(elemName)
		if err := elem.Write(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}
