package variable

import (
	"fmt"

	"github.com/mathcrusader/vargen/pkg/constraint"
	"github.com/mathcrusader/vargen/pkg/mverrors"
	"github.com/mathcrusader/vargen/pkg/testctx"
	"github.com/mathcrusader/vargen/pkg/value"
)

// Tuple is a variable generating a fixed-size heterogeneous sequence,
// one element factory per position, bounded by its installed
// constraint.TupleBundle.
type Tuple struct {
	name        string
	Constraints *constraint.TupleBundle
	Elements    []ElementFactory
}

// NewTuple declares a Tuple variable named name with one element
// factory per component, in order.
func NewTuple(name string, c *constraint.TupleBundle, elements []ElementFactory) *Tuple {
	if c == nil {
		c = constraint.NewTupleBundle(len(elements))
	}
	return &Tuple{name: name, Constraints: c, Elements: elements}
}

func (v *Tuple) Name() string           { return v.name }
func (v *Tuple) Kind() value.Kind       { return value.KindTuple }
func (v *Tuple) Dependencies() []string { return v.Constraints.Dependencies() }
func (v *Tuple) Describe() string       { return fmt.Sprintf("%s is %s", v.name, v.Constraints.Describe()) }

func (v *Tuple) Generate(ctx testctx.ResolverContext) (value.Value, error) {
	return runGenerate(ctx, v.name, func() (value.Value, error) {
		elems := make([]value.Value, len(v.Elements))
		for i, factory := range v.Elements {
			elemName := fmt.Sprintf("%s.%d", v.name, i)
			elem := factory(elemName)
			ev, err := elem.Generate(ctx)
			if err != nil {
				return value.Value{}, err
			}
			elems[i] = ev
		}

		reason, err := v.Constraints.Check(ctx.Lookup, elems)
		if err != nil {
			return value.Value{}, err
		}
		if reason != "" {
			return value.Value{}, retry(v.name, reason)
		}
		return value.Tup(elems), nil
	})
}

func (v *Tuple) Validate(ctx testctx.AnalysisContext, val value.Value) error {
	if val.Kind() != value.KindTuple {
		return &mverrors.MVariableTypeMismatch{ConvertingFrom: val.Kind().String(), ConvertingTo: "Tuple"}
	}
	elems, _ := val.Vec()
	reason, err := v.Constraints.Check(ctx.Lookup, elems)
	if err != nil {
		return err
	}
	if reason != "" {
		return &mverrors.ValidationError{Name: v.name, Reason: reason}
	}
	return nil
}

func (v *Tuple) Read(ctx testctx.ReaderContext) (value.Value, error) {
	elems := make([]value.Value, len(v.Elements))
	for i, factory := range v.Elements {
		if i > 0 {
			if err := ctx.Cursor().ReadWhitespace(v.Constraints.Separator()); err != nil {
				return value.Value{}, err
			}
		}
		elemName := fmt.Sprintf("%s.%d", v.name, i)
		elem := factory(elemName)
		ev, err := elem.Read(ctx)
		if err != nil {
			return value.Value{}, err
		}
		elems[i] = ev
	}

	val := value.Tup(elems)
	if err := v.Validate(ctx, val); err != nil {
		return value.Value{}, ioValidationError(ctx, err)
	}
	return val, nil
}

func (v *Tuple) Write(ctx testctx.WriterContext, val value.Value) error {
	if val.Kind() != value.KindTuple {
		return &mverrors.MVariableTypeMismatch{ConvertingFrom: val.Kind().String(), ConvertingTo: "Tuple"}
	}
	elems, _ := val.Vec()
	for i, factory := range v.Elements {
		if i > 0 {
			if err := ctx.Writer().WriteWhitespace(v.Constraints.Separator()); err != nil {
				return err
			}
		}
		elemName := fmt.Sprintf("%s.%d", v.name, i)
		elem := factory(elemName)
		if err := elem.Write(ctx, elems[i]); err != nil {
			return err
		}
	}
	return nil
}
