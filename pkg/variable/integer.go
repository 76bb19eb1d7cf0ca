package variable

import (
	"fmt"

	"github.com/mathcrusader/vargen/pkg/constraint"
	"github.com/mathcrusader/vargen/pkg/mverrors"
	"github.com/mathcrusader/vargen/pkg/testctx"
	"github.com/mathcrusader/vargen/pkg/value"
)

// Integer is a variable generating a signed 64-bit value bounded by its
// installed constraint.IntBundle.
type Integer struct {
	name        string
	Constraints *constraint.IntBundle
}

// NewInteger declares an Integer variable named name.
func NewInteger(name string, c *constraint.IntBundle) *Integer {
	if c == nil {
		c = constraint.NewIntBundle()
	}
	return &Integer{name: name, Constraints: c}
}

func (v *Integer) Name() string         { return v.name }
func (v *Integer) Kind() value.Kind     { return value.KindInteger }
func (v *Integer) Dependencies() []string { return v.Constraints.Dependencies() }
func (v *Integer) Describe() string {
	return fmt.Sprintf("%s is %s", v.name, v.Constraints.Describe())
}

func (v *Integer) Generate(ctx testctx.ResolverContext) (value.Value, error) {
	return runGenerate(ctx, v.name, func() (value.Value, error) {
		n, err := drawFromIntBundle(ctx, v.name, v.Constraints)
		if err != nil {
			return value.Value{}, err
		}
		if reason, err := v.Constraints.Check(ctx.Lookup, n); err != nil {
			return value.Value{}, err
		} else if reason != "" {
			return value.Value{}, retry(v.name, reason)
		}
		return value.Int(n), nil
	})
}

func (v *Integer) Validate(ctx testctx.AnalysisContext, val value.Value) error {
	n, ok := val.Int()
	if !ok {
		return &mverrors.MVariableTypeMismatch{ConvertingFrom: val.Kind().String(), ConvertingTo: "Integer"}
	}
	reason, err := v.Constraints.Check(ctx.Lookup, n)
	if err != nil {
		return err
	}
	if reason != "" {
		return &mverrors.ValidationError{Name: v.name, Reason: reason}
	}
	return nil
}

func (v *Integer) Read(ctx testctx.ReaderContext) (value.Value, error) {
	n, err := ctx.Cursor().ReadInt()
	if err != nil {
		return value.Value{}, err
	}
	val := value.Int(n)
	if err := v.Validate(ctx, val); err != nil {
		return value.Value{}, ioValidationError(ctx, err)
	}
	return val, nil
}

func (v *Integer) Write(ctx testctx.WriterContext, val value.Value) error {
	n, ok := val.Int()
	if !ok {
		return &mverrors.MVariableTypeMismatch{ConvertingFrom: val.Kind().String(), ConvertingTo: "Integer"}
	}
	return ctx.Writer().WriteInt(n)
}
