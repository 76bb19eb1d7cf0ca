package variable

import (
	"fmt"

	"github.com/mathcrusader/vargen/pkg/constraint"
	"github.com/mathcrusader/vargen/pkg/mverrors"
	"github.com/mathcrusader/vargen/pkg/testctx"
	"github.com/mathcrusader/vargen/pkg/value"
)

// Variant is a discriminated union over a fixed set of alternatives,
// one element factory per alternative, bounded by its installed
// constraint.VariantBundle. The discriminator token always precedes
// the payload on the wire; a None alternative has no payload and no
// separator.
type Variant struct {
	name         string
	Constraints  *constraint.VariantBundle
	Alternatives []ElementFactory
}

// NewVariant declares a Variant variable named name, with one element
// factory per alternative matching the order of c's discriminators.
func NewVariant(name string, c *constraint.VariantBundle, alternatives []ElementFactory) *Variant {
	return &Variant{name: name, Constraints: c, Alternatives: alternatives}
}

func (v *Variant) Name() string           { return v.name }
func (v *Variant) Kind() value.Kind       { return value.KindVariant }
func (v *Variant) Dependencies() []string { return v.Constraints.Dependencies() }
func (v *Variant) Describe() string {
	return fmt.Sprintf("%s is %s", v.name, v.Constraints.Describe())
}

func (v *Variant) elementNamed(i int) testctx.AbstractVariable {
	return v.Alternatives[i](fmt.Sprintf("%s.%d", v.name, i))
}

func (v *Variant) Generate(ctx testctx.ResolverContext) (value.Value, error) {
	return runGenerate(ctx, v.name, func() (value.Value, error) {
		eligible := v.Constraints.EligibleAlternatives()
		if len(eligible) == 0 {
			return value.Value{}, retry(v.name, "has no eligible alternative left after its Exactly/OneOf/Alternative constraints")
		}
		pick, err := ctx.RNG().IntRange(0, int64(len(eligible)-1))
		if err != nil {
			return value.Value{}, err
		}
		idx := eligible[pick]

		elem := v.elementNamed(idx)
		var payload value.Value
		if elem.Kind() == value.KindNone {
			payload = value.None()
		} else {
			payload, err = elem.Generate(ctx)
			if err != nil {
				return value.Value{}, err
			}
		}

		vv := value.Var(idx, payload)
		reason, err := v.Constraints.Check(ctx.Lookup, value.VariantValue{Index: idx, Payload: payload})
		if err != nil {
			return value.Value{}, err
		}
		if reason != "" {
			return value.Value{}, retry(v.name, reason)
		}
		return vv, nil
	})
}

func (v *Variant) Validate(ctx testctx.AnalysisContext, val value.Value) error {
	vv, ok := val.VariantValue()
	if !ok {
		return &mverrors.MVariableTypeMismatch{ConvertingFrom: val.Kind().String(), ConvertingTo: "Variant"}
	}
	reason, err := v.Constraints.Check(ctx.Lookup, vv)
	if err != nil {
		return err
	}
	if reason != "" {
		return &mverrors.ValidationError{Name: v.name, Reason: reason}
	}
	return nil
}

func (v *Variant) Read(ctx testctx.ReaderContext) (value.Value, error) {
	tok, err := ctx.Cursor().ReadToken()
	if err != nil {
		return value.Value{}, err
	}
	idx := -1
	for i, d := range v.Constraints.Discriminators {
		if d == tok {
			idx = i
			break
		}
	}
	if idx < 0 {
		return value.Value{}, ioValidationError(ctx, fmt.Errorf("discriminator %q is not one of the declared alternatives", tok))
	}

	elem := v.elementNamed(idx)
	var payload value.Value
	if elem.Kind() != value.KindNone {
		if err := ctx.Cursor().ReadWhitespace(v.Constraints.Separator()); err != nil {
			return value.Value{}, err
		}
		payload, err = elem.Read(ctx)
		if err != nil {
			return value.Value{}, err
		}
	} else {
		payload = value.None()
	}

	val := value.Var(idx, payload)
	if err := v.Validate(ctx, val); err != nil {
		return value.Value{}, ioValidationError(ctx, err)
	}
	return val, nil
}

func (v *Variant) Write(ctx testctx.WriterContext, val value.Value) error {
	vv, ok := val.VariantValue()
	if !ok {
		return &mverrors.MVariableTypeMismatch{ConvertingFrom: val.Kind().String(), ConvertingTo: "Variant"}
	}
	if vv.Index < 0 || vv.Index >= len(v.Constraints.Discriminators) {
		return &mverrors.ConfigurationError{Site: v.name, Message: fmt.Sprintf("alternative index %d out of range", vv.Index)}
	}
	if err := ctx.Writer().WriteToken(v.Constraints.Discriminators[vv.Index]); err != nil {
		return err
	}

	elem := v.elementNamed(vv.Index)
	if elem.Kind() != value.KindNone {
		if err := ctx.Writer().WriteWhitespace(v.Constraints.Separator()); err != nil {
			return err
		}
		if err := elem.Write(ctx, vv.Payload); err != nil {
			return err
		}
	}
	return nil
}
