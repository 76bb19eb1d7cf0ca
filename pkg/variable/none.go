package variable

import (
	"github.com/mathcrusader/vargen/pkg/mverrors"
	"github.com/mathcrusader/vargen/pkg/testctx"
	"github.com/mathcrusader/vargen/pkg/value"
)

// None is a placeholder variable representing no value. It is the
// inert alternative of a Variant standing in for "nothing" (e.g. the
// null case of an optional field); it cannot be generated, read, or
// written directly.
type None struct {
	name string
}

// NewNone declares a None variable named name.
func NewNone(name string) *None { return &None{name: name} }

func (v *None) Name() string           { return v.name }
func (v *None) Kind() value.Kind       { return value.KindNone }
func (v *None) Dependencies() []string { return nil }
func (v *None) Describe() string       { return v.name + " has no value" }

func (v *None) configErr(site string) error {
	return &mverrors.ConfigurationError{Site: site, Message: "None variable represents no value"}
}

func (v *None) Generate(ctx testctx.ResolverContext) (value.Value, error) {
	return value.Value{}, v.configErr(v.name + ".Generate")
}

func (v *None) Validate(ctx testctx.AnalysisContext, val value.Value) error {
	if val.Kind() != value.KindNone {
		return &mverrors.MVariableTypeMismatch{ConvertingFrom: val.Kind().String(), ConvertingTo: "None"}
	}
	return nil
}

func (v *None) Read(ctx testctx.ReaderContext) (value.Value, error) {
	return value.Value{}, v.configErr(v.name + ".Read")
}

func (v *None) Write(ctx testctx.WriterContext, val value.Value) error {
	return v.configErr(v.name + ".Write")
}
