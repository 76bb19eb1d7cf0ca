package variable

import (
	"fmt"
	"math"

	"github.com/mathcrusader/vargen/pkg/constraint"
	"github.com/mathcrusader/vargen/pkg/mverrors"
	"github.com/mathcrusader/vargen/pkg/testctx"
	"github.com/mathcrusader/vargen/pkg/value"
)

// defaultPrintableAlphabet is used when a String variable has a
// SimplePattern but no explicit Alphabet: printable, non-whitespace
// ASCII.
var defaultPrintableAlphabet = func() []byte {
	out := make([]byte, 0, 95)
	for c := byte('!'); c <= '~'; c++ {
		out = append(out, c)
	}
	return out
}()

// String is a variable generating a sequence of printable ASCII
// characters bounded by its installed constraint.StringBundle.
type String struct {
	name        string
	Constraints *constraint.StringBundle
}

// NewString declares a String variable named name.
func NewString(name string, c *constraint.StringBundle) *String {
	if c == nil {
		c = constraint.NewStringBundle()
	}
	return &String{name: name, Constraints: c}
}

func (v *String) Name() string     { return v.name }
func (v *String) Kind() value.Kind { return value.KindString }
func (v *String) Dependencies() []string { return v.Constraints.Dependencies() }
func (v *String) Describe() string {
	return fmt.Sprintf("%s is a string of length %s", v.name, v.Constraints.Length.Describe())
}

func (v *String) alphabet() []byte {
	if a := v.Constraints.Alphabet(); a != nil {
		return a
	}
	return defaultPrintableAlphabet
}

func (v *String) Generate(ctx testctx.ResolverContext) (value.Value, error) {
	return runGenerate(ctx, v.name, func() (value.Value, error) {
		if len(v.Constraints.Alphabet()) == 0 && v.Constraints.Alphabet() != nil {
			return value.Value{}, retry(v.name, "has an Alphabet constraint that allows no characters")
		}

		if p := v.Constraints.Pattern(); p != nil {
			s, err := p.Generate(v.alphabet(), ctx.Lookup, ctx.RNG())
			if err != nil {
				return value.Value{}, err
			}
			return v.checkedResult(ctx, s)
		}

		if v.Constraints.Alphabet() == nil {
			return value.Value{}, &mverrors.ConfigurationError{Site: v.name, Message: "a String without a SimplePattern needs an Alphabet to generate"}
		}

		lo, hi, err := v.Constraints.Length.ResolvedRange(ctx.Lookup)
		if err != nil {
			return value.Value{}, err
		}
		if lo < 0 {
			lo = 0
		}
		if hi == math.MaxInt64 && !v.Constraints.Length.HasExactly() && !v.Constraints.Length.HasOneOf() {
			return value.Value{}, &mverrors.ConfigurationError{Site: v.name, Message: "a String without a SimplePattern needs a bounded Length to generate"}
		}
		n, err := drawFromIntBundleInRange(ctx, v.name, v.Constraints.Length, lo, hi)
		if err != nil {
			return value.Value{}, err
		}

		alphabet := v.alphabet()
		s, err := v.generateOfLength(ctx, alphabet, int(n))
		if err != nil {
			return value.Value{}, err
		}
		return v.checkedResult(ctx, s)
	})
}

// generateOfLength draws n characters from alphabet, respecting
// DistinctCharacters by sampling without replacement when requested.
func (v *String) generateOfLength(ctx testctx.ResolverContext, alphabet []byte, n int) (string, error) {
	if !v.Constraints.DistinctCharacters() {
		buf := make([]byte, n)
		for i := range buf {
			idx, err := ctx.RNG().IntRange(0, int64(len(alphabet)-1))
			if err != nil {
				return "", err
			}
			buf[i] = alphabet[idx]
		}
		return string(buf), nil
	}

	if n > len(alphabet) {
		return "", retry(v.name, fmt.Sprintf("requires %d distinct characters but its alphabet has only %d", n, len(alphabet)))
	}
	pool := append([]byte(nil), alphabet...)
	ctx.RNG().Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return string(pool[:n]), nil
}

func (v *String) checkedResult(ctx testctx.ResolverContext, s string) (value.Value, error) {
	reason, err := v.Constraints.Check(ctx.Lookup, s)
	if err != nil {
		return value.Value{}, err
	}
	if reason != "" {
		return value.Value{}, retry(v.name, reason)
	}
	return value.Str(s), nil
}

func (v *String) Validate(ctx testctx.AnalysisContext, val value.Value) error {
	s, ok := val.Str()
	if !ok {
		return &mverrors.MVariableTypeMismatch{ConvertingFrom: val.Kind().String(), ConvertingTo: "String"}
	}
	reason, err := v.Constraints.Check(ctx.Lookup, s)
	if err != nil {
		return err
	}
	if reason != "" {
		return &mverrors.ValidationError{Name: v.name, Reason: reason}
	}
	return nil
}

func (v *String) Read(ctx testctx.ReaderContext) (value.Value, error) {
	tok, err := ctx.Cursor().ReadToken()
	if err != nil {
		return value.Value{}, err
	}
	val := value.Str(tok)
	if err := v.Validate(ctx, val); err != nil {
		return value.Value{}, ioValidationError(ctx, err)
	}
	return val, nil
}

func (v *String) Write(ctx testctx.WriterContext, val value.Value) error {
	s, ok := val.Str()
	if !ok {
		return &mverrors.MVariableTypeMismatch{ConvertingFrom: val.Kind().String(), ConvertingTo: "String"}
	}
	return ctx.Writer().WriteToken(s)
}
