package constraint

import (
	"fmt"
	"sort"

	"github.com/mathcrusader/vargen/pkg/policy"
	"github.com/mathcrusader/vargen/pkg/value"
)

// TupleBundle holds every constraint installed on a Tuple<...> variable:
// a positional Elements list (index i constrains component i) plus a
// whole-tuple separator and Exactly/OneOf.
type TupleBundle struct {
	Elements   []ElementConstraint
	separator  *policy.Whitespace
	wholeExact [][]value.Value
	wholeOneOf [][][]value.Value
}

// NewTupleBundle returns a bundle sized for n components, none
// constrained yet.
func NewTupleBundle(n int) *TupleBundle {
	return &TupleBundle{Elements: make([]ElementConstraint, n)}
}

// SetElement installs (merging, if one already exists) the constraint
// bundle for component i.
func (b *TupleBundle) SetElement(i int, c ElementConstraint) {
	if b.Elements[i] != nil {
		b.Elements[i] = All{b.Elements[i], c}
		return
	}
	b.Elements[i] = c
}

// SetSeparator installs the print/read separator between components.
// A second call with a different separator raises ImpossibleToSatisfy,
// mirroring the native "multiple IOSeparators" conflict.
func (b *TupleBundle) SetSeparator(ws policy.Whitespace) error {
	if b.separator != nil && *b.separator != ws {
		return impossible(fmt.Sprintf("IOSeparator(%s)", b.separator.String()), fmt.Sprintf("IOSeparator(%s)", ws.String()))
	}
	b.separator = &ws
	return nil
}

// Separator returns the installed separator, defaulting to a single
// space when none was set.
func (b *TupleBundle) Separator() policy.Whitespace {
	if b.separator == nil {
		return policy.Space
	}
	return *b.separator
}

// Exactly pins the whole tuple to one value.
func (b *TupleBundle) Exactly(v []value.Value) { b.wholeExact = append(b.wholeExact, v) }

// OneOf restricts the whole tuple to one of options.
func (b *TupleBundle) OneOf(options [][]value.Value) { b.wholeOneOf = append(b.wholeOneOf, options) }

// Check reports a violation reason for elems, which must have exactly
// len(b.Elements) components.
func (b *TupleBundle) Check(env Env, elems []value.Value) (string, error) {
	if len(elems) != len(b.Elements) {
		return fmt.Sprintf("has %d components but expected %d", len(elems), len(b.Elements)), nil
	}
	for i, c := range b.Elements {
		if c == nil {
			continue
		}
		if reason, err := c.CheckValue(env, elems[i]); err != nil {
			return "", err
		} else if reason != "" {
			return fmt.Sprintf("has component %d that %s", i, reason), nil
		}
	}
	for _, want := range b.wholeExact {
		if !valuesEqual(elems, want) {
			return "does not equal its required exact value", nil
		}
	}
	for _, options := range b.wholeOneOf {
		found := false
		for _, o := range options {
			if valuesEqual(elems, o) {
				found = true
				break
			}
		}
		if !found {
			return "is not one of the allowed whole-tuple options", nil
		}
	}
	return "", nil
}

// CheckValue implements ElementConstraint.
func (b *TupleBundle) CheckValue(env Env, v value.Value) (string, error) {
	elems, ok := v.Vec()
	if !ok {
		return "", mismatch(v.Kind().String(), "Tuple")
	}
	return b.Check(env, elems)
}

func (b *TupleBundle) Describe() string {
	return fmt.Sprintf("a %d-component tuple constrained by its installed Element constraints", len(b.Elements))
}

func (b *TupleBundle) Dependencies() []string {
	set := map[string]struct{}{}
	for _, c := range b.Elements {
		if c == nil {
			continue
		}
		for _, d := range c.Dependencies() {
			set[d] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
