package constraint

import (
	"fmt"
	"sort"

	"github.com/mathcrusader/vargen/pkg/policy"
	"github.com/mathcrusader/vargen/pkg/value"
)

// VariantBundle holds every constraint installed on a Variant<...>
// variable: a per-alternative Alternative<I,...> constraint list, the
// discriminator token for each alternative, and the separator printed
// between the discriminator and a non-None payload.
type VariantBundle struct {
	Alternatives   []ElementConstraint
	Discriminators []string
	separator      policy.Whitespace
	eliminated     []bool
	exactIndex     int
	exactSet       bool
}

// NewVariantBundle returns a bundle with n alternatives, each
// identified by the matching entry of discriminators (len must equal
// n).
func NewVariantBundle(discriminators []string) *VariantBundle {
	n := len(discriminators)
	return &VariantBundle{
		Alternatives:   make([]ElementConstraint, n),
		Discriminators: discriminators,
		separator:      policy.Space,
		eliminated:     make([]bool, n),
	}
}

// SetAlternative installs the constraint bundle for alternative i.
func (b *VariantBundle) SetAlternative(i int, c ElementConstraint) { b.Alternatives[i] = c }

// SetSeparator installs the discriminator/payload separator.
func (b *VariantBundle) SetSeparator(ws policy.Whitespace) { b.separator = ws }

// Separator returns the installed separator.
func (b *VariantBundle) Separator() policy.Whitespace { return b.separator }

// Eliminate removes alternative i from consideration (used by OneOf
// restricted to a subset of alternatives).
func (b *VariantBundle) Eliminate(i int) { b.eliminated[i] = true }

// ExactlyIndex pins the chosen alternative to index i, auto-promoting
// the matching alternative the way a native Exactly<Ai> would.
func (b *VariantBundle) ExactlyIndex(i int) error {
	if b.exactSet && b.exactIndex != i {
		return impossible(fmt.Sprintf("Exactly(alternative %d)", b.exactIndex), fmt.Sprintf("Exactly(alternative %d)", i))
	}
	b.exactIndex = i
	b.exactSet = true
	return nil
}

// EligibleAlternatives returns the indexes not eliminated by Exactly or
// a restrictive OneOf.
func (b *VariantBundle) EligibleAlternatives() []int {
	if b.exactSet {
		return []int{b.exactIndex}
	}
	var out []int
	for i, gone := range b.eliminated {
		if !gone {
			out = append(out, i)
		}
	}
	return out
}

// Check reports a violation reason for v.
func (b *VariantBundle) Check(env Env, v value.VariantValue) (string, error) {
	if v.Index < 0 || v.Index >= len(b.Alternatives) {
		return fmt.Sprintf("has alternative index %d out of range", v.Index), nil
	}
	if b.eliminated[v.Index] {
		return fmt.Sprintf("chose alternative %d which is eliminated by its constraints", v.Index), nil
	}
	if b.exactSet && v.Index != b.exactIndex {
		return fmt.Sprintf("chose alternative %d but must choose alternative %d", v.Index, b.exactIndex), nil
	}
	if c := b.Alternatives[v.Index]; c != nil {
		reason, err := c.CheckValue(env, v.Payload)
		if err != nil {
			return "", err
		}
		if reason != "" {
			return fmt.Sprintf("has alternative %d whose payload %s", v.Index, reason), nil
		}
	}
	return "", nil
}

// CheckValue implements ElementConstraint.
func (b *VariantBundle) CheckValue(env Env, v value.Value) (string, error) {
	vv, ok := v.VariantValue()
	if !ok {
		return "", mismatch(v.Kind().String(), "Variant")
	}
	return b.Check(env, vv)
}

func (b *VariantBundle) Describe() string {
	return fmt.Sprintf("a variant over %d alternatives constrained by its installed Alternative constraints", len(b.Alternatives))
}

func (b *VariantBundle) Dependencies() []string {
	set := map[string]struct{}{}
	for _, c := range b.Alternatives {
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
