package constraint

import (
	"fmt"
	"sort"

	"github.com/mathcrusader/vargen/pkg/pattern"
	"github.com/mathcrusader/vargen/pkg/value"
)

// StringBundle holds every constraint installed on a String variable.
type StringBundle struct {
	Length      *IntBundle
	alphabet    map[byte]bool
	distinct    bool
	pattern     *pattern.Pattern
	wholeExact  []string
	wholeOneOf  [][]string
	customs     []*Custom
}

// NewStringBundle returns an empty bundle with an unconstrained Length.
func NewStringBundle() *StringBundle {
	return &StringBundle{Length: NewIntBundle()}
}

// SetAlphabet restricts characters to charset, intersecting with any
// alphabet already installed.
func (b *StringBundle) SetAlphabet(charset []byte) {
	next := map[byte]bool{}
	for _, c := range charset {
		if b.alphabet == nil || b.alphabet[c] {
			next[c] = true
		}
	}
	b.alphabet = next
}

// Alphabet returns the installed alphabet, or nil if none was set.
func (b *StringBundle) Alphabet() []byte {
	if b.alphabet == nil {
		return nil
	}
	out := make([]byte, 0, len(b.alphabet))
	for c := range b.alphabet {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SetDistinctCharacters requires every character to be unique.
func (b *StringBundle) SetDistinctCharacters() { b.distinct = true }

// DistinctCharacters reports whether distinctness was required.
func (b *StringBundle) DistinctCharacters() bool { return b.distinct }

// SetPattern installs a SimplePattern constraint.
func (b *StringBundle) SetPattern(p *pattern.Pattern) { b.pattern = p }

// Pattern returns the installed pattern, or nil.
func (b *StringBundle) Pattern() *pattern.Pattern { return b.pattern }

// Exactly pins the whole string to one value.
func (b *StringBundle) Exactly(s string) { b.wholeExact = append(b.wholeExact, s) }

// OneOf restricts the whole string to one of options.
func (b *StringBundle) OneOf(options []string) { b.wholeOneOf = append(b.wholeOneOf, options) }

// AddCustom installs a user-supplied predicate, checked after the
// native constraints pass.
func (b *StringBundle) AddCustom(c *Custom) { b.customs = append(b.customs, c) }

// Merge combines other into b.
func (b *StringBundle) Merge(other *StringBundle) error {
	if err := b.Length.Merge(other.Length); err != nil {
		return err
	}
	if other.alphabet != nil {
		if b.alphabet == nil {
			b.alphabet = map[byte]bool{}
			for c := range other.alphabet {
				b.alphabet[c] = true
			}
		} else {
			next := map[byte]bool{}
			for c := range b.alphabet {
				if other.alphabet[c] {
					next[c] = true
				}
			}
			if len(next) == 0 {
				return impossible("Alphabet(...)", "Alphabet(...)")
			}
			b.alphabet = next
		}
	}
	if other.distinct {
		b.distinct = true
	}
	if other.pattern != nil {
		if b.pattern != nil && b.pattern.String() != other.pattern.String() {
			return impossible("SimplePattern("+b.pattern.String()+")", "SimplePattern("+other.pattern.String()+")")
		}
		b.pattern = other.pattern
	}
	if len(b.wholeExact) > 0 && len(other.wholeExact) > 0 && b.wholeExact[0] != other.wholeExact[0] {
		return impossible("Exactly("+b.wholeExact[0]+")", "Exactly("+other.wholeExact[0]+")")
	}
	b.wholeExact = append(b.wholeExact, other.wholeExact...)
	b.wholeOneOf = append(b.wholeOneOf, other.wholeOneOf...)
	b.customs = append(b.customs, other.customs...)
	return nil
}

// Check reports a violation reason for s, or "" if s satisfies every
// constraint in the bundle.
func (b *StringBundle) Check(env Env, s string) (string, error) {
	if reason, err := b.Length.CheckAs(env, int64(len(s)), "length"); err != nil || reason != "" {
		return reason, err
	}
	if b.alphabet != nil {
		for _, c := range []byte(s) {
			if !b.alphabet[c] {
				return fmt.Sprintf("contains character %q outside its allowed alphabet", string(c)), nil
			}
		}
	}
	if b.distinct {
		seen := map[byte]bool{}
		for _, c := range []byte(s) {
			if seen[c] {
				return fmt.Sprintf("has a repeated character %q but requires distinct characters", string(c)), nil
			}
			seen[c] = true
		}
	}
	if b.pattern != nil {
		ok, err := b.pattern.Match(s, env)
		if err != nil {
			return "", err
		}
		if !ok {
			return fmt.Sprintf("does not match pattern %q", b.pattern.String()), nil
		}
	}
	if len(b.wholeExact) > 0 && s != b.wholeExact[0] {
		return fmt.Sprintf("is %q but must be exactly %q", s, b.wholeExact[0]), nil
	}
	for _, options := range b.wholeOneOf {
		found := false
		for _, o := range options {
			if o == s {
				found = true
				break
			}
		}
		if !found {
			return fmt.Sprintf("is %q but is not one of the allowed options", s), nil
		}
	}
	for _, c := range b.customs {
		if reason, err := c.CheckValue(env, value.Str(s)); err != nil || reason != "" {
			return reason, err
		}
	}
	return "", nil
}

// CheckValue implements ElementConstraint.
func (b *StringBundle) CheckValue(env Env, v value.Value) (string, error) {
	s, ok := v.Str()
	if !ok {
		return "", mismatch(v.Kind().String(), "String")
	}
	return b.Check(env, s)
}

func (b *StringBundle) Describe() string {
	return "a string constrained by its installed Length/Alphabet/Pattern constraints"
}

func (b *StringBundle) Dependencies() []string {
	set := map[string]struct{}{}
	for _, d := range b.Length.Dependencies() {
		set[d] = struct{}{}
	}
	if b.pattern != nil {
		for _, d := range b.pattern.Dependencies() {
			set[d] = struct{}{}
		}
	}
	for _, c := range b.customs {
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
