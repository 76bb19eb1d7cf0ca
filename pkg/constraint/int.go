package constraint

import (
	"fmt"
	"sort"

	"github.com/mathcrusader/vargen/pkg/expr"
	"github.com/mathcrusader/vargen/pkg/value"
)

// SizeHint biases generation toward a stable subrange of an otherwise
// unconstrained integer range, without itself narrowing the range.
type SizeHint int

const (
	SizeAny SizeHint = iota
	SizeSmall
	SizeMedium
	SizeLarge
)

// Stable, implementation-defined bands a SizeHint biases generation
// toward, applied by pkg/variable once the literal [min, max] range is
// known.
const (
	SmallBound  = 1 << 6
	MediumBound = 1 << 20
	LargeBound  = 1 << 40
)

type modEquation struct {
	remainder *expr.Expression
	modulus   *expr.Expression
}

// IntBundle holds every constraint installed on an Integer variable (or
// the Length/NumNodes/NumEdges slot of another kind, which is itself an
// Integer).
type IntBundle struct {
	mins, maxes []*expr.Expression
	exactly     []*expr.Expression
	oneOf       [][]*expr.Expression
	mods        []modEquation
	size        SizeHint
	customs     []*Custom
}

// NewIntBundle returns an empty, unconstrained bundle.
func NewIntBundle() *IntBundle { return &IntBundle{} }

// Between narrows the range to [min, max] inclusive.
func (b *IntBundle) Between(min, max *expr.Expression) {
	b.mins = append(b.mins, min)
	b.maxes = append(b.maxes, max)
}

// AtLeast narrows the range to [min, +inf).
func (b *IntBundle) AtLeast(min *expr.Expression) { b.mins = append(b.mins, min) }

// AtMost narrows the range to (-inf, max].
func (b *IntBundle) AtMost(max *expr.Expression) { b.maxes = append(b.maxes, max) }

// Exactly pins the value to a single expression-valued constant.
func (b *IntBundle) Exactly(v *expr.Expression) { b.exactly = append(b.exactly, v) }

// OneOf restricts the value to one of the listed options.
func (b *IntBundle) OneOf(options []*expr.Expression) { b.oneOf = append(b.oneOf, options) }

// Mod requires value % modulus == remainder (reduced mod modulus).
func (b *IntBundle) Mod(remainder, modulus *expr.Expression) {
	b.mods = append(b.mods, modEquation{remainder, modulus})
}

// AddCustom installs a user-supplied predicate, checked after the
// native constraints pass.
func (b *IntBundle) AddCustom(c *Custom) { b.customs = append(b.customs, c) }

// SetSize installs a generation bias hint.
func (b *IntBundle) SetSize(h SizeHint) { b.size = h }

// Size returns the installed bias hint.
func (b *IntBundle) Size() SizeHint { return b.size }

// Merge combines other into b by set-intersection of every field slot.
// Conflicts that are detectable without an environment (both operands
// are literal constants) raise ImpossibleToSatisfy immediately;
// conflicts that depend on a not-yet-resolved variable surface later,
// as an empty ResolvedRange/ResolvedOneOf at generation time.
func (b *IntBundle) Merge(other *IntBundle) error {
	if lo, loOK := maxConst(b.mins); loOK {
		if hi, hiOK := minConst(other.maxes); hiOK && lo > hi {
			return impossible(fmt.Sprintf("min %d", lo), fmt.Sprintf("max %d", hi))
		}
	}
	if lo, loOK := maxConst(other.mins); loOK {
		if hi, hiOK := minConst(b.maxes); hiOK && lo > hi {
			return impossible(fmt.Sprintf("min %d", lo), fmt.Sprintf("max %d", hi))
		}
	}
	if len(b.exactly) > 0 && len(other.exactly) > 0 {
		a, aOK := asConst(b.exactly[0])
		c, cOK := asConst(other.exactly[0])
		if aOK && cOK && a != c {
			return impossible(fmt.Sprintf("Exactly(%d)", a), fmt.Sprintf("Exactly(%d)", c))
		}
	}
	if len(b.oneOf) > 0 && len(other.oneOf) > 0 {
		if allConst(b.oneOf) && allConst(other.oneOf) {
			if len(intersectConstLists(b.oneOf, other.oneOf)) == 0 {
				return impossible("OneOf(...)", "OneOf(...)")
			}
		}
	}
	b.mins = append(b.mins, other.mins...)
	b.maxes = append(b.maxes, other.maxes...)
	b.exactly = append(b.exactly, other.exactly...)
	b.oneOf = append(b.oneOf, other.oneOf...)
	b.mods = append(b.mods, other.mods...)
	b.customs = append(b.customs, other.customs...)
	if other.size != SizeAny {
		b.size = other.size
	}
	return nil
}

func maxConst(exprs []*expr.Expression) (int64, bool) {
	found := false
	var best int64
	for _, e := range exprs {
		if n, ok := asConst(e); ok {
			if !found || n > best {
				best = n
				found = true
			}
		}
	}
	return best, found
}

func minConst(exprs []*expr.Expression) (int64, bool) {
	found := false
	var best int64
	for _, e := range exprs {
		if n, ok := asConst(e); ok {
			if !found || n < best {
				best = n
				found = true
			}
		}
	}
	return best, found
}

func allConst(lists [][]*expr.Expression) bool {
	for _, l := range lists {
		for _, e := range l {
			if _, ok := asConst(e); !ok {
				return false
			}
		}
	}
	return true
}

func intersectConstLists(a, b [][]*expr.Expression) []int64 {
	bSet := map[int64]bool{}
	for _, l := range b {
		for _, e := range l {
			n, _ := asConst(e)
			bSet[n] = true
		}
	}
	seen := map[int64]bool{}
	var out []int64
	for _, l := range a {
		for _, e := range l {
			n, _ := asConst(e)
			if bSet[n] && !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}

// ResolvedRange evaluates every Between/AtLeast/AtMost bound under env
// and returns the intersected [lo, hi]. lo defaults to math.MinInt64,
// hi to math.MaxInt64 when unconstrained.
func (b *IntBundle) ResolvedRange(env Env) (lo, hi int64, err error) {
	lo = minInt64
	hi = maxInt64
	for _, e := range b.mins {
		n, err := e.Evaluate(env)
		if err != nil {
			return 0, 0, err
		}
		if n > lo {
			lo = n
		}
	}
	for _, e := range b.maxes {
		n, err := e.Evaluate(env)
		if err != nil {
			return 0, 0, err
		}
		if n < hi {
			hi = n
		}
	}
	return lo, hi, nil
}

const minInt64 = -1 << 63
const maxInt64 = 1<<63 - 1

// HasExactly reports whether Exactly was ever installed on b, without
// evaluating any expression.
func (b *IntBundle) HasExactly() bool { return len(b.exactly) > 0 }

// HasOneOf reports whether OneOf was ever installed on b, without
// evaluating any expression.
func (b *IntBundle) HasOneOf() bool { return len(b.oneOf) > 0 }

// ResolvedExactly returns the pinned value, if Exactly was ever applied.
func (b *IntBundle) ResolvedExactly(env Env) (int64, bool, error) {
	if len(b.exactly) == 0 {
		return 0, false, nil
	}
	n, err := b.exactly[0].Evaluate(env)
	if err != nil {
		return 0, false, err
	}
	for _, e := range b.exactly[1:] {
		m, err := e.Evaluate(env)
		if err != nil {
			return 0, false, err
		}
		if m != n {
			return 0, false, impossible(fmt.Sprintf("Exactly(%d)", n), fmt.Sprintf("Exactly(%d)", m))
		}
	}
	return n, true, nil
}

// ResolvedOneOf evaluates every OneOf list under env and returns their
// intersection.
func (b *IntBundle) ResolvedOneOf(env Env) ([]int64, bool, error) {
	if len(b.oneOf) == 0 {
		return nil, false, nil
	}
	sets := make([]map[int64]bool, len(b.oneOf))
	for i, list := range b.oneOf {
		sets[i] = map[int64]bool{}
		for _, e := range list {
			n, err := e.Evaluate(env)
			if err != nil {
				return nil, false, err
			}
			sets[i][n] = true
		}
	}
	result := sets[0]
	for _, s := range sets[1:] {
		next := map[int64]bool{}
		for k := range result {
			if s[k] {
				next[k] = true
			}
		}
		result = next
	}
	out := make([]int64, 0, len(result))
	for k := range result {
		out = append(out, k)
	}
	// Sorted so a draw over the options is deterministic for a seed.
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, true, nil
}

// ResolvedMods evaluates every Mod equation's remainder and modulus.
func (b *IntBundle) ResolvedMods(env Env) ([][2]int64, error) {
	out := make([][2]int64, 0, len(b.mods))
	for _, m := range b.mods {
		modulus, err := m.modulus.Evaluate(env)
		if err != nil {
			return nil, err
		}
		rem, err := m.remainder.Evaluate(env)
		if err != nil {
			return nil, err
		}
		if modulus <= 0 {
			return nil, &mismatchModulusErr{modulus}
		}
		rem = ((rem % modulus) + modulus) % modulus
		out = append(out, [2]int64{rem, modulus})
	}
	return out, nil
}

type mismatchModulusErr struct{ modulus int64 }

func (e *mismatchModulusErr) Error() string {
	return fmt.Sprintf("Mod modulus must be positive, got %d", e.modulus)
}

// Check reports a violation reason for v, or "" if v satisfies every
// constraint in the bundle.
func (b *IntBundle) Check(env Env, v int64) (string, error) {
	return b.CheckAs(env, v, "value")
}

// CheckAs is Check with a caller-chosen noun in the violation phrasing,
// so a bundle embedded as another kind's slot reports "has length
// (which is 3) ..." or "has node count (which is 3) ..." instead of
// "has value".
func (b *IntBundle) CheckAs(env Env, v int64, noun string) (string, error) {
	lo, hi, err := b.ResolvedRange(env)
	if err != nil {
		return "", err
	}
	if v < lo || v > hi {
		return fmt.Sprintf("has %s (which is %d) that is not between %d and %d", noun, v, lo, hi), nil
	}
	if n, ok, err := b.ResolvedExactly(env); err != nil {
		return "", err
	} else if ok && v != n {
		return fmt.Sprintf("has %s (which is %d) that is not exactly %d", noun, v, n), nil
	}
	if options, ok, err := b.ResolvedOneOf(env); err != nil {
		return "", err
	} else if ok {
		found := false
		for _, o := range options {
			if o == v {
				found = true
				break
			}
		}
		if !found {
			return fmt.Sprintf("has %s (which is %d) that is not one of the allowed options", noun, v), nil
		}
	}
	mods, err := b.ResolvedMods(env)
	if err != nil {
		return "", err
	}
	for _, m := range mods {
		rem, mod := m[0], m[1]
		got := ((v % mod) + mod) % mod
		if got != rem {
			return fmt.Sprintf("has %s (which is %d) that is not congruent to %d mod %d", noun, v, rem, mod), nil
		}
	}
	for _, c := range b.customs {
		if reason, err := c.CheckValue(env, value.Int(v)); err != nil || reason != "" {
			return reason, err
		}
	}
	return "", nil
}

// CheckValue implements ElementConstraint.
func (b *IntBundle) CheckValue(env Env, v value.Value) (string, error) {
	n, ok := v.Int()
	if !ok {
		return "", mismatch(v.Kind().String(), "Integer")
	}
	return b.Check(env, n)
}

func (b *IntBundle) Describe() string {
	return "an integer constrained by its installed Between/Exactly/OneOf/Mod constraints"
}

func (b *IntBundle) Dependencies() []string {
	set := map[string]struct{}{}
	add := func(e *expr.Expression) {
		for _, d := range e.Dependencies() {
			set[d] = struct{}{}
		}
	}
	for _, e := range b.mins {
		add(e)
	}
	for _, e := range b.maxes {
		add(e)
	}
	for _, e := range b.exactly {
		add(e)
	}
	for _, l := range b.oneOf {
		for _, e := range l {
			add(e)
		}
	}
	for _, m := range b.mods {
		add(m.remainder)
		add(m.modulus)
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
