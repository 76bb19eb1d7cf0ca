package constraint

import (
	"sort"

	"github.com/mathcrusader/vargen/pkg/value"
)

// All runs a sequence of ElementConstraints in order, stopping at (and
// returning) the first violation. It lets a Custom predicate compose
// with a kind's native bundle (e.g. an Integer's Between plus a Custom
// primality check) as a single ElementConstraint.
type All []ElementConstraint

func (a All) CheckValue(env Env, v value.Value) (string, error) {
	for _, c := range a {
		reason, err := c.CheckValue(env, v)
		if err != nil || reason != "" {
			return reason, err
		}
	}
	return "", nil
}

func (a All) Describe() string {
	if len(a) == 0 {
		return "an unconstrained value"
	}
	s := a[0].Describe()
	for _, c := range a[1:] {
		s += " and " + c.Describe()
	}
	return s
}

func (a All) Dependencies() []string {
	set := map[string]struct{}{}
	for _, c := range a {
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
