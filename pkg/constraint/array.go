package constraint

import (
	"fmt"
	"sort"

	"github.com/mathcrusader/vargen/pkg/policy"
	"github.com/mathcrusader/vargen/pkg/value"
)

// SortOrder selects the direction Sorted requires.
type SortOrder int

const (
	SortAscending SortOrder = iota
	SortDescending
)

// ArrayBundle holds every constraint installed on an Array<E> variable.
type ArrayBundle struct {
	Length     *IntBundle
	Elements   ElementConstraint
	Distinct   bool
	sorted     bool
	sortOrder  SortOrder
	separator  *policy.Whitespace
	wholeExact [][]value.Value
	wholeOneOf [][][]value.Value
}

// NewArrayBundle returns a bundle with an unconstrained Length and no
// per-element constraint.
func NewArrayBundle() *ArrayBundle {
	return &ArrayBundle{Length: NewIntBundle()}
}

// SetSorted requires the array to be sorted in order.
func (b *ArrayBundle) SetSorted(order SortOrder) {
	b.sorted = true
	b.sortOrder = order
}

// Sorted reports whether a sort order was installed.
func (b *ArrayBundle) Sorted() (SortOrder, bool) { return b.sortOrder, b.sorted }

// SetSeparator installs the print/read separator between elements. A
// second call with a different separator raises ImpossibleToSatisfy.
func (b *ArrayBundle) SetSeparator(ws policy.Whitespace) error {
	if b.separator != nil && *b.separator != ws {
		return impossible(fmt.Sprintf("IOSeparator(%s)", b.separator.String()), fmt.Sprintf("IOSeparator(%s)", ws.String()))
	}
	b.separator = &ws
	return nil
}

// Separator returns the installed separator, defaulting to a single
// space when none was set.
func (b *ArrayBundle) Separator() policy.Whitespace {
	if b.separator == nil {
		return policy.Space
	}
	return *b.separator
}

// Exactly pins the whole array to one value.
func (b *ArrayBundle) Exactly(v []value.Value) { b.wholeExact = append(b.wholeExact, v) }

// OneOf restricts the whole array to one of options.
func (b *ArrayBundle) OneOf(options [][]value.Value) { b.wholeOneOf = append(b.wholeOneOf, options) }

// Merge combines other into b. Elements bundles are required to be
// identical by description; conflicting Elements bundles cannot be
// reconciled generically since the concrete kind is type-erased.
func (b *ArrayBundle) Merge(other *ArrayBundle) error {
	if err := b.Length.Merge(other.Length); err != nil {
		return err
	}
	if other.Elements != nil {
		if b.Elements == nil {
			b.Elements = other.Elements
		} else if b.Elements.Describe() != other.Elements.Describe() {
			return impossible(b.Elements.Describe(), other.Elements.Describe())
		}
	}
	if other.Distinct {
		b.Distinct = true
	}
	if other.sorted {
		if b.sorted && b.sortOrder != other.sortOrder {
			return impossible("Sorted(ascending)", "Sorted(descending)")
		}
		b.sorted = true
		b.sortOrder = other.sortOrder
	}
	if other.separator != nil {
		if err := b.SetSeparator(*other.separator); err != nil {
			return err
		}
	}
	b.wholeExact = append(b.wholeExact, other.wholeExact...)
	b.wholeOneOf = append(b.wholeOneOf, other.wholeOneOf...)
	return nil
}

func valuesEqual(a, b []value.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !value.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Check reports a violation reason for elems.
func (b *ArrayBundle) Check(env Env, elems []value.Value) (string, error) {
	if reason, err := b.Length.CheckAs(env, int64(len(elems)), "length"); err != nil || reason != "" {
		return reason, err
	}
	if b.Elements != nil {
		for i, e := range elems {
			if reason, err := b.Elements.CheckValue(env, e); err != nil {
				return "", err
			} else if reason != "" {
				return fmt.Sprintf("has element %d that %s", i, reason), nil
			}
		}
	}
	if b.Distinct {
		for i := range elems {
			for j := i + 1; j < len(elems); j++ {
				if value.Equal(elems[i], elems[j]) {
					return fmt.Sprintf("has duplicate elements at indexes %d and %d but requires distinct elements", i, j), nil
				}
			}
		}
	}
	if b.sorted {
		for i := 1; i < len(elems); i++ {
			cmp, err := compareValues(elems[i-1], elems[i])
			if err != nil {
				return "", err
			}
			if b.sortOrder == SortAscending && cmp > 0 || b.sortOrder == SortDescending && cmp < 0 {
				return fmt.Sprintf("is not sorted at index %d", i), nil
			}
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
			return "is not one of the allowed whole-array options", nil
		}
	}
	return "", nil
}

// SortValues sorts elems in place according to the installed Sorted
// order. It is a no-op if Sorted was never installed.
func (b *ArrayBundle) SortValues(elems []value.Value) error {
	if !b.sorted {
		return nil
	}
	var sortErr error
	sort.SliceStable(elems, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		cmp, err := compareValues(elems[i], elems[j])
		if err != nil {
			sortErr = err
			return false
		}
		if b.sortOrder == SortDescending {
			return cmp > 0
		}
		return cmp < 0
	})
	return sortErr
}

func compareValues(a, b value.Value) (int, error) {
	if ai, ok := a.Int(); ok {
		bi, _ := b.Int()
		switch {
		case ai < bi:
			return -1, nil
		case ai > bi:
			return 1, nil
		default:
			return 0, nil
		}
	}
	if as, ok := a.Str(); ok {
		bs, _ := b.Str()
		switch {
		case as < bs:
			return -1, nil
		case as > bs:
			return 1, nil
		default:
			return 0, nil
		}
	}
	return 0, mismatch(a.Kind().String(), "an orderable value")
}

// CheckValue implements ElementConstraint, letting an Array<E> itself be
// the element type of an outer Array<Array<E>>.
func (b *ArrayBundle) CheckValue(env Env, v value.Value) (string, error) {
	elems, ok := v.Vec()
	if !ok {
		return "", mismatch(v.Kind().String(), "Array")
	}
	return b.Check(env, elems)
}

func (b *ArrayBundle) Describe() string {
	return "an array constrained by its installed Length/Elements/Sorted constraints"
}

func (b *ArrayBundle) Dependencies() []string {
	set := map[string]struct{}{}
	for _, d := range b.Length.Dependencies() {
		set[d] = struct{}{}
	}
	if b.Elements != nil {
		for _, d := range b.Elements.Dependencies() {
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
