package pattern

import "github.com/mathcrusader/vargen/pkg/expr"

type quantKind int

const (
	qOne quantKind = iota // no quantifier written: exactly 1
	qOptional
	qStar
	qPlus
	qExact
	qRange
)

type quantifier struct {
	kind quantKind
	n    *expr.Expression // bound for qExact, and the lower bound for qRange
	m    *expr.Expression // upper bound for qRange
}

// bounds resolves the quantifier to an inclusive [min, max] repetition
// count. unbounded is true for * and +, in which case max is
// meaningless.
func (q quantifier) bounds(lookup expr.LookupFunc) (min, max int64, unbounded bool, err error) {
	switch q.kind {
	case qOne:
		return 1, 1, false, nil
	case qOptional:
		return 0, 1, false, nil
	case qStar:
		return 0, 0, true, nil
	case qPlus:
		return 1, 0, true, nil
	case qExact:
		n, err := q.n.Evaluate(lookup)
		if err != nil {
			return 0, 0, false, err
		}
		return n, n, false, nil
	case qRange:
		m, err := q.n.Evaluate(lookup)
		if err != nil {
			return 0, 0, false, err
		}
		n, err := q.m.Evaluate(lookup)
		if err != nil {
			return 0, 0, false, err
		}
		return m, n, false, nil
	}
	panic("pattern: unknown quantifier kind")
}

type byteRange struct{ lo, hi byte }

type charClass struct {
	negate bool
	ranges []byteRange
}

func (c *charClass) matches(b byte) bool {
	in := false
	for _, r := range c.ranges {
		if b >= r.lo && b <= r.hi {
			in = true
			break
		}
	}
	if c.negate {
		return !in
	}
	return in
}

// bytes enumerates every byte value the class accepts. Used by Generate
// to intersect against a supplied alphabet.
func (c *charClass) bytes() []byte {
	var out []byte
	for v := 0; v < 256; v++ {
		if c.matches(byte(v)) {
			out = append(out, byte(v))
		}
	}
	return out
}

type atomKind int

const (
	atomLiteral atomKind = iota
	atomClass
	atomGroup
)

type atom struct {
	kind  atomKind
	lit   byte
	class *charClass
	group []sequence // alternatives inside a group, or the top-level pattern
	q     quantifier
}

// sequence is one alternative: a run of atoms that must match in order.
type sequence []atom
