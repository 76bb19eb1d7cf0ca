package pattern

import "github.com/mathcrusader/vargen/pkg/expr"

// matchAlts attempts to match s[pos:] against the first alternative that
// can consume a run starting at pos and reach the end of its own
// sequence; alternatives are tried in declaration order and the first to
// succeed wins (no exploration of the others, matching the "no
// backtracking" contract once an alternative is chosen).
func matchAlts(alts []sequence, s string, pos int, lookup expr.LookupFunc) (int, bool, error) {
	for _, seq := range alts {
		end, ok, err := matchSeq(seq, s, pos, lookup)
		if err != nil {
			return 0, false, err
		}
		if ok {
			return end, true, nil
		}
	}
	return 0, false, nil
}

// matchSeq greedily matches every atom in seq in order, starting at pos.
// Each atom consumes the maximum number of repetitions it can (up to its
// quantifier's max, or the rest of the string if unbounded) before the
// next atom is attempted; there is no retry with fewer repetitions.
func matchSeq(seq sequence, s string, pos int, lookup expr.LookupFunc) (int, bool, error) {
	for _, a := range seq {
		min, max, unbounded, err := a.q.bounds(lookup)
		if err != nil {
			return 0, false, err
		}

		count := int64(0)
		for unbounded || count < max {
			consumed, ok, err := matchOne(a, s, pos, lookup)
			if err != nil {
				return 0, false, err
			}
			if !ok {
				break
			}
			pos += consumed
			count++
			if consumed == 0 {
				// A zero-width match (an empty group alternative) would
				// otherwise repeat forever under an unbounded quantifier.
				break
			}
		}
		if count < min {
			return 0, false, nil
		}
	}
	return pos, true, nil
}

// matchOne matches exactly one occurrence of the atom's underlying
// content (ignoring its quantifier) at pos, returning the number of
// bytes consumed.
func matchOne(a atom, s string, pos int, lookup expr.LookupFunc) (int, bool, error) {
	switch a.kind {
	case atomLiteral:
		if pos >= len(s) || s[pos] != a.lit {
			return 0, false, nil
		}
		return 1, true, nil
	case atomClass:
		if pos >= len(s) || !a.class.matches(s[pos]) {
			return 0, false, nil
		}
		return 1, true, nil
	case atomGroup:
		end, ok, err := matchAlts(a.group, s, pos, lookup)
		if err != nil {
			return 0, false, err
		}
		if !ok {
			return 0, false, nil
		}
		return end - pos, true, nil
	}
	panic("pattern: unknown atom kind")
}
