package pattern

import (
	"github.com/mathcrusader/vargen/pkg/expr"
	"github.com/mathcrusader/vargen/pkg/mverrors"
)

// RandSource is the minimal random source Generate needs: a uniform draw
// from an inclusive integer range. *rng.Engine satisfies this.
type RandSource interface {
	IntRange(lo, hi int64) (int64, error)
}

// generateAlts produces a string by walking the alternatives; when more than
// one alternative exists, one is chosen uniformly at random. The choice
// among equally-valid alternatives is arbitrary beyond being
// deterministic given the seed, which a uniform random draw satisfies.
func generateAlts(alts []sequence, alphabet []byte, lookup expr.LookupFunc, rnd RandSource) (string, error) {
	idx := int64(0)
	if len(alts) > 1 {
		var err error
		idx, err = rnd.IntRange(0, int64(len(alts)-1))
		if err != nil {
			return "", err
		}
	}
	return generateSeq(alts[idx], alphabet, lookup, rnd)
}

func generateSeq(seq sequence, alphabet []byte, lookup expr.LookupFunc, rnd RandSource) (string, error) {
	var out []byte
	for _, a := range seq {
		min, max, unbounded, err := a.q.bounds(lookup)
		if err != nil {
			return "", err
		}
		if unbounded {
			return "", &mverrors.EvaluationError{Message: "unbounded repetition (* or +) is not legal in generate"}
		}
		if max < min {
			return "", &mverrors.EvaluationError{Message: "quantifier upper bound is less than its lower bound"}
		}
		count := min
		if max > min {
			n, err := rnd.IntRange(min, max)
			if err != nil {
				return "", err
			}
			count = n
		}
		for i := int64(0); i < count; i++ {
			s, err := generateOne(a, alphabet, lookup, rnd)
			if err != nil {
				return "", err
			}
			out = append(out, s...)
		}
	}
	return string(out), nil
}

func generateOne(a atom, alphabet []byte, lookup expr.LookupFunc, rnd RandSource) ([]byte, error) {
	switch a.kind {
	case atomLiteral:
		// A literal atom is emitted verbatim even if it falls outside
		// the supplied alphabet: this is an intentional, legal override
		// of the alphabet constraint.
		return []byte{a.lit}, nil
	case atomClass:
		options := a.class.bytes()
		if alphabet != nil {
			options = intersect(options, alphabet)
			if len(options) == 0 {
				return nil, &mverrors.EvaluationError{Message: "character class has no intersection with the supplied alphabet"}
			}
		}
		idx, err := rnd.IntRange(0, int64(len(options)-1))
		if err != nil {
			return nil, err
		}
		return []byte{options[idx]}, nil
	case atomGroup:
		s, err := generateAlts(a.group, alphabet, lookup, rnd)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	}
	panic("pattern: unknown atom kind")
}

func intersect(a, b []byte) []byte {
	set := make(map[byte]bool, len(b))
	for _, v := range b {
		set[v] = true
	}
	var out []byte
	for _, v := range a {
		if set[v] {
			out = append(out, v)
		}
	}
	return out
}
