package pattern

import (
	"sort"

	"github.com/mathcrusader/vargen/pkg/expr"
)

// Pattern is a compiled simple-pattern, ready to match, generate, or
// report its dependencies.
type Pattern struct {
	src  string
	alts []sequence
}

// Compile parses src according to this package's simple-pattern grammar.
func Compile(src string) (*Pattern, error) {
	alts, err := compile(src)
	if err != nil {
		return nil, err
	}
	return &Pattern{src: src, alts: alts}, nil
}

// String returns the original pattern source.
func (p *Pattern) String() string { return p.src }

// Match performs a single-pass, greedy, non-backtracking match of s
// against the pattern, using lookup to resolve any expression-valued
// quantifier bounds.
func (p *Pattern) Match(s string, lookup expr.LookupFunc) (bool, error) {
	end, ok, err := matchAlts(p.alts, s, 0, lookup)
	if err != nil {
		return false, err
	}
	return ok && end == len(s), nil
}

// Generate walks the pattern and produces a matching string. Every
// repetition in the pattern must have a finite bound (no bare * or +);
// alphabet, if non-nil, restricts character-class atoms (but never
// literal atoms) to the supplied bytes.
func (p *Pattern) Generate(alphabet []byte, lookup expr.LookupFunc, rnd RandSource) (string, error) {
	return generateAlts(p.alts, alphabet, lookup, rnd)
}

// Dependencies returns the distinct identifiers referenced inside any
// {...} quantifier bound in the pattern.
func (p *Pattern) Dependencies() []string {
	set := map[string]struct{}{}
	for _, seq := range p.alts {
		collectSeqDeps(seq, set)
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func collectSeqDeps(seq sequence, set map[string]struct{}) {
	for _, a := range seq {
		switch a.q.kind {
		case qExact:
			for _, n := range a.q.n.Dependencies() {
				set[n] = struct{}{}
			}
		case qRange:
			for _, n := range a.q.n.Dependencies() {
				set[n] = struct{}{}
			}
			for _, n := range a.q.m.Dependencies() {
				set[n] = struct{}{}
			}
		}
		if a.kind == atomGroup {
			for _, inner := range a.group {
				collectSeqDeps(inner, set)
			}
		}
	}
}
