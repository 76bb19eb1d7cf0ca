package value

// Kind tags which alternative of the Value sum type a Value holds.
type Kind int

const (
	// KindNone is the zero value of Kind, so a zero-value Value is the
	// unit value rather than a zero Integer.
	KindNone Kind = iota
	KindInteger
	KindString
	KindArray
	KindTuple
	KindVariant
	KindGraph
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindTuple:
		return "Tuple"
	case KindVariant:
		return "Variant"
	case KindGraph:
		return "Graph"
	case KindNone:
		return "None"
	}
	return "Unknown"
}

// VariantValue is the payload of a Variant value: which alternative was
// chosen, and the value generated/read for that alternative. The
// payload is the unit Value for a None alternative.
type VariantValue struct {
	Index   int
	Payload Value
}

// Value is the sum type every variable kind generates, validates, reads,
// and writes. The zero Value is the unit value (KindNone).
type Value struct {
	kind    Kind
	i       int64
	s       string
	vec     []Value
	variant *VariantValue
	graph   *Graph
}

// Int wraps an int64 as an Integer value.
func Int(v int64) Value { return Value{kind: KindInteger, i: v} }

// Str wraps a string as a String value.
func Str(s string) Value { return Value{kind: KindString, s: s} }

// Arr wraps a slice of values as an Array value.
func Arr(elems []Value) Value { return Value{kind: KindArray, vec: elems} }

// Tup wraps a slice of values as a Tuple value.
func Tup(elems []Value) Value { return Value{kind: KindTuple, vec: elems} }

// Var wraps a chosen alternative as a Variant value.
func Var(index int, payload Value) Value {
	return Value{kind: KindVariant, variant: &VariantValue{Index: index, Payload: payload}}
}

// Gr wraps a graph as a Graph value.
func Gr(g *Graph) Value { return Value{kind: KindGraph, graph: g} }

// None returns the inert unit value.
func None() Value { return Value{kind: KindNone} }

// Kind reports which alternative this Value holds.
func (v Value) Kind() Kind { return v.kind }

// Int returns the wrapped integer, or ok=false if v is not an Integer.
func (v Value) Int() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.i, true
}

// Str returns the wrapped string, or ok=false if v is not a String.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Vec returns the wrapped element slice for an Array or Tuple value.
func (v Value) Vec() ([]Value, bool) {
	if v.kind != KindArray && v.kind != KindTuple {
		return nil, false
	}
	return v.vec, true
}

// VariantValue returns the wrapped alternative for a Variant value.
func (v Value) VariantValue() (VariantValue, bool) {
	if v.kind != KindVariant {
		return VariantValue{}, false
	}
	return *v.variant, true
}

// Graph returns the wrapped graph for a Graph value.
func (v Value) Graph() (*Graph, bool) {
	if v.kind != KindGraph {
		return nil, false
	}
	return v.graph, true
}

// Equal reports deep equality between two values of the same kind.
// Values of different kinds are never equal.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindInteger:
		return a.i == b.i
	case KindString:
		return a.s == b.s
	case KindArray, KindTuple:
		if len(a.vec) != len(b.vec) {
			return false
		}
		for i := range a.vec {
			if !Equal(a.vec[i], b.vec[i]) {
				return false
			}
		}
		return true
	case KindVariant:
		return a.variant.Index == b.variant.Index && Equal(a.variant.Payload, b.variant.Payload)
	case KindGraph:
		return graphsEqual(a.graph, b.graph)
	case KindNone:
		return true
	}
	return false
}
