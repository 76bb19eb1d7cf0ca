package varspec

import (
	"fmt"

	"github.com/mathcrusader/vargen/pkg/constraint"
	"github.com/mathcrusader/vargen/pkg/expr"
	"github.com/mathcrusader/vargen/pkg/pattern"
	"github.com/mathcrusader/vargen/pkg/policy"
	"github.com/mathcrusader/vargen/pkg/resolver"
	"github.com/mathcrusader/vargen/pkg/rng"
	"github.com/mathcrusader/vargen/pkg/testctx"
	"github.com/mathcrusader/vargen/pkg/variable"
)

// Build constructs a resolver.Context seeded by rngEngine, declares
// every variable in spec, and returns the context alongside the order
// they should be generated in. Build fails if any expression in spec
// fails to parse or any nested spec is structurally invalid; a Spec
// that parses here is guaranteed to build its per-element sub-variables
// successfully at generation time too, since only element names (never
// their constraints) vary between the validating build and later
// per-index ElementFactory calls.
func Build(spec *Spec, rngEngine *rng.Engine) (*resolver.Context, []string, error) {
	ctx := resolver.New(rngEngine)
	for i, vs := range spec.Variables {
		v, err := buildVariable(vs.Name, vs)
		if err != nil {
			return nil, nil, fmt.Errorf("variables[%d] %q: %w", i, vs.Name, err)
		}
		ctx.Declare(v)
	}
	return ctx, spec.GenerationOrder(), nil
}

func buildVariable(name string, vs VariableSpec) (testctx.AbstractVariable, error) {
	switch vs.Kind {
	case "integer":
		b := constraint.NewIntBundle()
		if err := applyIntegerSpec(b, vs.Integer); err != nil {
			return nil, err
		}
		return variable.NewInteger(name, b), nil

	case "string":
		b, err := buildStringBundle(vs.String)
		if err != nil {
			return nil, err
		}
		return variable.NewString(name, b), nil

	case "array":
		if vs.Array == nil || vs.Array.Element == nil {
			return nil, fmt.Errorf("array: element is required")
		}
		b := constraint.NewArrayBundle()
		if vs.Array.Length != nil {
			if err := applyIntegerSpec(b.Length, vs.Array.Length); err != nil {
				return nil, fmt.Errorf("length: %w", err)
			}
		}
		if vs.Array.DistinctElements {
			b.Distinct = true
		}
		if vs.Array.Sorted != "" {
			order, err := parseSortOrder(vs.Array.Sorted)
			if err != nil {
				return nil, err
			}
			b.SetSorted(order)
		}
		if vs.Array.Separator != "" {
			ws, err := parseWhitespace(vs.Array.Separator)
			if err != nil {
				return nil, err
			}
			if err := b.SetSeparator(ws); err != nil {
				return nil, err
			}
		}
		factory, err := newElementFactory(*vs.Array.Element)
		if err != nil {
			return nil, fmt.Errorf("element: %w", err)
		}
		return variable.NewArray(name, b, factory), nil

	case "tuple":
		if vs.Tuple == nil || len(vs.Tuple.Elements) == 0 {
			return nil, fmt.Errorf("tuple: elements is required")
		}
		b := constraint.NewTupleBundle(len(vs.Tuple.Elements))
		if vs.Tuple.Separator != "" {
			ws, err := parseWhitespace(vs.Tuple.Separator)
			if err != nil {
				return nil, err
			}
			if err := b.SetSeparator(ws); err != nil {
				return nil, err
			}
		}
		factories := make([]variable.ElementFactory, len(vs.Tuple.Elements))
		for i, es := range vs.Tuple.Elements {
			factory, err := newElementFactory(es)
			if err != nil {
				return nil, fmt.Errorf("elements[%d]: %w", i, err)
			}
			factories[i] = factory
		}
		return variable.NewTuple(name, b, factories), nil

	case "variant":
		if vs.Variant == nil || len(vs.Variant.Alternatives) == 0 {
			return nil, fmt.Errorf("variant: alternatives is required")
		}
		if len(vs.Variant.Discriminators) != len(vs.Variant.Alternatives) {
			return nil, fmt.Errorf("variant: discriminators must have one entry per alternative")
		}
		b := constraint.NewVariantBundle(vs.Variant.Discriminators)
		if vs.Variant.Separator != "" {
			ws, err := parseWhitespace(vs.Variant.Separator)
			if err != nil {
				return nil, err
			}
			b.SetSeparator(ws)
		}
		if vs.Variant.ExactlyIndex != nil {
			if err := b.ExactlyIndex(*vs.Variant.ExactlyIndex); err != nil {
				return nil, err
			}
		}
		factories := make([]variable.ElementFactory, len(vs.Variant.Alternatives))
		for i, as := range vs.Variant.Alternatives {
			factory, err := newElementFactory(as)
			if err != nil {
				return nil, fmt.Errorf("alternatives[%d]: %w", i, err)
			}
			factories[i] = factory
		}
		return variable.NewVariant(name, b, factories), nil

	case "graph":
		if vs.Graph == nil {
			return nil, fmt.Errorf("graph: graph is required")
		}
		b := constraint.NewGraphBundle()
		if vs.Graph.NumNodes != nil {
			if err := applyIntegerSpec(b.NumNodes, vs.Graph.NumNodes); err != nil {
				return nil, fmt.Errorf("numNodes: %w", err)
			}
		}
		if vs.Graph.NumEdges != nil {
			if err := applyIntegerSpec(b.NumEdges, vs.Graph.NumEdges); err != nil {
				return nil, fmt.Errorf("numEdges: %w", err)
			}
		}
		b.Connected = vs.Graph.Connected
		if vs.Graph.SimpleGraph {
			b.SetSimpleGraph()
		}
		b.NoParallelEdges = b.NoParallelEdges || vs.Graph.NoParallelEdges
		b.Loopless = b.Loopless || vs.Graph.Loopless
		g := variable.NewGraph(name, b)
		if vs.Graph.NodeLabel != nil {
			factory, err := newElementFactory(*vs.Graph.NodeLabel)
			if err != nil {
				return nil, fmt.Errorf("nodeLabel: %w", err)
			}
			g.NewNodeLabel = factory
		}
		if vs.Graph.EdgeLabel != nil {
			factory, err := newElementFactory(*vs.Graph.EdgeLabel)
			if err != nil {
				return nil, fmt.Errorf("edgeLabel: %w", err)
			}
			g.NewEdgeLabel = factory
		}
		return g, nil

	case "none":
		return variable.NewNone(name), nil

	default:
		return nil, fmt.Errorf("unknown kind %q", vs.Kind)
	}
}

// newElementFactory validates vs once (with a throwaway name) so a
// structural error surfaces at Build time, then returns a factory that
// rebuilds the same, by-then-proven-valid variable under whatever name
// the owning composite variable assigns it.
func newElementFactory(vs VariableSpec) (variable.ElementFactory, error) {
	if _, err := buildVariable("", vs); err != nil {
		return nil, err
	}
	return func(name string) testctx.AbstractVariable {
		v, err := buildVariable(name, vs)
		if err != nil {
			panic(fmt.Sprintf("varspec: element spec became invalid after validation: %v", err))
		}
		return v
	}, nil
}

func applyIntegerSpec(b *constraint.IntBundle, is *IntegerSpec) error {
	if is == nil {
		return nil
	}
	if len(is.Between) > 0 {
		if len(is.Between) != 2 {
			return fmt.Errorf("between requires exactly [min, max]")
		}
		min, err := expr.Parse(is.Between[0])
		if err != nil {
			return fmt.Errorf("between[0]: %w", err)
		}
		max, err := expr.Parse(is.Between[1])
		if err != nil {
			return fmt.Errorf("between[1]: %w", err)
		}
		b.Between(min, max)
	}
	if is.AtLeast != "" {
		e, err := expr.Parse(is.AtLeast)
		if err != nil {
			return fmt.Errorf("atLeast: %w", err)
		}
		b.AtLeast(e)
	}
	if is.AtMost != "" {
		e, err := expr.Parse(is.AtMost)
		if err != nil {
			return fmt.Errorf("atMost: %w", err)
		}
		b.AtMost(e)
	}
	if is.Exactly != "" {
		e, err := expr.Parse(is.Exactly)
		if err != nil {
			return fmt.Errorf("exactly: %w", err)
		}
		b.Exactly(e)
	}
	if len(is.OneOf) > 0 {
		opts := make([]*expr.Expression, len(is.OneOf))
		for i, s := range is.OneOf {
			e, err := expr.Parse(s)
			if err != nil {
				return fmt.Errorf("oneOf[%d]: %w", i, err)
			}
			opts[i] = e
		}
		b.OneOf(opts)
	}
	if is.Mod != nil {
		rem, err := expr.Parse(is.Mod.Remainder)
		if err != nil {
			return fmt.Errorf("mod.remainder: %w", err)
		}
		mod, err := expr.Parse(is.Mod.Modulus)
		if err != nil {
			return fmt.Errorf("mod.modulus: %w", err)
		}
		b.Mod(rem, mod)
	}
	if is.Size != "" {
		h, err := parseSizeHint(is.Size)
		if err != nil {
			return err
		}
		b.SetSize(h)
	}
	return nil
}

func buildStringBundle(ss *StringSpec) (*constraint.StringBundle, error) {
	b := constraint.NewStringBundle()
	if ss == nil {
		return b, nil
	}
	if ss.Length != nil {
		if err := applyIntegerSpec(b.Length, ss.Length); err != nil {
			return nil, fmt.Errorf("length: %w", err)
		}
	}
	if ss.Alphabet != "" {
		b.SetAlphabet([]byte(ss.Alphabet))
	}
	if ss.DistinctCharacters {
		b.SetDistinctCharacters()
	}
	if ss.Pattern != "" {
		p, err := pattern.Compile(ss.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern: %w", err)
		}
		b.SetPattern(p)
	}
	if ss.Exactly != "" {
		b.Exactly(ss.Exactly)
	}
	if len(ss.OneOf) > 0 {
		b.OneOf(ss.OneOf)
	}
	return b, nil
}

func parseSortOrder(s string) (constraint.SortOrder, error) {
	switch s {
	case "ascending":
		return constraint.SortAscending, nil
	case "descending":
		return constraint.SortDescending, nil
	default:
		return 0, fmt.Errorf("sorted: unknown order %q, want \"ascending\" or \"descending\"", s)
	}
}

func parseWhitespace(s string) (policy.Whitespace, error) {
	switch s {
	case "space":
		return policy.Space, nil
	case "newline":
		return policy.Newline, nil
	default:
		return 0, fmt.Errorf("separator: unknown whitespace %q, want \"space\" or \"newline\"", s)
	}
}

func parseSizeHint(s string) (constraint.SizeHint, error) {
	switch s {
	case "small":
		return constraint.SizeSmall, nil
	case "medium":
		return constraint.SizeMedium, nil
	case "large":
		return constraint.SizeLarge, nil
	default:
		return 0, fmt.Errorf("size: unknown size hint %q, want \"small\", \"medium\", or \"large\"", s)
	}
}
