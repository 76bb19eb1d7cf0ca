// Package varspec loads a declarative, YAML-described set of variable
// declarations and turns it into live pkg/variable values wired into a
// pkg/resolver context, the way a YAML config file turns into a
// ready-to-run generation call.
package varspec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Spec is the top-level document: a list of named variable declarations
// plus the explicit order they should be generated in. Order may be
// omitted when the declaration order of Variables already doubles as
// the generation order.
type Spec struct {
	Variables []VariableSpec `yaml:"variables"`
	Order     []string       `yaml:"order,omitempty"`
}

// VariableSpec describes one variable. Name is required at the top
// level and ignored (the caller assigns a synthesized name) when
// VariableSpec nests inside an Array element, Tuple component, Variant
// alternative, or Graph label. Kind selects which of the per-kind
// fields below applies; exactly one should be set.
type VariableSpec struct {
	Name string `yaml:"name,omitempty"`
	Kind string `yaml:"kind"`

	Integer *IntegerSpec `yaml:"integer,omitempty"`
	String  *StringSpec  `yaml:"string,omitempty"`
	Array   *ArraySpec   `yaml:"array,omitempty"`
	Tuple   *TupleSpec   `yaml:"tuple,omitempty"`
	Variant *VariantSpec `yaml:"variant,omitempty"`
	Graph   *GraphSpec   `yaml:"graph,omitempty"`
}

// IntegerSpec describes the constraints installed on an Integer
// variable, or on an Integer-valued slot embedded in a larger kind
// (an Array's Length, a Graph's NumNodes/NumEdges). Bound fields hold
// expression source text (a literal like "10" or a reference to an
// earlier variable like "n-1"), evaluated through pkg/expr.
type IntegerSpec struct {
	Between []string `yaml:"between,omitempty"`
	AtLeast string   `yaml:"atLeast,omitempty"`
	AtMost  string   `yaml:"atMost,omitempty"`
	Exactly string   `yaml:"exactly,omitempty"`
	OneOf   []string `yaml:"oneOf,omitempty"`
	Mod     *ModSpec `yaml:"mod,omitempty"`
	Size    string   `yaml:"size,omitempty"`
}

// ModSpec installs an IntBundle.Mod(remainder, modulus) constraint.
type ModSpec struct {
	Remainder string `yaml:"remainder"`
	Modulus   string `yaml:"modulus"`
}

// StringSpec describes the constraints installed on a String variable.
type StringSpec struct {
	Length            *IntegerSpec `yaml:"length,omitempty"`
	Alphabet          string       `yaml:"alphabet,omitempty"`
	DistinctCharacters bool        `yaml:"distinctCharacters,omitempty"`
	Pattern           string       `yaml:"pattern,omitempty"`
	Exactly           string       `yaml:"exactly,omitempty"`
	OneOf             []string     `yaml:"oneOf,omitempty"`
}

// ArraySpec describes the constraints installed on an Array<E> variable.
type ArraySpec struct {
	Length           *IntegerSpec  `yaml:"length,omitempty"`
	Element          *VariableSpec `yaml:"element"`
	DistinctElements bool          `yaml:"distinctElements,omitempty"`
	Sorted           string        `yaml:"sorted,omitempty"`
	Separator        string        `yaml:"separator,omitempty"`
}

// TupleSpec describes the constraints installed on a Tuple variable.
type TupleSpec struct {
	Elements  []VariableSpec `yaml:"elements"`
	Separator string         `yaml:"separator,omitempty"`
}

// VariantSpec describes the constraints installed on a Variant variable.
type VariantSpec struct {
	Alternatives   []VariableSpec `yaml:"alternatives"`
	Discriminators []string       `yaml:"discriminators"`
	ExactlyIndex   *int           `yaml:"exactlyIndex,omitempty"`
	Separator      string         `yaml:"separator,omitempty"`
}

// GraphSpec describes the constraints installed on a Graph variable.
type GraphSpec struct {
	NumNodes        *IntegerSpec  `yaml:"numNodes,omitempty"`
	NumEdges        *IntegerSpec  `yaml:"numEdges,omitempty"`
	Connected       bool          `yaml:"connected,omitempty"`
	SimpleGraph     bool          `yaml:"simpleGraph,omitempty"`
	NoParallelEdges bool          `yaml:"noParallelEdges,omitempty"`
	Loopless        bool          `yaml:"loopless,omitempty"`
	NodeLabel       *VariableSpec `yaml:"nodeLabel,omitempty"`
	EdgeLabel       *VariableSpec `yaml:"edgeLabel,omitempty"`
}

// Load reads and parses a Spec from a YAML file at path.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading variable spec: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses a Spec from YAML bytes, useful for tests and
// programmatic callers that already hold the document in memory.
func LoadBytes(data []byte) (*Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing variable spec: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("validating variable spec: %w", err)
	}
	return &s, nil
}

// Validate checks structural requirements Build cannot recover from:
// every top-level variable is named exactly once, names are unique, and
// Order (when given) names only declared variables.
func (s *Spec) Validate() error {
	seen := make(map[string]bool, len(s.Variables))
	for i, v := range s.Variables {
		if v.Name == "" {
			return fmt.Errorf("variables[%d]: name is required", i)
		}
		if seen[v.Name] {
			return fmt.Errorf("variables[%d]: duplicate name %q", i, v.Name)
		}
		seen[v.Name] = true
	}
	for _, name := range s.Order {
		if !seen[name] {
			return fmt.Errorf("order: %q is not a declared variable", name)
		}
	}
	return nil
}

// GenerationOrder returns the order names should be generated in:
// Order verbatim when given, otherwise declaration order.
func (s *Spec) GenerationOrder() []string {
	if len(s.Order) > 0 {
		return s.Order
	}
	names := make([]string, len(s.Variables))
	for i, v := range s.Variables {
		names[i] = v.Name
	}
	return names
}
