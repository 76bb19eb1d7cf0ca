package testctx

import (
	"github.com/mathcrusader/vargen/pkg/handler"
	"github.com/mathcrusader/vargen/pkg/ioengine"
	"github.com/mathcrusader/vargen/pkg/rng"
	"github.com/mathcrusader/vargen/pkg/value"
)

// AbstractVariable is the type-erased contract every concrete variable
// kind (Integer, String, Array, Tuple, Variant, Graph, None) satisfies,
// letting the resolver and variable store hold a mix of kinds behind
// one interface.
type AbstractVariable interface {
	// Name returns the variable's declared name.
	Name() string
	// Kind returns the value.Kind this variable produces.
	Kind() value.Kind
	// Dependencies returns the variable names this variable's
	// constraints reference through embedded expressions.
	Dependencies() []string
	// Describe returns a human-readable summary of the variable's
	// installed constraints, used in diagnostics.
	Describe() string
	// Generate produces a fresh value for this variable under ctx. It
	// does not consult the value store; caching is done by the
	// resolver's Resolve.
	Generate(ctx ResolverContext) (value.Value, error)
	// Validate runs every installed constraint against v in sequence,
	// returning the first violation as a ValidationError.
	Validate(ctx AnalysisContext, v value.Value) error
	// Read parses a value from ctx's cursor and validates it.
	Read(ctx ReaderContext) (value.Value, error)
	// Write serializes v to ctx's writer.
	Write(ctx WriterContext, v value.Value) error
}

// AnalysisContext is the minimal view a constraint needs: resolving a
// named Integer dependency's value.
type AnalysisContext interface {
	// Lookup resolves name to the int64 value of a previously
	// generated Integer variable, for expression evaluation.
	Lookup(name string) (int64, error)
	// Variable returns the declared AbstractVariable for name, if any.
	Variable(name string) (AbstractVariable, bool)
}

// ResolverContext is passed to a variable's Generate. It exposes the
// value store, the RNG, the generation handler, and a way to resolve a
// dependency (generating it if it isn't already known).
type ResolverContext interface {
	AnalysisContext

	// RNG returns the shared random engine for this run.
	RNG() *rng.Engine
	// Store returns the value store backing this run.
	Store() *value.Store
	// Handler returns the generation-frame stack for this run.
	Handler() *handler.Handler
	// Resolve generates (or fetches the cached value of) the named
	// dependency variable, recursively.
	Resolve(name string) (value.Value, error)
}

// ReaderContext is passed to a variable's Read.
type ReaderContext interface {
	AnalysisContext

	Cursor() *ioengine.Cursor
}

// WriterContext is passed to a variable's Write.
type WriterContext interface {
	AnalysisContext

	Writer() *ioengine.Writer
}
