package resolver

import (
	"github.com/mathcrusader/vargen/pkg/handler"
	"github.com/mathcrusader/vargen/pkg/ioengine"
	"github.com/mathcrusader/vargen/pkg/mverrors"
	"github.com/mathcrusader/vargen/pkg/rng"
	"github.com/mathcrusader/vargen/pkg/testctx"
	"github.com/mathcrusader/vargen/pkg/value"
)

// Context is the concrete implementation of testctx's four views. One
// Context backs an entire run: every variable's Generate/Validate/
// Read/Write receives the same instance (or, for Read/Write, one bound
// to that run's cursor/writer), so a value committed by one variable
// is immediately visible when resolving another's dependency.
type Context struct {
	store  *value.Store
	vars   map[string]testctx.AbstractVariable
	h      *handler.Handler
	rng    *rng.Engine
	cursor *ioengine.Cursor
	writer *ioengine.Writer
}

// New builds a Context ready to drive generation. Declare every
// variable with Declare before calling Resolve/Generate.
func New(rngEngine *rng.Engine) *Context {
	return &Context{
		store: value.NewStore(),
		vars:  make(map[string]testctx.AbstractVariable),
		h:     handler.New(),
		rng:   rngEngine,
	}
}

// WithCursor attaches an input cursor, for a Context driving Read.
func (c *Context) WithCursor(cur *ioengine.Cursor) *Context {
	next := *c
	next.cursor = cur
	return &next
}

// WithWriter attaches an output writer, for a Context driving Write.
func (c *Context) WithWriter(w *ioengine.Writer) *Context {
	next := *c
	next.writer = w
	return &next
}

// Declare registers an AbstractVariable under its own name, so later
// Resolve/Lookup calls can find it.
func (c *Context) Declare(v testctx.AbstractVariable) {
	c.vars[v.Name()] = v
}

// Lookup implements testctx.AnalysisContext by resolving name's value
// (generating it if necessary) and requiring it to be an Integer.
func (c *Context) Lookup(name string) (int64, error) {
	v, err := c.Resolve(name)
	if err != nil {
		return 0, err
	}
	n, ok := v.Int()
	if !ok {
		return 0, &mverrors.MVariableTypeMismatch{ConvertingFrom: v.Kind().String(), ConvertingTo: "Integer"}
	}
	return n, nil
}

// Variable implements testctx.AnalysisContext.
func (c *Context) Variable(name string) (testctx.AbstractVariable, bool) {
	v, ok := c.vars[name]
	return v, ok
}

// RNG implements testctx.ResolverContext.
func (c *Context) RNG() *rng.Engine { return c.rng }

// Store implements testctx.ResolverContext.
func (c *Context) Store() *value.Store { return c.store }

// Handler implements testctx.ResolverContext.
func (c *Context) Handler() *handler.Handler { return c.h }

// Cursor implements testctx.ReaderContext.
func (c *Context) Cursor() *ioengine.Cursor { return c.cursor }

// Writer implements testctx.WriterContext.
func (c *Context) Writer() *ioengine.Writer { return c.writer }

// Resolve implements testctx.ResolverContext: if name's value is
// already known, return it; otherwise dispatch to its variable's
// Generate, store the result, and return it.
func (c *Context) Resolve(name string) (value.Value, error) {
	if v, ok := c.store.Get(name); ok {
		return v, nil
	}
	av, ok := c.vars[name]
	if !ok {
		return value.Value{}, &mverrors.VariableNotFound{Name: name}
	}
	v, err := av.Generate(c)
	if err != nil {
		return value.Value{}, err
	}
	if err := c.store.Set(name, v); err != nil {
		return value.Value{}, err
	}
	return v, nil
}

// Assign runs Resolve(name) solely for its side effect on the store.
func (c *Context) Assign(name string) error {
	_, err := c.Resolve(name)
	return err
}

// GenerateInOrder resolves each name in order, reporting the first
// error encountered. The caller supplies the order (typically
// declaration order from a variable bundle) since generation order
// affects which RNG draws land on which variable, and so must be
// explicit rather than left to Go's unordered map iteration.
func (c *Context) GenerateInOrder(names []string) error {
	for _, name := range names {
		if _, err := c.Resolve(name); err != nil {
			return err
		}
	}
	return nil
}

// Abort cancels the in-progress generation of name: abandons the
// handler's active frame and clears name's value from the store. Values
// of other variables generated since its Start stay in the store.
func (c *Context) Abort(name string, cause error) error {
	if err := c.h.Abandon(); err != nil {
		return err
	}
	c.store.Unset(name)
	return cause
}
