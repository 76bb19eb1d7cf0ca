// Package value defines the Value sum type produced by generation and
// consumed by validation, read, and write — a signed 64-bit integer, a
// string, a vector of values (array or tuple), a tagged variant
// alternative, a graph, or the inert unit value for None — plus the
// Value Store that maps variable names to their resolved values and
// enforces that a name is bound to exactly one kind for the run.
package value
