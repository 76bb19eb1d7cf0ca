// Package variable implements the concrete variable kinds — Integer,
// String, Array, Tuple, Variant, Graph, and the inert None — each
// satisfying testctx.AbstractVariable by combining a constraint bundle
// from pkg/constraint with kind-specific generate/validate/read/write
// logic.
package variable
