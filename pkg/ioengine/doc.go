// Package ioengine implements the textual input/output layer every
// variable kind's read/write reduces to: a Cursor that tokenizes an
// input stream under a configurable whitespace/numeric strictness
// policy, tracking 1-based line/column and a small ring buffer of
// recently read tokens for diagnostics, and a Writer that mirrors it on
// the output side.
package ioengine
