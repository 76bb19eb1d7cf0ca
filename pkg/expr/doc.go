// Package expr parses and evaluates arithmetic expressions over named
// int64 variables ("3*N+1", "max(A,B)"). An Expression is parsed once at
// construction time and evaluated any number of times against a lookup
// function supplied by the caller, which lets the resolver compute an
// expression's dependency set before any referenced variable has a value.
package expr
