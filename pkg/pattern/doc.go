// Package pattern implements a restricted regular-expression dialect:
// character classes, ?/*/+ and {m,n} quantifiers
// (whose bounds may themselves be arithmetic expressions over peer
// variables), alternation, literals, and grouping. Matching is greedy
// with no backtracking; generation additionally requires every
// repetition to have a finite bound, since there is no way to draw a
// string of unbounded length.
package pattern
