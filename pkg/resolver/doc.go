// Package resolver implements the mutable generation context passed to
// every variable: it wires together the value store, the variable
// store, the generation handler, and the RNG, and implements the four
// testctx views so a variable's Generate/Validate/Read/Write never
// needs to know about any of those concrete types directly.
package resolver
