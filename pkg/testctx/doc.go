// Package testctx defines AbstractVariable, the type-erased contract
// every concrete variable kind implements, plus the four narrowed
// views a variable's methods receive: AnalysisContext (constraint
// checking and description), ResolverContext (generation), ReaderContext
// (textual parsing), and WriterContext (textual serialization).
//
// Splitting the contract this way — rather than handing every method a
// single do-everything context — lets a constraint's Check run with
// nothing but a name→value lookup, while generation alone gets the RNG,
// value store, and generation handler. It stands in for the source
// library's dynamic_cast-based AnalysisContext/ResolverContext/
// ReaderContext/PrinterContext split, expressed as plain Go interfaces
// instead of runtime downcasts.
package testctx
