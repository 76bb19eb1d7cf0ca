// Package constraint implements the constraint algebra described for
// every variable kind: typed constraint bundles that accumulate
// Between/Exactly/OneOf/Mod-style restrictions, merge by set
// intersection, check a candidate value, describe themselves for
// diagnostics, and report their expression dependencies.
//
// Each bundle type (IntBundle, StringBundle, ArrayBundle, TupleBundle,
// VariantBundle, GraphBundle) owns the structured field slots for its
// kind, mirroring the "apply_to installs into structured slots" design
// so a variable keeps cheap access to its resolved range, alphabet, or
// element count instead of re-walking a generic constraint list.
package constraint
