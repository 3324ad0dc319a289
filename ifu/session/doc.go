// Package session models the selection state of an IFU exploration
// session as an immutable value.
//
// An interactive cube viewer keeps a mutable "current" spatial subset,
// spectral subset and line. Here that state is a [State] value: every
// With* method returns a new State and leaves the receiver untouched, so
// a derivation's inputs are exactly the State it was handed.
//
// The external spectral-analysis tool is reached through two narrow
// interfaces, [LineAnalyzer] (line centroid and width for a region pair)
// and [WCSLookup] (sky projection of a spatial region). [Capture] queries
// both and validates the answer once, at the boundary: missing results
// surface as *InsufficientInputError instead of a guessed default.
package session
