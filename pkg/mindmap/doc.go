// Package mindmap projects learning data onto a node/edge graph with
// deterministic 2D radial coordinates.
//
// The package has three entry points sharing one radial layout ([Radial]):
//
//   - [FromList]: an ABC-List becomes root → letters → up to three words
//   - [FromKawa] / [FromKawaEntries]: a KaWa becomes root → letter positions
//     → associations
//   - [Combined]: a synthetic "Knowledge Base" root with one child per list
//     and KaWa, without expanding their contents
//
// # Layout
//
// List and KaWa maps anchor the root at (400, 50) and arrange letter nodes on
// a circle of radius 200 around (400, 200). The k-th qualifying letter sits at
// angle k·2π/count (count clamped to at least 1). List words sit at radius 300
// and fan out ±0.3 rad around their letter's ray; KaWa associations sit at
// radius 350 directly on the ray. A KaWa position takes part only when its
// association is non-empty; blank text still counts. The combined view centers its root at
// (500, 300) with children at radius 250.
//
// Positions are advisory: a rendering component may let users drag nodes
// after the initial placement.
//
// # Determinism
//
// Node and edge ids derive from letters and positional indices only, and
// angles depend only on input order and counts. Calling a generator twice
// with identical input yields identical graphs; no clock or randomness is
// consulted.
//
// # Concurrency
//
// All generators are pure functions: they read only their arguments, return
// a freshly allocated [Graph] and are safe to call from any number of
// goroutines.
package mindmap
