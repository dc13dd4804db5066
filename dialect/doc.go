// Package dialect defines the contract between the intermediate tree and
// the target template languages, and drives the tree-to-text transform.
//
// Each target implements [Renderer]: a set of spelling functions, one per
// dynamic construct, plus a self-check over its own output. The driver
// in [Transform] owns everything dialect-independent: depth-first
// traversal (children render before their parent), unwrap handling,
// folding adjacent condition branches into a single chain, attribute
// interpolation rewriting, and filter vocabulary checks. Renderers never
// see the tree; they see finished child text and the annotation being
// spelled.
//
// Targets are held in a [Registry] constructed once by the caller, the
// same pattern the analyzer uses for its DSL tags.
package dialect
