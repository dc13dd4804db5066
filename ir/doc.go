// Package ir defines the intermediate tree shared by the analyzer and the
// target dialects.
//
// A tree is built once per compilation unit and is immutable afterwards:
// every transform ([Map], [Filter], [Remove]) is a pure function returning a
// new tree. The tree's lifetime is exactly one compilation; it is discarded
// after the selected dialect renders it.
//
// Each [Node] carries at most one [Annotation], a sealed sum type with one
// variant per dynamic construct (loop, condition, variable, slot, include,
// block). Nodes flagged [Node.Unwrap] are synthetic wrappers that must never
// be emitted as literal tags.
package ir
