// Package analyze turns component-markup source text into the annotated
// intermediate tree consumed by the target dialects.
//
// The markup parser is an external black box: the analyzer consumes only
// a generic node-kind/attribute/child shape from it. Embedded expressions
// are classified — never evaluated — in strict precedence order:
// iteration, logical-AND gate, ternary, then identifier / member /
// literal / call, with unknown as the fallback. Arrow-callback iteration
// shapes are matched by a scanner; everything else is classified from the
// expression-language AST.
//
// Recognized DSL component tags (Loop, If, ElseIf, Else, Var, Slot,
// Include, DefineBlock, Extends, Raw) are handled by an explicit,
// constructed-once [Registry] passed into [Parse]. A malformed tag
// records a warning and degrades to a safe wrapper; it never fails the
// unit. Only unparsable source aborts, and it aborts only its own unit.
package analyze
