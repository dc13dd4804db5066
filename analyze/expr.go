package analyze

//go:generate go tool stringer --linecomment --type ExprKind --output expr_string.go

import (
	"regexp"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"

	"github.com/recastml/recast/ir"
)

// ExprKind is the classification of an embedded expression.
type ExprKind int

const (
	// ExprIteration is a collection.map(callback) shape.
	ExprIteration ExprKind = iota // iteration
	// ExprConditional is a logical-AND gate or a ternary; only the guard
	// is extracted, never its truth value.
	ExprConditional // conditional
	// ExprVariable is a bare identifier.
	ExprVariable // variable
	// ExprMember is a dotted member path.
	ExprMember // member
	// ExprLiteral is a string, number, or boolean literal.
	ExprLiteral // literal
	// ExprCall is a function or method call with no further structure
	// extracted.
	ExprCall // call
	// ExprChildren is a reference to projected child content.
	ExprChildren // children
	// ExprUnknown is the fallback bucket; the text is reproduced
	// verbatim by the dialects.
	ExprUnknown // unknown
)

// FilterCall is one segment of a pipe-filter chain.
type FilterCall struct {
	Name string
	Args []string
}

// Classified is the result of classifying one embedded expression.
// Expressions are opaque text: nothing here is ever evaluated.
type Classified struct {
	Kind ExprKind
	// Src is the expression text with any filter chain removed.
	Src string
	// Path is the dotted path for variable and member expressions.
	Path string
	// Root is the free-variable root identifier, empty for known
	// globals and non-identifier roots.
	Root string

	// Iteration fields.
	Collection string
	Item       string
	Index      string
	Key        string
	// Body is the callback body for iterations and the gated content
	// for logical-AND conditionals.
	Body string
	// ElseBody is the second arm of a ternary conditional.
	ElseBody string

	// Guard is the condition expression for conditionals.
	Guard string

	// Filters is the pipe-filter chain, outermost first.
	Filters []FilterCall

	// Refs are the free identifier roots referenced anywhere in the
	// expression, in first-occurrence order, excluding known globals.
	Refs []string
}

// Classify classifies an embedded expression in strict precedence order:
// iteration, then logical-AND gate, then ternary, then plain identifier /
// member / literal / call, with unknown as the fallback bucket.
func Classify(src string) Classified {
	base, filters := splitFilters(src)

	c := Classified{
		Kind:    ExprUnknown,
		Src:     base,
		Filters: filters,
	}

	if base == "" {
		return c
	}

	if base == "children" {
		c.Kind = ExprChildren

		return c
	}

	if it, ok := matchIteration(base); ok {
		c.Kind = ExprIteration
		c.Collection = it.collection
		c.Item = it.item
		c.Index = it.index
		c.Key = it.key
		c.Body = it.body
		c.Root = freeRoot(it.collection)
		c.Refs = refsOf(it.collection)

		return c
	}

	if idx := indexTopLevel(base, "&&"); idx >= 0 {
		c.Kind = ExprConditional
		c.Guard = strings.TrimSpace(base[:idx])
		c.Body = strings.TrimSpace(base[idx+2:])
		c.Refs = refsOf(c.Guard)

		return c
	}

	if guard, then, alt, ok := matchTernary(base); ok {
		c.Kind = ExprConditional
		c.Guard = guard
		c.Body = then
		c.ElseBody = alt
		c.Refs = refsOf(guard)

		return c
	}

	classifyParsed(base, &c)

	return c
}

// classifyParsed handles every shape below the scanner-recognized ones by
// parsing base with expr-lang and switching on its AST.
func classifyParsed(base string, c *Classified) {
	tree, err := parser.Parse(base)
	if err != nil {
		c.Refs = refsOf(base)

		return
	}

	switch node := tree.Node.(type) {
	case *ast.IdentifierNode:
		c.Kind = ExprVariable
		c.Path = node.Value
		c.Root = freeRoot(node.Value)

	case *ast.MemberNode:
		if path, ok := memberPath(node); ok {
			c.Kind = ExprMember
			c.Path = path
			c.Root = freeRoot(path)
		}

	case *ast.StringNode, *ast.IntegerNode, *ast.FloatNode,
		*ast.BoolNode, *ast.NilNode:
		c.Kind = ExprLiteral

	case *ast.CallNode, *ast.BuiltinNode:
		c.Kind = ExprCall
	}

	c.Refs = identRoots(tree.Node)
}

// memberPath flattens a chain of non-computed member accesses into a
// dotted path. Computed accesses (brackets) are not flattened.
func memberPath(node ast.Node) (string, bool) {
	switch n := node.(type) {
	case *ast.IdentifierNode:
		return n.Value, true

	case *ast.MemberNode:
		prop, ok := n.Property.(*ast.StringNode)
		if !ok {
			return "", false
		}

		base, ok := memberPath(n.Node)
		if !ok {
			return "", false
		}

		return base + "." + prop.Value, true

	default:
		return "", false
	}
}

// identRoots collects root identifiers from an expr AST in
// first-occurrence order, excluding known globals.
func identRoots(node ast.Node) []string {
	var (
		out  []string
		seen = map[string]struct{}{}
		walk func(ast.Node)
	)

	record := func(name string) {
		if name == "" || isKnownGlobal(name) {
			return
		}

		if _, ok := seen[name]; ok {
			return
		}

		seen[name] = struct{}{}
		out = append(out, name)
	}

	walk = func(n ast.Node) {
		switch v := n.(type) {
		case *ast.IdentifierNode:
			record(v.Value)

		case *ast.MemberNode:
			walk(v.Node)

			// Computed properties reference their own roots.
			if _, ok := v.Property.(*ast.StringNode); !ok {
				walk(v.Property)
			}

		case *ast.UnaryNode:
			walk(v.Node)

		case *ast.BinaryNode:
			walk(v.Left)
			walk(v.Right)

		case *ast.ConditionalNode:
			walk(v.Cond)
			walk(v.Exp1)
			walk(v.Exp2)

		case *ast.CallNode:
			walk(v.Callee)

			for _, arg := range v.Arguments {
				walk(arg)
			}

		case *ast.BuiltinNode:
			for _, arg := range v.Arguments {
				walk(arg)
			}

		case *ast.ChainNode:
			walk(v.Node)

		case *ast.PredicateNode:
			walk(v.Node)

		case *ast.SliceNode:
			walk(v.Node)

		case *ast.ArrayNode:
			for _, item := range v.Nodes {
				walk(item)
			}

		case *ast.MapNode:
			for _, pair := range v.Pairs {
				walk(pair)
			}

		case *ast.PairNode:
			walk(v.Value)
		}
	}

	walk(node)

	return out
}

// freeRoot returns the root identifier of a dotted path, or empty when
// the root is a known global or not identifier-shaped.
func freeRoot(path string) string {
	root, _, _ := strings.Cut(strings.TrimSpace(path), ".")
	if root == "" || isKnownGlobal(root) || !isIdentName(root) {
		return ""
	}

	return root
}

// refsOf extracts free identifier roots from opaque expression text,
// preferring the expr-lang AST and falling back to a lexical scan when
// the text is not parseable expression syntax.
func refsOf(src string) []string {
	tree, err := parser.Parse(src)
	if err == nil {
		return identRoots(tree.Node)
	}

	var out []string

	for _, ident := range ir.ScanIdentifiers(src) {
		if !isKnownGlobal(ident) {
			out = append(out, ident)
		}
	}

	return out
}

// iteration is the decomposition of a collection.map(callback) shape.
type iteration struct {
	collection string
	item       string
	index      string
	key        string
	body       string
}

// keyAttrPattern matches a key attribute on the first element returned by
// a map callback: key="item.id" or key={item.id}.
var keyAttrPattern = regexp.MustCompile(
	`\bkey\s*=\s*(?:"([^"]*)"|\{([^}]*)\})`,
)

// matchIteration recognizes collection.map(params => body). Arrow
// callbacks are not expression-language syntax, so this shape is matched
// by a scanner before any parsing is attempted.
func matchIteration(src string) (iteration, bool) {
	var it iteration

	idx := indexTopLevel(src, ".map(")
	if idx < 0 {
		return it, false
	}

	collection := strings.TrimSpace(src[:idx])
	if !isDottedPath(collection) {
		return it, false
	}

	open := idx + len(".map(") - 1

	closeIdx := matchParen(src, open)
	if closeIdx < 0 {
		return it, false
	}

	callback := src[open+1 : closeIdx]

	arrow := indexTopLevel(callback, "=>")
	if arrow < 0 {
		return it, false
	}

	params := strings.TrimSpace(callback[:arrow])
	params = strings.TrimPrefix(params, "(")
	params = strings.TrimSuffix(params, ")")

	item, index, _ := strings.Cut(params, ",")

	it.collection = collection
	it.item = strings.TrimSpace(item)
	it.index = strings.TrimSpace(index)
	it.body = strings.TrimSpace(callback[arrow+2:])

	if it.item == "" || !isIdentName(it.item) {
		return iteration{}, false
	}

	// Extract the key expression only when the callback returns a
	// single element carrying a key attribute.
	if strings.HasPrefix(it.body, "<") {
		if m := keyAttrPattern.FindStringSubmatch(it.body); m != nil {
			if m[1] != "" {
				it.key = m[1]
			} else {
				it.key = strings.TrimSpace(m[2])
			}
		}
	}

	return it, true
}

// matchTernary splits a top-level cond ? a : b. The null-coalescing
// operator ?? and optional chaining ?. are not ternaries.
func matchTernary(src string) (guard, then, alt string, ok bool) {
	q := -1

	depth := 0

	var quote byte

	for i := 0; i < len(src); i++ {
		c := src[i]

		if quote != 0 {
			if c == quote && src[i-1] != '\\' {
				quote = 0
			}

			continue
		}

		switch c {
		case '\'', '"', '`':
			quote = c

		case '(', '[', '{':
			depth++

		case ')', ']', '}':
			depth--

		case '?':
			if depth != 0 {
				continue
			}

			if i+1 < len(src) && (src[i+1] == '?' || src[i+1] == '.') {
				i++

				continue
			}

			if q < 0 {
				q = i
			}

		case ':':
			if depth == 0 && q >= 0 {
				return strings.TrimSpace(src[:q]),
					strings.TrimSpace(src[q+1 : i]),
					strings.TrimSpace(src[i+1:]),
					true
			}
		}
	}

	return "", "", "", false
}

// indexTopLevel returns the index of the first occurrence of sub outside
// quotes and outside any bracket nesting, or -1. A "&&" probe will not
// match inside "a || b" and a "|" probe will not match "||".
func indexTopLevel(src, sub string) int {
	depth := 0

	var quote byte

	for i := 0; i+len(sub) <= len(src); i++ {
		c := src[i]

		if quote != 0 {
			if c == quote && src[i-1] != '\\' {
				quote = 0
			}

			continue
		}

		switch c {
		case '\'', '"', '`':
			quote = c

			continue

		case '(', '[', '{':
			depth++

			continue

		case ')', ']', '}':
			depth--

			continue
		}

		if depth == 0 && src[i:i+len(sub)] == sub {
			return i
		}
	}

	return -1
}

// matchParen returns the index of the parenthesis closing the one at
// open, or -1.
func matchParen(src string, open int) int {
	depth := 0

	var quote byte

	for i := open; i < len(src); i++ {
		c := src[i]

		if quote != 0 {
			if c == quote && src[i-1] != '\\' {
				quote = 0
			}

			continue
		}

		switch c {
		case '\'', '"', '`':
			quote = c

		case '(':
			depth++

		case ')':
			depth--

			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// splitFilters separates a pipe-filter chain from its subject
// expression: "price | currency('USD') | trim" yields the subject and
// two filter calls. Logical-or is never treated as a pipe.
func splitFilters(src string) (string, []FilterCall) {
	segments := splitTopLevel(src, '|')
	if len(segments) == 1 {
		return strings.TrimSpace(src), nil
	}

	filters := make([]FilterCall, 0, len(segments)-1)

	for _, seg := range segments[1:] {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}

		name, rest, hasArgs := strings.Cut(seg, "(")
		name = strings.TrimSpace(name)

		var args []string

		if hasArgs {
			rest = strings.TrimSuffix(strings.TrimSpace(rest), ")")
			for _, arg := range splitTopLevel(rest, ',') {
				if arg = strings.TrimSpace(arg); arg != "" {
					args = append(args, arg)
				}
			}
		}

		filters = append(filters, FilterCall{Name: name, Args: args})
	}

	return strings.TrimSpace(segments[0]), filters
}

// splitTopLevel splits src on sep outside quotes and bracket nesting.
// When sep is '|', doubled separators (logical-or) do not split.
func splitTopLevel(src string, sep byte) []string {
	var (
		parts []string
		quote byte
	)

	depth, start := 0, 0

	for i := 0; i < len(src); i++ {
		c := src[i]

		if quote != 0 {
			if c == quote && src[i-1] != '\\' {
				quote = 0
			}

			continue
		}

		switch c {
		case '\'', '"', '`':
			quote = c

		case '(', '[', '{':
			depth++

		case ')', ']', '}':
			depth--

		case sep:
			if depth != 0 {
				continue
			}

			if sep == '|' {
				if i+1 < len(src) && src[i+1] == '|' {
					i++

					continue
				}

				if i > 0 && src[i-1] == '|' {
					continue
				}
			}

			parts = append(parts, src[start:i])
			start = i + 1
		}
	}

	return append(parts, src[start:])
}

// isDottedPath reports whether s is an identifier or dotted identifier
// path ("items", "cart.items").
func isDottedPath(s string) bool {
	if s == "" {
		return false
	}

	for _, seg := range strings.Split(s, ".") {
		if !isIdentName(seg) {
			return false
		}
	}

	return true
}

func isIdentName(s string) bool {
	if s == "" {
		return false
	}

	if s[0] >= '0' && s[0] <= '9' {
		return false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '_' && c != '$' &&
			(c < 'a' || c > 'z') &&
			(c < 'A' || c > 'Z') &&
			(c < '0' || c > '9') {
			return false
		}
	}

	return true
}
