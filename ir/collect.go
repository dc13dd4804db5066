package ir

import "strings"

// orderedSet accumulates strings, de-duplicated, in first-occurrence
// insertion order. The emitted order is part of the public contract of
// [CollectVariables] and [CollectDependencies]: downstream tooling
// (registry scanners, site pipelines) depends on it being stable.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(item string) {
	if item == "" {
		return
	}

	if _, ok := s.seen[item]; ok {
		return
	}

	s.seen[item] = struct{}{}
	s.items = append(s.items, item)
}

// CollectVariables walks every annotation in the tree and returns the
// free-variable set of the unit: the root identifiers referenced by loop
// collections, condition guards, and variable interpolations.
//
// Loop item and index bindings shadow their names inside the loop's
// subtree and are never reported. Names listed in exclude (known globals,
// framework intrinsics) are skipped everywhere.
func CollectVariables(n *Node, exclude ...string) []string {
	set := newOrderedSet()

	skip := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		skip[name] = struct{}{}
	}

	collectVariables(n, set, skip, nil)

	return set.items
}

func collectVariables(
	n *Node,
	set *orderedSet,
	skip map[string]struct{},
	bound []string,
) {
	if n == nil {
		return
	}

	record := func(name string) {
		root := pathRoot(name)
		if root == "" {
			return
		}

		if _, ok := skip[root]; ok {
			return
		}

		for _, b := range bound {
			if root == b {
				return
			}
		}

		set.add(root)
	}

	inner := bound

	switch ann := n.Ann.(type) {
	case Loop:
		record(ann.Collection)

		if ann.Item != "" {
			inner = append(inner, ann.Item)
		}

		if ann.Index != "" {
			inner = append(inner, ann.Index)
		}

	case Condition:
		for _, ident := range ScanIdentifiers(ann.Expr) {
			record(ident)
		}

	case Variable:
		record(ann.Name)

	case Include:
		for _, prop := range ann.Props {
			for _, ident := range ScanIdentifiers(prop.Val) {
				record(ident)
			}
		}
	}

	for _, child := range n.Children {
		collectVariables(child, set, skip, inner)
	}
}

// CollectDependencies walks every annotation in the tree and returns the
// include-dependency set of the unit: partial paths referenced by include
// annotations and layouts referenced by inheritance declarations, in
// first-occurrence insertion order, de-duplicated.
func CollectDependencies(n *Node) []string {
	set := newOrderedSet()

	Walk(n, Visitor{
		Enter: func(node *Node) Step {
			switch ann := node.Ann.(type) {
			case Include:
				set.add(ann.Partial)

			case Block:
				set.add(ann.Extends)
			}

			return Continue
		},
	})

	return set.items
}

// pathRoot returns the text before the first '.' of a dotted path, with
// surrounding whitespace removed. Non-identifier paths (literals, calls)
// yield an empty string.
func pathRoot(path string) string {
	root, _, _ := strings.Cut(strings.TrimSpace(path), ".")
	if !isIdentifier(root) {
		return ""
	}

	return root
}

// exprKeywords are expression-level words that look like identifiers but
// never name a free variable.
var exprKeywords = map[string]struct{}{
	"true": {}, "false": {}, "null": {}, "nil": {},
	"undefined": {}, "not": {}, "and": {}, "or": {}, "in": {},
}

// ScanIdentifiers extracts the root identifiers referenced by an opaque
// expression. String literals, numbers, keywords, and member accesses
// after '.' are skipped. The expression is never evaluated.
func ScanIdentifiers(expr string) []string {
	set := newOrderedSet()

	var (
		quote    byte
		prevDot  bool
		start    = -1
		flushIdx = func(end int) {
			if start < 0 {
				return
			}

			word := expr[start:end]
			start = -1

			if prevDot {
				prevDot = false

				return
			}

			if _, kw := exprKeywords[word]; kw {
				return
			}

			if word[0] >= '0' && word[0] <= '9' {
				return
			}

			set.add(word)
		}
	)

	for i := 0; i < len(expr); i++ {
		c := expr[i]

		if quote != 0 {
			if c == quote && (i == 0 || expr[i-1] != '\\') {
				quote = 0
			}

			continue
		}

		switch {
		case c == '\'' || c == '"' || c == '`':
			flushIdx(i)

			quote = c

		case isIdentByte(c):
			if start < 0 {
				start = i
			}

		default:
			flushIdx(i)

			if c == '.' {
				prevDot = true
			} else if c != ' ' && c != '\t' {
				prevDot = false
			}
		}
	}

	flushIdx(len(expr))

	return set.items
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	if s[0] >= '0' && s[0] <= '9' {
		return false
	}

	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}

	return true
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
