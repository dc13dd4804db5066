package ir

import "strings"

// Find returns the first node (in source order) satisfying pred, or nil.
func Find(n *Node, pred func(*Node) bool) *Node {
	var found *Node

	Walk(n, Visitor{
		Enter: func(node *Node) Step {
			if pred(node) {
				found = node

				return Abort
			}

			return Continue
		},
	})

	return found
}

// FindAll returns every node satisfying pred in source order.
func FindAll(n *Node, pred func(*Node) bool) []*Node {
	var found []*Node

	Walk(n, Visitor{
		Enter: func(node *Node) Step {
			if pred(node) {
				found = append(found, node)
			}

			return Continue
		},
	})

	return found
}

// FindByTag returns every element node with the given tag name.
func FindByTag(n *Node, tag string) []*Node {
	return FindAll(n, func(node *Node) bool {
		return node.Kind == KindElement && node.Tag == tag
	})
}

// FindByID returns the element whose id attribute equals id, or nil.
func FindByID(n *Node, id string) *Node {
	return Find(n, func(node *Node) bool {
		if node.Kind != KindElement {
			return false
		}

		v, ok := node.Attr("id")

		return ok && v == id
	})
}

// FindByClass returns every element whose class attribute contains the
// given class as a whitespace-separated word.
func FindByClass(n *Node, class string) []*Node {
	return FindAll(n, func(node *Node) bool {
		if node.Kind != KindElement {
			return false
		}

		v, ok := node.Attr("class")
		if !ok {
			return false
		}

		for _, word := range strings.Fields(v) {
			if word == class {
				return true
			}
		}

		return false
	})
}

// FindByAnnotation returns every node whose annotation satisfies match.
// Passing a match on the variant type selects one annotation kind:
//
//	ir.FindByAnnotation(tree, func(a ir.Annotation) bool {
//		_, ok := a.(ir.Loop)
//		return ok
//	})
func FindByAnnotation(n *Node, match func(Annotation) bool) []*Node {
	return FindAll(n, func(node *Node) bool {
		return node.Ann != nil && match(node.Ann)
	})
}

// CountNodes returns the total number of nodes in the tree.
func CountNodes(n *Node) int {
	count := 0

	Walk(n, Visitor{
		Enter: func(*Node) Step {
			count++

			return Continue
		},
	})

	return count
}

// CountByKind returns the number of nodes per structural kind.
func CountByKind(n *Node) map[Kind]int {
	counts := make(map[Kind]int)

	Walk(n, Visitor{
		Enter: func(node *Node) Step {
			counts[node.Kind]++

			return Continue
		},
	})

	return counts
}

// Depth returns the length of the longest root-to-leaf path. A single
// node has depth 1; a nil tree has depth 0.
func Depth(n *Node) int {
	if n == nil {
		return 0
	}

	deepest := 0

	for _, child := range n.Children {
		if d := Depth(child); d > deepest {
			deepest = d
		}
	}

	return deepest + 1
}
