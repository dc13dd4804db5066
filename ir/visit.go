package ir

// Step directs traversal from a visitor's Enter hook.
type Step int

const (
	// Continue descends into the node's children.
	Continue Step = iota
	// SkipChildren visits the node but not its children.
	SkipChildren
	// Abort stops the entire traversal immediately.
	Abort
)

// Visitor carries the hooks invoked by [Walk]. Either hook may be nil.
type Visitor struct {
	// Enter is invoked before a node's children. Its result directs
	// traversal.
	Enter func(*Node) Step
	// Exit is invoked after a node's children, unless the walk was
	// aborted inside them.
	Exit func(*Node)
}

// Walk traverses the tree rooted at n depth-first in source order.
// It reports whether the traversal ran to completion (false when a
// visitor returned [Abort]).
func Walk(n *Node, v Visitor) bool {
	if n == nil {
		return true
	}

	step := Continue
	if v.Enter != nil {
		step = v.Enter(n)
	}

	switch step {
	case Abort:
		return false

	case SkipChildren:

	case Continue:
		for _, child := range n.Children {
			if !Walk(child, v) {
				return false
			}
		}
	}

	if v.Exit != nil {
		v.Exit(n)
	}

	return true
}

// Map rebuilds the tree bottom-up, applying fn to a copy of every node
// after its children have been rebuilt. The input tree is not modified.
// fn may return nil to drop a node from its parent's child list.
func Map(n *Node, fn func(*Node) *Node) *Node {
	if n == nil {
		return nil
	}

	c := *n

	if len(n.Children) > 0 {
		children := make([]*Node, 0, len(n.Children))

		for _, child := range n.Children {
			if mapped := Map(child, fn); mapped != nil {
				children = append(children, mapped)
			}
		}

		c.Children = children
	}

	return fn(&c)
}

// Filter returns a new tree containing only nodes satisfying keep.
// The root always survives. Recursion descends only into nodes with
// child lists (root and element nodes).
func Filter(n *Node, keep func(*Node) bool) *Node {
	if n == nil {
		return nil
	}

	c := *n

	if n.HasChildren() {
		children := make([]*Node, 0, len(n.Children))

		for _, child := range n.Children {
			if !keep(child) {
				continue
			}

			children = append(children, Filter(child, keep))
		}

		c.Children = children
	}

	return &c
}

// Remove is the complement of [Filter]: it prunes nodes satisfying drop.
func Remove(n *Node, drop func(*Node) bool) *Node {
	return Filter(n, func(child *Node) bool { return !drop(child) })
}
