package ir

//go:generate go tool stringer --linecomment --type Kind,BranchKind --output node_string.go

// Kind identifies the structural role of a node.
type Kind int

const (
	KindRoot    Kind = iota // root
	KindElement             // element
	KindText                // text
	KindComment             // comment
	KindDoctype             // doctype
)

// Attr is a single element attribute. Order is source order and is
// preserved through every transform.
type Attr struct {
	Key string
	Val string
}

// Node is a single vertex of the intermediate tree.
//
// Text carries the literal content of text, comment, and doctype nodes.
// Ann is nil for nodes without dynamic semantics.
type Node struct {
	Kind     Kind
	Tag      string
	Attrs    []Attr
	Children []*Node
	Text     string
	Ann      Annotation
	Unwrap   bool
}

// Root creates a new root node over the given children.
func Root(children ...*Node) *Node {
	return &Node{Kind: KindRoot, Children: children}
}

// Element creates a new element node.
func Element(tag string, attrs []Attr, children ...*Node) *Node {
	return &Node{
		Kind:     KindElement,
		Tag:      tag,
		Attrs:    attrs,
		Children: children,
	}
}

// Text creates a new text node.
func Text(value string) *Node {
	return &Node{Kind: KindText, Text: value}
}

// Comment creates a new comment node.
func Comment(value string) *Node {
	return &Node{Kind: KindComment, Text: value}
}

// Doctype creates a new doctype node.
func Doctype(value string) *Node {
	return &Node{Kind: KindDoctype, Text: value}
}

// Annotated returns a copy of n carrying the given annotation.
// It does not modify n.
func (n *Node) Annotated(ann Annotation) *Node {
	c := *n
	c.Ann = ann

	return &c
}

// Unwrapped returns a copy of n flagged as a synthetic wrapper.
// It does not modify n.
func (n *Node) Unwrapped() *Node {
	c := *n
	c.Unwrap = true

	return &c
}

// Attr returns the value of the named attribute and whether it exists.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}

	return "", false
}

// HasChildren reports whether n can recurse into children
// (only root and element nodes have child lists).
func (n *Node) HasChildren() bool {
	return n.Kind == KindRoot || n.Kind == KindElement
}
