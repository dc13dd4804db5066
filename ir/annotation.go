package ir

// Annotation is the semantic payload attached to a tree node, independent of
// any target syntax. The interface is sealed: exactly the six variants below
// implement it, so a node can never carry more than one kind.
type Annotation interface {
	annotation()
}

// BranchKind distinguishes the position of a condition within a sibling
// chain.
type BranchKind int

const (
	BranchIf     BranchKind = iota // if
	BranchElseIf                   // elseif
	BranchElse                     // else
)

// Loop marks a node whose children repeat once per item of a collection.
type Loop struct {
	// Item is the per-iteration binding name.
	Item string
	// Collection is the dotted path of the iterated value.
	Collection string
	// Key is the per-item identity expression, empty when unresolved.
	Key string
	// Index is the positional binding name, empty when unused.
	Index string
}

// Condition marks one branch of a conditional sibling chain. Only the guard
// expression is carried; it is never evaluated. ElseIf and Else branches are
// meaningful only as a sibling immediately following an If (or another
// ElseIf) in source order.
type Condition struct {
	Expr   string
	Branch BranchKind
}

// Variable marks an interpolated value.
type Variable struct {
	Name       string
	Default    string
	Filter     string
	FilterArgs []string
	// Raw disables output escaping in dialects that escape by default.
	Raw bool
}

// Slot marks a content projection point.
type Slot struct {
	Name string
}

// Include marks a partial inclusion. Props preserve source order.
type Include struct {
	Partial string
	Props   []Attr
}

// Block marks a named overridable region (Name set) or an inheritance
// declaration (Extends set).
type Block struct {
	Name    string
	Extends string
}

func (Loop) annotation()      {}
func (Condition) annotation() {}
func (Variable) annotation()  {}
func (Slot) annotation()      {}
func (Include) annotation()   {}
func (Block) annotation()     {}
