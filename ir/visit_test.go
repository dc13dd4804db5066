package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleTree() *Node {
	return Root(
		Element("ul", []Attr{{Key: "id", Val: "menu"}},
			Element("li", []Attr{{Key: "class", Val: "item active"}},
				Text("Home"),
			),
			Element("li", []Attr{{Key: "class", Val: "item"}},
				Text("About"),
			),
		),
		Comment("nav end"),
	)
}

func TestWalk_Order(t *testing.T) {
	var entered, exited []string

	name := func(n *Node) string {
		switch n.Kind {
		case KindElement:
			return n.Tag
		case KindText:
			return "#text"
		case KindComment:
			return "#comment"
		default:
			return "#root"
		}
	}

	ok := Walk(sampleTree(), Visitor{
		Enter: func(n *Node) Step {
			entered = append(entered, name(n))

			return Continue
		},
		Exit: func(n *Node) {
			exited = append(exited, name(n))
		},
	})

	if !ok {
		t.Fatal("walk aborted unexpectedly")
	}

	wantEnter := []string{
		"#root", "ul", "li", "#text", "li", "#text", "#comment",
	}
	if diff := cmp.Diff(wantEnter, entered); diff != "" {
		t.Errorf("enter order mismatch (-want +got):\n%s", diff)
	}

	wantExit := []string{
		"#text", "li", "#text", "li", "ul", "#comment", "#root",
	}
	if diff := cmp.Diff(wantExit, exited); diff != "" {
		t.Errorf("exit order mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk_SkipChildren(t *testing.T) {
	visited := 0

	Walk(sampleTree(), Visitor{
		Enter: func(n *Node) Step {
			visited++

			if n.Kind == KindElement && n.Tag == "ul" {
				return SkipChildren
			}

			return Continue
		},
	})

	// root, ul, comment: the two li subtrees are skipped
	if visited != 3 {
		t.Errorf("expected 3 nodes visited, got %d", visited)
	}
}

func TestWalk_Abort(t *testing.T) {
	visited := 0

	ok := Walk(sampleTree(), Visitor{
		Enter: func(n *Node) Step {
			visited++

			if n.Kind == KindElement && n.Tag == "li" {
				return Abort
			}

			return Continue
		},
	})

	if ok {
		t.Error("expected walk to report abort")
	}

	if visited != 3 {
		t.Errorf("expected 3 nodes visited before abort, got %d", visited)
	}
}

func TestMap_PureRebuild(t *testing.T) {
	orig := sampleTree()

	mapped := Map(orig, func(n *Node) *Node {
		if n.Kind == KindText {
			n.Text = n.Text + "!"
		}

		return n
	})

	got := FindByTag(mapped, "li")[0].Children[0].Text
	if got != "Home!" {
		t.Errorf("expected mapped text %q, got %q", "Home!", got)
	}

	// The input tree must be untouched.
	if diff := cmp.Diff(sampleTree(), orig); diff != "" {
		t.Errorf("Map mutated its input (-want +got):\n%s", diff)
	}
}

func TestMap_DropNode(t *testing.T) {
	mapped := Map(sampleTree(), func(n *Node) *Node {
		if n.Kind == KindComment {
			return nil
		}

		return n
	})

	if CountByKind(mapped)[KindComment] != 0 {
		t.Error("expected comments to be dropped")
	}
}

func TestFilterRemove(t *testing.T) {
	orig := sampleTree()

	pruned := Remove(orig, func(n *Node) bool {
		return n.Kind == KindText
	})

	if CountByKind(pruned)[KindText] != 0 {
		t.Error("expected text nodes removed")
	}

	if CountByKind(orig)[KindText] != 2 {
		t.Error("Remove mutated its input")
	}

	kept := Filter(orig, func(n *Node) bool {
		return n.Kind != KindComment
	})

	if CountByKind(kept)[KindComment] != 0 {
		t.Error("expected comment filtered out")
	}
}
