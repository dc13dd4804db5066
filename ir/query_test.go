package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFindByTagIDClass(t *testing.T) {
	tree := sampleTree()

	if got := len(FindByTag(tree, "li")); got != 2 {
		t.Errorf("expected 2 li elements, got %d", got)
	}

	if FindByID(tree, "menu") == nil {
		t.Error("expected to find element with id=menu")
	}

	if FindByID(tree, "missing") != nil {
		t.Error("expected nil for unknown id")
	}

	if got := len(FindByClass(tree, "item")); got != 2 {
		t.Errorf("expected 2 elements with class item, got %d", got)
	}

	if got := len(FindByClass(tree, "active")); got != 1 {
		t.Errorf("expected 1 element with class active, got %d", got)
	}
}

func TestFindByAnnotation(t *testing.T) {
	tree := Root(
		Element("div", nil).Annotated(Loop{Item: "x", Collection: "xs"}),
		Element("div", nil).Annotated(Condition{Expr: "ok", Branch: BranchIf}),
		Element("div", nil),
	)

	loops := FindByAnnotation(tree, func(a Annotation) bool {
		_, ok := a.(Loop)

		return ok
	})
	if len(loops) != 1 {
		t.Fatalf("expected 1 loop-annotated node, got %d", len(loops))
	}
}

func TestDiagnostics(t *testing.T) {
	tree := sampleTree()

	if got := CountNodes(tree); got != 7 {
		t.Errorf("expected 7 nodes, got %d", got)
	}

	want := map[Kind]int{
		KindRoot:    1,
		KindElement: 3,
		KindText:    2,
		KindComment: 1,
	}
	if diff := cmp.Diff(want, CountByKind(tree)); diff != "" {
		t.Errorf("count by kind mismatch (-want +got):\n%s", diff)
	}

	if got := Depth(tree); got != 4 {
		t.Errorf("expected depth 4, got %d", got)
	}

	if got := Depth(nil); got != 0 {
		t.Errorf("expected nil depth 0, got %d", got)
	}
}
