package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCollectVariables_Order(t *testing.T) {
	tree := Root(
		Element("span", nil).Annotated(Variable{Name: "title"}),
		Element("div", nil).Annotated(Condition{
			Expr:   "user.active && count > 0",
			Branch: BranchIf,
		}),
		Element("span", nil).Annotated(Variable{Name: "user.email"}),
		Element("span", nil).Annotated(Variable{Name: "title"}),
	)

	want := []string{"title", "user", "count"}
	if diff := cmp.Diff(want, CollectVariables(tree)); diff != "" {
		t.Errorf("variable order mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectVariables_LoopShadowing(t *testing.T) {
	body := Element("li", nil,
		Element("span", nil).Annotated(Variable{Name: "item.name"}),
		Element("span", nil).Annotated(Variable{Name: "i"}),
		Element("span", nil).Annotated(Variable{Name: "total"}),
	)

	tree := Root(
		Element("ul", nil, body).Annotated(Loop{
			Item:       "item",
			Index:      "i",
			Collection: "products",
		}),
		// Outside the loop the same names are free again.
		Element("span", nil).Annotated(Variable{Name: "item.name"}),
	)

	want := []string{"products", "total", "item"}
	if diff := cmp.Diff(want, CollectVariables(tree)); diff != "" {
		t.Errorf("shadowing mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectVariables_Excluded(t *testing.T) {
	tree := Root(
		Element("span", nil).Annotated(Variable{Name: "Math.random"}),
		Element("span", nil).Annotated(Variable{Name: "title"}),
	)

	want := []string{"title"}

	got := CollectVariables(tree, "Math", "JSON", "children")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("exclusion mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectDependencies(t *testing.T) {
	tree := Root(
		Element("x", nil).Annotated(Include{Partial: "partials/header"}),
		Element("x", nil).Annotated(Block{Extends: "layouts/base"}),
		Element("x", nil).Annotated(Include{Partial: "partials/footer"}),
		Element("x", nil).Annotated(Include{Partial: "partials/header"}),
	)

	want := []string{"partials/header", "layouts/base", "partials/footer"}
	if diff := cmp.Diff(want, CollectDependencies(tree)); diff != "" {
		t.Errorf("dependency order mismatch (-want +got):\n%s", diff)
	}
}

func TestScanIdentifiers(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []string
	}{
		{
			name: "bare identifier",
			expr: "visible",
			want: []string{"visible"},
		},
		{
			name: "member path reports root only",
			expr: "user.profile.name",
			want: []string{"user"},
		},
		{
			name: "string literals skipped",
			expr: `status == 'active'`,
			want: []string{"status"},
		},
		{
			name: "keywords and numbers skipped",
			expr: "count > 10 && enabled == true",
			want: []string{"count", "enabled"},
		},
		{
			name: "duplicates deduplicated in order",
			expr: "a && b || a",
			want: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ScanIdentifiers(tt.expr)); diff != "" {
				t.Errorf("identifier mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
