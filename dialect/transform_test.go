package dialect_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/recastml/recast/analyze"
	"github.com/recastml/recast/dialect"
	"github.com/recastml/recast/dialect/handlebars"
	"github.com/recastml/recast/dialect/jsx"
)

func compile(
	t *testing.T,
	src string,
	r dialect.Renderer,
) *dialect.Result {
	t.Helper()

	unit, err := analyze.Parse(context.Background(), src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	res, err := dialect.Transform(context.Background(), unit, r)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	return res
}

func TestTransform_HandlebarsLoop(t *testing.T) {
	res := compile(t,
		`<Loop items="items"><li>{{item.name}}</li></Loop>`,
		handlebars.New(),
	)

	want := "{{#each items}}\n<li>{{item.name}}</li>\n{{/each}}"
	if res.Output != want {
		t.Errorf("output = %q, want %q", res.Output, want)
	}
}

func TestTransform_ConditionChainFolds(t *testing.T) {
	// Blank text between branches is chain glue, not output.
	res := compile(t, `
		<If cond="a"><i>1</i></If>
		<ElseIf cond="b"><i>2</i></ElseIf>
		<Else><i>3</i></Else>
	`, handlebars.New())

	out := strings.TrimSpace(res.Output)

	want := "{{#if a}}\n<i>1</i>\n{{else if b}}\n<i>2</i>\n{{else}}" +
		"\n<i>3</i>\n{{/if}}"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	if strings.Count(res.Output, "{{#if") != 1 {
		t.Error("chain must fold into a single conditional")
	}
}

func TestTransform_UnknownFilterFallsThrough(t *testing.T) {
	res := compile(t, `<p>{{name | sparkle}}</p>`, jsx.New())

	// The name survives verbatim as a native call; the warning flags it.
	if want := "<p>{name.sparkle()}</p>"; res.Output != want {
		t.Errorf("output = %q, want %q", res.Output, want)
	}

	found := false

	for _, w := range res.Warnings {
		if w.Code == analyze.WarnUnknownFilter {
			found = true

			if !strings.Contains(w.Detail, "sparkle") {
				t.Errorf("detail %q does not name the filter", w.Detail)
			}
		}
	}

	if !found {
		t.Errorf("expected unknown-filter warning, got %+v", res.Warnings)
	}
}

func TestTransform_ResultCollections(t *testing.T) {
	res := compile(t,
		`<Include src="partials/header" title="{{page.title}}">`+
			`</Include>`+
			`<Loop items="products" as="p"><li>{{p.name}}</li></Loop>`+
			`<p>{{user.email}}</p>`,
		handlebars.New(),
	)

	wantVars := []string{"page", "products", "user"}
	if diff := cmp.Diff(wantVars, res.Variables); diff != "" {
		t.Errorf("variables mismatch (-want +got):\n%s", diff)
	}

	wantDeps := []string{"partials/header"}
	if diff := cmp.Diff(wantDeps, res.Dependencies); diff != "" {
		t.Errorf("dependencies mismatch (-want +got):\n%s", diff)
	}
}

func TestTransform_InheritancePlaceholder(t *testing.T) {
	res := compile(t, `<Extends src="layouts/base"/>`, handlebars.New())

	if !strings.Contains(res.Output, `{{!-- recast: extends "layouts/base"`) {
		t.Errorf("placeholder missing from output %q", res.Output)
	}

	found := false
	for _, w := range res.Warnings {
		found = found || w.Code == analyze.WarnUnsupportedFeature
	}

	if !found {
		t.Errorf("expected unsupported-feature warning, got %+v",
			res.Warnings)
	}
}

func TestTransform_ValidationIsIdempotent(t *testing.T) {
	r := handlebars.New()

	res := compile(t,
		`<Loop items="xs"><li>{{item.id}}</li></Loop>`, r)

	first := r.Validate(res.Output)
	second := r.Validate(res.Output)

	if !first.Valid || !second.Valid {
		t.Errorf("valid output rejected: %+v", first.Errors)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("validation not idempotent (-first +second):\n%s", diff)
	}
}

func TestTransform_DepthFirst(t *testing.T) {
	// The loop body arrives at the renderer fully rendered: the nested
	// conditional inside it is already handlebars text.
	res := compile(t,
		`<Loop items="xs" as="x">`+
			`<If cond="x.ok"><b>{{x.name}}</b></If>`+
			`</Loop>`,
		handlebars.New(),
	)

	want := "{{#each xs as |x|}}\n{{#if x.ok}}\n<b>{{x.name}}</b>" +
		"\n{{/if}}\n{{/each}}"
	if res.Output != want {
		t.Errorf("output = %q, want %q", res.Output, want)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	reg := dialect.NewRegistry(jsx.New(), handlebars.New())

	if diff := cmp.Diff(
		[]string{"jsx", "handlebars"}, reg.Names(),
	); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	if _, err := reg.Lookup("JSX"); err != nil {
		t.Errorf("case-insensitive lookup failed: %v", err)
	}

	if _, err := reg.Lookup("mustache"); err == nil {
		t.Error("expected error for unregistered dialect")
	}
}

func TestCheckOutput(t *testing.T) {
	tests := []struct {
		name   string
		output string
		valid  bool
	}{
		{
			name:   "balanced",
			output: "{{#if a}}x{{/if}}",
			valid:  true,
		},
		{
			name:   "unbalanced",
			output: "{{#if a}}x",
			valid:  false,
		},
		{
			name:   "leftover placeholder",
			output: "\uE0000\uE001",
			valid:  false,
		},
	}

	pair := dialect.Pair{Open: "{{#if", Close: "{{/if}}"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dialect.CheckOutput(tt.output, pair)
			if got.Valid != tt.valid {
				t.Errorf("Valid = %t, want %t (%v)",
					got.Valid, tt.valid, got.Errors)
			}
		})
	}
}
