package jsx_test

import (
	"context"
	"strings"
	"testing"

	"github.com/recastml/recast/analyze"
	"github.com/recastml/recast/dialect"
	"github.com/recastml/recast/dialect/jsx"
)

func render(t *testing.T, src string) string {
	t.Helper()

	unit, err := analyze.Parse(context.Background(), src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	res, err := dialect.Transform(context.Background(), unit, jsx.New())
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	return res.Output
}

func TestVariableWithDefault(t *testing.T) {
	got := render(t, `<Var name="title" default="Untitled"/>`)

	if want := `{title ?? "Untitled"}`; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestVariableRaw(t *testing.T) {
	got := render(t, `<Raw>{{html_body}}</Raw>`)

	want := "<span dangerouslySetInnerHTML={{ __html: html_body }}/>"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLoopKeyFromSource(t *testing.T) {
	got := render(t,
		`<ul>{{items.map(item => <li key="item.id">{{item.name}}</li>)}}</ul>`)

	want := "<ul>{items.map(item => (\n" +
		"<li key={item.id}>{item.name}</li>\n))}</ul>"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLoopKeyFallsBackToIndex(t *testing.T) {
	got := render(t,
		`<Loop items="xs" as="x"><li>{{x.label}}</li></Loop>`)

	if !strings.Contains(got, "(x, index)") {
		t.Errorf("missing synthesized index parameter in %q", got)
	}

	if !strings.Contains(got, "key={index}") {
		t.Errorf("missing index key in %q", got)
	}
}

func TestConditionStrategies(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "lone if is a logical gate",
			src:  `<If cond="ok"><b>y</b></If>`,
			want: "{ok && (\n<b>y</b>\n)}",
		},
		{
			name: "if and else spell as a ternary",
			src: `<If cond="ok"><b>y</b></If>` +
				`<Else><b>n</b></Else>`,
			want: "{ok ? (\n<b>y</b>\n) : (\n<b>n</b>\n)}",
		},
		{
			name: "any elseif forces an early-return block",
			src: `<If cond="a"><i>1</i></If>` +
				`<ElseIf cond="b"><i>2</i></ElseIf>` +
				`<Else><i>3</i></Else>`,
			want: "{(() => {\n" +
				"  if (a) return (\n    <i>1</i>\n  );\n" +
				"  if (b) return (\n    <i>2</i>\n  );\n" +
				"  return (\n    <i>3</i>\n  );\n" +
				"})()}",
		},
		{
			name: "block without else returns null",
			src: `<If cond="a"><i>1</i></If>` +
				`<ElseIf cond="b"><i>2</i></ElseIf>`,
			want: "{(() => {\n" +
				"  if (a) return (\n    <i>1</i>\n  );\n" +
				"  if (b) return (\n    <i>2</i>\n  );\n" +
				"  return null;\n" +
				"})()}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(t, tt.src); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIncludeBecomesComponent(t *testing.T) {
	got := render(t,
		`<Include src="partials/site-header" title="{{page.title}}"`+
			` logo="big"></Include>`)

	want := `<SiteHeader title={page.title} logo="big"/>`
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestSlots(t *testing.T) {
	if got := render(t, `<div>{{children}}</div>`); got !=
		"<div>{children}</div>" {
		t.Errorf("default slot = %q", got)
	}

	got := render(t, `<Slot name="sidebar"><p>none</p></Slot>`)
	if want := "{props.sidebar ?? (\n<p>none</p>\n)}"; got != want {
		t.Errorf("named slot = %q, want %q", got, want)
	}
}

func TestFilterSpellings(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`<p>{{name | uppercase}}</p>`, "<p>{name.toUpperCase()}</p>"},
		{`<p>{{items | length}}</p>`, "<p>{items.length}</p>"},
		{
			`<p>{{tags | join(", ")}}</p>`,
			`<p>{tags.join(", ")}</p>`,
		},
		{
			`<p>{{payload | json}}</p>`,
			"<p>{JSON.stringify(payload)}</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := render(t, tt.src); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInterpolatedConditional(t *testing.T) {
	got := render(t, `<div>{{isAdmin && <AdminPanel/>}}</div>`)

	if !strings.Contains(got, "isAdmin && (") {
		t.Errorf("missing gate in %q", got)
	}
}

func TestValidateCatchesImbalance(t *testing.T) {
	d := jsx.New()

	if v := d.Validate("{x} {y}"); !v.Valid {
		t.Errorf("balanced output rejected: %v", v.Errors)
	}

	if v := d.Validate("{x"); v.Valid {
		t.Error("unbalanced braces accepted")
	}
}

func TestRendererContract(t *testing.T) {
	var _ dialect.Renderer = jsx.New()

	info := jsx.New().Info()
	if info.Name != "jsx" || info.Extension != ".jsx" {
		t.Errorf("unexpected info: %+v", info)
	}

	feat := jsx.New().Features()
	if feat.Inheritance {
		t.Error("jsx must not claim template inheritance")
	}

	if !feat.Macros || !feat.AsyncOutput || !feat.Comments {
		t.Errorf("jsx feature set incomplete: %+v", feat)
	}

	for _, name := range dialect.StandardFilters {
		if name == "escape" || name == "raw" || name == "default" {
			continue
		}

		if !jsx.New().Filters().Known(name) {
			t.Errorf("standard filter %q missing from table", name)
		}
	}
}
