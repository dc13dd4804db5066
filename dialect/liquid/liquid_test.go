package liquid_test

import (
	"context"
	"strings"
	"testing"

	"github.com/recastml/recast/analyze"
	"github.com/recastml/recast/dialect"
	"github.com/recastml/recast/dialect/liquid"
)

func render(t *testing.T, src string) string {
	t.Helper()

	unit, err := analyze.Parse(context.Background(), src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	res, err := dialect.Transform(context.Background(), unit, liquid.New())
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	return res.Output
}

func TestLoop(t *testing.T) {
	got := render(t, `<Loop items="products" as="p"><li>{{p.name}}</li></Loop>`)

	want := "{% for p in products %}\n<li>{{ p.name }}</li>\n{% endfor %}"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLoopIndexBindsForloop(t *testing.T) {
	got := render(t,
		`<Loop items="rows" as="r" index="i"><td>{{i}}</td></Loop>`)

	if !strings.Contains(got, "{% assign i = forloop.index0 %}") {
		t.Errorf("missing index binding in %q", got)
	}
}

func TestConditionOperators(t *testing.T) {
	got := render(t,
		`<If cond="status === 'active' && user.verified"><b>on</b></If>`+
			`<ElseIf cond="status === 'pending'"><b>soon</b></ElseIf>`+
			`<Else><b>off</b></Else>`)

	want := "{% if status == 'active' and user.verified %}\n<b>on</b>\n" +
		"{% elsif status == 'pending' %}\n<b>soon</b>\n" +
		"{% else %}\n<b>off</b>\n{% endif %}"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestVariable(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "plain",
			src:  `<p>{{user.name}}</p>`,
			want: "<p>{{ user.name }}</p>",
		},
		{
			name: "filter maps to the native name",
			src:  `<p>{{name | uppercase}}</p>`,
			want: "<p>{{ name | upcase }}</p>",
		},
		{
			name: "filter args use colon form",
			src:  `<p>{{tags | join(", ")}}</p>`,
			want: `<p>{{ tags | join: ", " }}</p>`,
		},
		{
			name: "default appends the default filter",
			src:  `<Var name="title" default="Untitled"/>`,
			want: `{{ title | default: "Untitled" }}`,
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

func TestInclude(t *testing.T) {
	got := render(t,
		`<Include src="partials/header" title="{{page.title}}"`+
			` logo="big"></Include>`)

	want := `{% include 'partials/header', title: page.title, logo: "big" %}`
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestInheritanceDegrades(t *testing.T) {
	got := render(t, `<Extends src="layouts/base"/>`)

	if !strings.Contains(got, "{% comment %} recast: extends") {
		t.Errorf("placeholder missing: %q", got)
	}
}

func TestValidate(t *testing.T) {
	d := liquid.New()

	if v := d.Validate(
		"{% for x in xs %}{{ x }}{% endfor %}",
	); !v.Valid {
		t.Errorf("balanced output rejected: %v", v.Errors)
	}

	if v := d.Validate("{% if a %}x"); v.Valid {
		t.Error("unterminated if accepted")
	}
}
