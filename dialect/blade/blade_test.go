package blade_test

import (
	"context"
	"strings"
	"testing"

	"github.com/recastml/recast/analyze"
	"github.com/recastml/recast/dialect"
	"github.com/recastml/recast/dialect/blade"
)

func render(t *testing.T, src string) string {
	t.Helper()

	unit, err := analyze.Parse(context.Background(), src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	res, err := dialect.Transform(context.Background(), unit, blade.New())
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	return res.Output
}

func TestLoop(t *testing.T) {
	got := render(t,
		`<Loop items="cart.items" as="line" index="i">`+
			`<li>{{line.sku}}</li></Loop>`)

	want := "@foreach ($cart->items as $i => $line)\n" +
		"<li>{{ $line->sku }}</li>\n@endforeach"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestConditionChain(t *testing.T) {
	got := render(t,
		`<If cond="status === 'active'"><b>on</b></If>`+
			`<ElseIf cond="user.pending"><b>soon</b></ElseIf>`+
			`<Else><b>off</b></Else>`)

	want := "@if ($status === 'active')\n<b>on</b>\n" +
		"@elseif ($user->pending)\n<b>soon</b>\n" +
		"@else\n<b>off</b>\n@endif"
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
			name: "dotted path becomes arrow access",
			src:  `<p>{{user.profile.name}}</p>`,
			want: "<p>{{ $user->profile->name }}</p>",
		},
		{
			name: "filter spells as a Str helper",
			src:  `<p>{{name | uppercase}}</p>`,
			want: "<p>{{ Str::upper($name) }}</p>",
		},
		{
			name: "truncate takes its length",
			src:  `<p>{{summary | truncate(80)}}</p>`,
			want: "<p>{{ Str::limit($summary, 80) }}</p>",
		},
		{
			name: "default uses null coalescing",
			src:  `<Var name="title" default="Untitled"/>`,
			want: "{{ $title ?? 'Untitled' }}",
		},
		{
			name: "raw output uses unescaped echo",
			src:  `<Raw>{{html_body}}</Raw>`,
			want: "{!! $html_body !!}",
		},
		{
			name: "unknown filter spells as a verbatim call",
			src:  `<p>{{name | sparkle}}</p>`,
			want: "<p>{{ sparkle($name) }}</p>",
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
		`<Include src="partials.header" title="{{page.title}}"`+
			` logo="big"></Include>`)

	want := "@include('partials.header', " +
		"['title' => $page->title, 'logo' => 'big'])"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestNativeInheritance(t *testing.T) {
	got := render(t,
		`<Extends src="layouts.app"/>`+
			`<DefineBlock name="content"><p>hi</p></DefineBlock>`)

	want := "@extends('layouts.app')\n\n" +
		"@section('content')\n<p>hi</p>\n@endsection"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestSlot(t *testing.T) {
	if got := render(t, `<div>{{children}}</div>`); got !=
		"<div>{{ $slot }}</div>" {
		t.Errorf("default slot = %q", got)
	}

	got := render(t, `<Slot name="sidebar"><p>none</p></Slot>`)
	if !strings.Contains(got, "@isset($sidebar)") ||
		!strings.Contains(got, "<p>none</p>") {
		t.Errorf("named slot with fallback = %q", got)
	}
}

func TestCommentSpelling(t *testing.T) {
	got := render(t, `<div><!-- internal --></div>`)

	if !strings.Contains(got, "{{--") || !strings.Contains(got, "--}}") {
		t.Errorf("comment not rewritten: %q", got)
	}
}

func TestValidate(t *testing.T) {
	d := blade.New()

	if v := d.Validate(
		"@foreach ($xs as $x)\n{{ $x }}\n@endforeach",
	); !v.Valid {
		t.Errorf("balanced output rejected: %v", v.Errors)
	}

	if v := d.Validate("@if ($a)\nx"); v.Valid {
		t.Error("unterminated if accepted")
	}
}
