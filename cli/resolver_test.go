package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolverFor(t *testing.T, text string) kong.Resolver {
	t.Helper()

	r, err := resolveYAML(strings.NewReader(text))
	if err != nil {
		t.Fatalf("resolveYAML: %v", err)
	}

	return r
}

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	flag := &kong.Flag{Value: &kong.Value{Name: name}}

	value, err := r.Resolve(nil, nil, flag)
	if err != nil {
		t.Fatalf("resolve %q: %v", name, err)
	}

	return value
}

func TestResolveYAML_FlagLookup(t *testing.T) {
	r := resolverFor(t, strings.Join([]string{
		"log-level: debug",
		"out_dir: dist",
		"target: [jsx, blade]",
		"log-caller: true",
	}, "\n"))

	if got := resolveFlag(t, r, "log-level"); got != "debug" {
		t.Errorf("log-level = %v, want debug", got)
	}

	// Underscore spelling resolves the hyphenated flag.
	if got := resolveFlag(t, r, "out-dir"); got != "dist" {
		t.Errorf("out-dir = %v, want dist", got)
	}

	if got := resolveFlag(t, r, "log-caller"); got != true {
		t.Errorf("log-caller = %v, want true", got)
	}

	list, ok := resolveFlag(t, r, "target").([]any)
	if !ok || len(list) != 2 || list[0] != "jsx" || list[1] != "blade" {
		t.Errorf("target = %v, want [jsx blade]", list)
	}

	if got := resolveFlag(t, r, "unset"); got != nil {
		t.Errorf("unset flag = %v, want nil", got)
	}
}

func TestResolveYAML_NumbersBecomeStrings(t *testing.T) {
	r := resolverFor(t, "indent: 4\nratio: 1.5")

	if got := resolveFlag(t, r, "indent"); got != "4" {
		t.Errorf("indent = %v (%T), want \"4\"", got, got)
	}

	if got := resolveFlag(t, r, "ratio"); got != "1.5" {
		t.Errorf("ratio = %v (%T), want \"1.5\"", got, got)
	}
}

func TestResolveYAML_MalformedFileResolvesNothing(t *testing.T) {
	r := resolverFor(t, ":\n  - not: [valid")

	if got := resolveFlag(t, r, "log-level"); got != nil {
		t.Errorf("malformed config resolved %v, want nil", got)
	}
}

func TestPassThroughTags_MergesAndDeduplicates(t *testing.T) {
	t.Setenv(passThroughEnv, "Icon,Badge")

	got := passThroughTags([]string{"Badge", "Card"})

	want := []string{"Icon", "Badge", "Card"}
	if len(got) != len(want) {
		t.Fatalf("tags = %v, want %v", got, want)
	}

	for i, tag := range want {
		if got[i] != tag {
			t.Errorf("tags[%d] = %q, want %q", i, got[i], tag)
		}
	}
}

func TestPassThroughTags_Empty(t *testing.T) {
	t.Setenv(passThroughEnv, "")

	if got := passThroughTags(nil); got != nil {
		t.Errorf("tags = %v, want nil", got)
	}
}
