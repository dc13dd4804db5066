package profile

import (
	"slices"
	"testing"
)

func TestStartWithoutModeIsNoop(t *testing.T) {
	var cfg Config = func() (string, string, bool) { return "", "", false }

	// Stop must be safe on the no-op profiler.
	cfg.Start().Stop()
}

func TestStartStopWithMode(t *testing.T) {
	var cfg Config = func() (string, string, bool) { return "", "", false }

	cfg = WithMode("cpu")(cfg)
	cfg = WithPath(t.TempDir())(cfg)
	cfg = WithQuiet(true)(cfg)

	cfg.Start().Stop()
}

func TestOptionsCompose(t *testing.T) {
	var cfg Config = func() (string, string, bool) { return "", "", false }

	cfg = WithQuiet(true)(WithPath("/tmp/x")(WithMode("heap")(cfg)))

	mode, path, quiet := cfg()
	if mode != "heap" || path != "/tmp/x" || !quiet {
		t.Errorf("config = (%q, %q, %t)", mode, path, quiet)
	}
}

func TestModesSorted(t *testing.T) {
	if modes := Modes(); !slices.IsSorted(modes) {
		t.Errorf("modes not sorted: %v", modes)
	}
}
