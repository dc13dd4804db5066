package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func makeBuffered(opts ...Option) (*bytes.Buffer, Logger) {
	buf := new(bytes.Buffer)

	base := []Option{
		WithFormat(FormatJSON),
		WithPretty(false),
		WithLevel(LevelDebug),
		WithTimeLayout(""),
	}

	return buf, Make(buf, append(base, opts...)...)
}

func TestMake_WritesJSON(t *testing.T) {
	buf, logger := makeBuffered()

	logger.Info("unit compiled", slog.String("dialect", "jsx"))

	out := buf.String()
	if !strings.Contains(out, `"msg":"unit compiled"`) {
		t.Errorf("missing message in %q", out)
	}

	if !strings.Contains(out, `"dialect":"jsx"`) {
		t.Errorf("missing attribute in %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	buf, logger := makeBuffered(WithLevel(LevelWarn))

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info message not filtered: %q", out)
	}

	if !strings.Contains(out, "kept") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestZeroValueLoggerIsSilent(t *testing.T) {
	var logger Logger

	// Must not panic or write anywhere.
	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d", slog.String("k", "v"))

	if logger.Level() != DefaultLevel {
		t.Errorf("zero logger level = %v", logger.Level())
	}
}

func TestWrap_OverridesLevel(t *testing.T) {
	buf, logger := makeBuffered(WithLevel(LevelError))

	wrapped := logger.Wrap(WithLevel(LevelDebug))

	logger.Debug("hidden")
	wrapped.Debug("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("base logger leaked debug: %q", out)
	}

	if !strings.Contains(out, "shown") {
		t.Errorf("wrapped logger dropped debug: %q", out)
	}
}

func TestWith_AttachesAttrs(t *testing.T) {
	buf, logger := makeBuffered()

	logger.With(slog.String("unit", "card")).Info("done")

	if !strings.Contains(buf.String(), `"unit":"card"`) {
		t.Errorf("missing attached attr in %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{" TEXT ", FormatText},
		{"yaml", DefaultFormat},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	want := []string{"debug", "info", "warn", "error"}

	i := 0

	for name := range Levels() {
		if name != want[i] {
			t.Errorf("level[%d] = %q, want %q", i, name, want[i])
		}

		i++
	}

	if i != len(want) {
		t.Errorf("got %d levels, want %d", i, len(want))
	}
}

func TestTimeLayoutNoneOmitsTimestamp(t *testing.T) {
	buf, logger := makeBuffered(WithTimeLayout("none"))

	logger.Info("stampless")

	if strings.Contains(buf.String(), `"time"`) {
		t.Errorf("timestamp not suppressed: %q", buf.String())
	}
}

func TestPrettyTextHandler(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := Make(buf,
		WithFormat(FormatText),
		WithPretty(true),
		WithTimeLayout(""),
		WithLevel(LevelDebug),
	)

	logger.Warn("slow render", slog.String("dialect", "twig"))

	out := buf.String()
	if !strings.Contains(out, "WARN") {
		t.Errorf("missing level tag in %q", out)
	}

	if !strings.Contains(out, "slow render") {
		t.Errorf("missing message in %q", out)
	}

	if !strings.Contains(out, "twig") {
		t.Errorf("missing attr value in %q", out)
	}
}

func TestPrettyJSONHandlerGroups(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := Make(buf,
		WithFormat(FormatJSON),
		WithPretty(true),
		WithTimeLayout(""),
		WithLevel(LevelDebug),
	)

	logger.Info("report", slog.Group("unit",
		slog.String("name", "card"),
		slog.Int("warnings", 2),
	))

	out := buf.String()
	if !strings.Contains(out, `"unit.name"`) {
		t.Errorf("group key not flattened in %q", out)
	}

	if !strings.Contains(out, `"card"`) {
		t.Errorf("missing group value in %q", out)
	}
}

func TestDefaultLoggerFunctions(t *testing.T) {
	original := defaultLog
	defer func() { defaultLog = original }()

	buf := new(bytes.Buffer)
	defaultLog = Make(buf,
		WithLevel(LevelDebug),
		WithFormat(FormatJSON),
		WithPretty(false),
	)

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			out := buf.String()
			if !strings.Contains(out, tt.level) {
				t.Errorf("missing level %q in %q", tt.level, out)
			}

			if !strings.Contains(out, "message") {
				t.Errorf("missing message in %q", out)
			}
		})
	}
}
