package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles for pretty printing.
var (
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	msgStyle    = lipgloss.NewStyle().Bold(true)

	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// levelStyle selects the style for a level tag.
func levelStyle(level slog.Level) lipgloss.Style {
	switch {
	case level >= slog.LevelError:
		return errorStyle
	case level >= slog.LevelWarn:
		return warnStyle
	case level >= slog.LevelInfo:
		return infoStyle
	default:
		return debugStyle
	}
}

// prettyTextHandler is a colorized line-oriented text handler.
type prettyTextHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		// ReplaceAttr formats or strips the timestamp.
		a := h.replace(slog.Time(slog.TimeKey, r.Time))
		if !a.Equal(slog.Attr{}) {
			buf.WriteString(timeStyle.Render(a.Value.String()))
			buf.WriteByte(' ')
		}
	}

	tag := strings.ToUpper(Level(r.Level).String())
	buf.WriteString(levelStyle(r.Level).Render(tag))
	buf.WriteByte(' ')

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			buf.WriteString(sourceStyle.Render(
				fmt.Sprintf("%s:%d", src.File, src.Line),
			))
			buf.WriteByte(' ')
		}
	}

	buf.WriteString(msgStyle.Render(r.Message))

	prefix := strings.Join(h.groups, ".")

	for _, a := range h.attrs {
		h.writeAttr(buf, prefix, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, prefix, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(
		h.attrs[:len(h.attrs):len(h.attrs)], attrs...,
	)

	return &clone
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(
		h.groups[:len(h.groups):len(h.groups)], name,
	)

	return &clone
}

// writeAttr appends one " key=value" pair, flattening groups with a
// dotted key prefix.
func (h *prettyTextHandler) writeAttr(
	buf *bytes.Buffer,
	prefix string,
	a slog.Attr,
) {
	a.Value = a.Value.Resolve()

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, member := range a.Value.Group() {
			h.writeAttr(buf, key, member)
		}

		return
	}

	buf.WriteByte(' ')
	buf.WriteString(keyStyle.Render(key + "="))
	buf.WriteString(a.Value.String())
}

// prettyJSONHandler writes one indented, colorized JSON object per record.
type prettyJSONHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)
	buf.WriteString("{\n")

	first := true

	if !r.Time.IsZero() {
		a := h.replace(slog.Time(slog.TimeKey, r.Time))
		if !a.Equal(slog.Attr{}) {
			h.writeField(buf, &first, slog.TimeKey, a.Value.String())
		}
	}

	h.writeField(buf, &first, slog.LevelKey, Level(r.Level).String())

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeField(buf, &first, slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line))
		}
	}

	h.writeField(buf, &first, slog.MessageKey, r.Message)

	prefix := strings.Join(h.groups, ".")

	for _, a := range h.attrs {
		h.writeJSONAttr(buf, &first, prefix, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeJSONAttr(buf, &first, prefix, a)

		return true
	})

	buf.WriteString("\n}\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(
		h.attrs[:len(h.attrs):len(h.attrs)], attrs...,
	)

	return &clone
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(
		h.groups[:len(h.groups):len(h.groups)], name,
	)

	return &clone
}

// writeJSONAttr appends one attribute, flattening groups with a dotted
// key prefix.
func (h *prettyJSONHandler) writeJSONAttr(
	buf *bytes.Buffer,
	first *bool,
	prefix string,
	a slog.Attr,
) {
	a.Value = a.Value.Resolve()

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, member := range a.Value.Group() {
			h.writeJSONAttr(buf, first, key, member)
		}

		return
	}

	h.writeField(buf, first, key, a.Value.Any())
}

// writeField appends one indented `"key": value` line.
func (h *prettyJSONHandler) writeField(
	buf *bytes.Buffer,
	first *bool,
	key string,
	value any,
) {
	if !*first {
		buf.WriteString(",\n")
	}

	*first = false

	encoded, err := json.Marshal(value)
	if err != nil {
		encoded, _ = json.Marshal(fmt.Sprint(value))
	}

	quoted, _ := json.Marshal(key)

	buf.WriteString("  ")
	buf.WriteString(keyStyle.Render(string(quoted)))
	buf.WriteString(": ")
	buf.Write(encoded)
}

// replace applies the configured ReplaceAttr to a synthesized attribute.
func (h *prettyTextHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *prettyJSONHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}
