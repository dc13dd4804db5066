package dialect

import (
	"log/slog"
	"slices"
	"strings"
)

// Registry holds the constructed target dialects, looked up by name. It
// is built once by the caller and read-only afterwards.
type Registry struct {
	names  []string
	byName map[string]Renderer
}

// NewRegistry constructs a registry over the given targets. Later
// duplicates of a name are ignored.
func NewRegistry(targets ...Renderer) *Registry {
	r := &Registry{byName: make(map[string]Renderer, len(targets))}

	for _, t := range targets {
		name := strings.ToLower(t.Info().Name)
		if _, dup := r.byName[name]; dup {
			continue
		}

		r.names = append(r.names, name)
		r.byName[name] = t
	}

	return r
}

// Names returns the registered dialect names in registration order.
func (r *Registry) Names() []string { return slices.Clone(r.names) }

// All returns the registered renderers in registration order.
func (r *Registry) All() []Renderer {
	out := make([]Renderer, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.byName[name])
	}

	return out
}

// Lookup resolves a dialect by name, case-insensitively. An unknown name
// fails with the closest registered name attached for diagnostics.
func (r *Registry) Lookup(name string) (Renderer, error) {
	if t, ok := r.byName[strings.ToLower(name)]; ok {
		return t, nil
	}

	err := ErrUnknownDialect.With(slog.String("name", name))

	if s := Suggest(strings.ToLower(name), r.names); s != "" {
		err = err.With(slog.String("closest", s))
	}

	return nil, err
}
