package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolveYAML is a [kong.ConfigurationLoader] that reads flag values from
// a YAML mapping.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolveYAML, "/path/to/config.yaml")
//
// Keys are flag names; hyphens and underscores are interchangeable, so
// both spellings work:
//
//	log-level: debug
//	out_dir: dist
//	target: [jsx, blade]
//	pass-through: [Icon, Badge]
//
// Command-line flags override config file values. An unreadable or
// malformed file resolves no values rather than failing the parse.
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return config{}, nil
	}

	var values map[string]any

	err = yaml.Unmarshal(text, &values)
	if err != nil {
		return config{}, nil
	}

	return config(values), nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys may use
	// underscores. Try both forms.
	if value, ok := r[flag.Name]; ok {
		return kongValue(value), nil
	}

	underscoreName := strings.ReplaceAll(flag.Name, "-", "_")
	if value, ok := r[underscoreName]; ok {
		return kongValue(value), nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// kongValue normalizes a decoded YAML value for kong, which parses
// numbers from their string form.
func kongValue(value any) any {
	switch v := value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)

	case uint64:
		return strconv.FormatUint(v, 10)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = kongValue(item)
		}

		return items

	case map[string]any, bool, string:
		return v

	default:
		return fmt.Sprint(v)
	}
}
