package cmd

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/recastml/recast/log"
	"github.com/recastml/recast/profile"
)

// defaultConfigMode is the permission mode for the generated config file.
var defaultConfigMode os.FileMode = 0o600

// Init generates a default YAML configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	_, err := os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	out, err := yaml.Marshal(i.flagValues(ktx))
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	err = os.WriteFile(confPath, out, defaultConfigMode)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// flagValues collects current flag values in declaration order, skipping
// hidden flags and flags that make no sense in a config file.
func (i *Init) flagValues(ktx *kong.Context) yaml.MapSlice {
	prefixIgnore := []string{"help", "force", "version", profile.Tag}

	var items yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		skip := flag.Hidden || slices.ContainsFunc(
			prefixIgnore,
			func(s string) bool {
				return strings.HasPrefix(flag.Name, s)
			},
		)
		if skip {
			continue
		}

		val := ktx.FlagValue(flag)
		if val == nil {
			continue
		}

		if s, ok := val.(string); ok && s == "" {
			continue
		}

		items = append(items, yaml.MapItem{Key: flag.Name, Value: val})
	}

	return items
}
