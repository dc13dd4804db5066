package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/recastml/recast/analyze"
	"github.com/recastml/recast/ir"
)

// Inspect reports the free variables, include dependencies, and analysis
// warnings of source units as YAML, without rendering any target.
type Inspect struct {
	Source []string `arg:"" help:"Source file(s) or '-' for stdin" name:"source" optional:""`
}

// report is the per-unit YAML document emitted by inspect.
type report struct {
	Unit         string          `yaml:"unit"`
	Nodes        int             `yaml:"nodes"`
	Variables    []string        `yaml:"variables,omitempty"`
	Dependencies []string        `yaml:"dependencies,omitempty"`
	Warnings     []reportWarning `yaml:"warnings,omitempty"`
}

type reportWarning struct {
	Code    string `yaml:"code"`
	Message string `yaml:"message"`
	Detail  string `yaml:"detail,omitempty"`
}

// Run executes the inspect command.
func (i *Inspect) Run(ctx context.Context) error {
	srcs := uniqueSources(i.Source)
	if len(srcs) == 0 {
		return ErrNoSources
	}

	tags := passThroughTagsFrom(ctx)

	reports := make([]report, 0, len(srcs))

	for _, src := range srcs {
		rep, err := inspectUnit(ctx, src, tags)
		if err != nil {
			return err
		}

		reports = append(reports, rep)
	}

	out, err := yaml.Marshal(reports)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	_, err = os.Stdout.Write(out)

	return err
}

// inspectUnit analyzes one source unit and summarizes it.
func inspectUnit(
	ctx context.Context,
	src source,
	tags []string,
) (report, error) {
	defer src.read.Close()

	text, err := io.ReadAll(src.read)
	if err != nil {
		return report{}, ErrReadSource.
			With(slog.String("unit", src.Name)).
			Wrap(err)
	}

	unit, err := analyze.Parse(
		ctx,
		string(text),
		analyze.WithPassThroughTags(tags...),
	)
	if err != nil {
		return report{}, analyze.WrapError(err).
			With(slog.String("unit", src.Name))
	}

	rep := report{
		Unit:  src.Name,
		Nodes: ir.CountNodes(unit.Tree),
		Variables: ir.CollectVariables(
			unit.Tree, analyze.KnownGlobals...,
		),
		Dependencies: ir.CollectDependencies(unit.Tree),
	}

	for _, w := range unit.Warnings {
		rep.Warnings = append(rep.Warnings, reportWarning{
			Code:    w.Code.String(),
			Message: w.Message,
			Detail:  w.Detail,
		})
	}

	return rep, nil
}
