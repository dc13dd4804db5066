package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/recastml/recast/analyze"
	"github.com/recastml/recast/dialect"
	"github.com/recastml/recast/log"
)

// defaultOutputMode is the permission mode for compiled output files.
var defaultOutputMode os.FileMode = 0o644

// Compile translates source units into one or more target dialects.
type Compile struct {
	Source []string `arg:"" help:"Source file(s) or '-' for stdin" name:"source" optional:""`

	Target []string `default:"jsx" help:"Target dialect(s)"                 name:"target" short:"t"`
	OutDir string   `default:"."   help:"Output directory"                  short:"o"     type:"path"`
	Stdout bool     `              help:"Write output to stdout, not files"`
}

// Run executes the compile command. A failing unit does not abort the
// remaining units; all failures are joined into the returned error.
func (c *Compile) Run(ctx context.Context) error {
	reg := builtins()

	targets := make([]dialect.Renderer, 0, len(c.Target))

	for _, name := range c.Target {
		r, err := reg.Lookup(name)
		if err != nil {
			return err
		}

		targets = append(targets, r)
	}

	srcs := uniqueSources(c.Source)
	if len(srcs) == 0 {
		return ErrNoSources
	}

	tags := passThroughTagsFrom(ctx)

	var errs []error

	for _, src := range srcs {
		err := c.compileUnit(ctx, src, targets, tags)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// compileUnit reads, analyzes, and renders one source unit for every
// selected target.
func (c *Compile) compileUnit(
	ctx context.Context,
	src source,
	targets []dialect.Renderer,
	tags []string,
) error {
	defer src.read.Close()

	text, err := io.ReadAll(src.read)
	if err != nil {
		return ErrReadSource.
			With(slog.String("unit", src.Name)).
			Wrap(err)
	}

	unit, err := analyze.Parse(
		ctx,
		string(text),
		analyze.WithPassThroughTags(tags...),
	)
	if err != nil {
		return analyze.WrapError(err).
			With(slog.String("unit", src.Name))
	}

	var errs []error

	for _, r := range targets {
		res, err := dialect.Transform(ctx, unit, r)
		if err != nil {
			errs = append(errs, analyze.WrapError(err).
				With(slog.String("unit", src.Name)))

			continue
		}

		for _, w := range res.Warnings {
			log.WarnContext(ctx, "compilation warning",
				slog.String("unit", src.Name),
				slog.String("dialect", res.Target.Name),
				slog.Any("warning", w),
			)
		}

		err = c.emit(ctx, src.Name, res)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// emit writes one rendered result to its output file or to stdout.
func (c *Compile) emit(
	ctx context.Context,
	name string,
	res *dialect.Result,
) error {
	if c.Stdout {
		_, err := fmt.Fprintln(os.Stdout, res.Output)

		return err
	}

	path := filepath.Join(c.OutDir, name+res.Target.Extension)

	err := os.WriteFile(path, []byte(res.Output+"\n"), defaultOutputMode)
	if err != nil {
		return ErrWriteOutput.
			With(slog.String("file", path)).
			Wrap(err)
	}

	log.InfoContext(ctx, "wrote output",
		slog.String("file", path),
		slog.String("dialect", res.Target.Name),
		slog.Int("variables", len(res.Variables)),
		slog.Int("dependencies", len(res.Dependencies)),
	)

	return nil
}
