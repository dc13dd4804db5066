package cmd

import "github.com/recastml/recast/analyze"

// Sentinel errors for the CLI commands. Each carries structured slog
// attributes when wrapped at the failure site.
var (
	ErrNoSources   = analyze.NewError("no source files given")
	ErrReadSource  = analyze.NewError("read source file")
	ErrWriteOutput = analyze.NewError("write output file")
	ErrYAMLMarshal = analyze.NewError("marshal YAML")
	ErrWriteConfig = analyze.NewError("write configuration file")
	ErrFileExists  = analyze.NewError("file exists (use --force to overwrite)")
)
