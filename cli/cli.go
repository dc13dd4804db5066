package cli

import (
	"context"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ardnew/mung"

	"github.com/recastml/recast/cli/cmd"
	"github.com/recastml/recast/pkg"
)

// passThroughEnv names the environment variable holding a comma-delimited
// pass-through tag list merged ahead of the flag values.
const passThroughEnv = "RECAST_PASS_THROUGH"

// CLI is the top-level command-line interface for recast.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	PassThrough []string         `help:"Component tag(s) treated as opaque markup, not DSL" name:"pass-through" placeholder:"TAG" short:"P"`
	Version     kong.VersionFlag `help:"Print version and exit"                             short:"v"`

	Inspect  cmd.Inspect  `cmd:"" help:"Report unit variables, dependencies, and warnings"`
	Dialects cmd.Dialects `cmd:"" help:"List compiled-in target dialects"`
	Init     cmd.Init     `cmd:"" help:"Initialize configuration file"`
	Play     cmd.Play     `cmd:"" help:"Interactive multi-dialect preview"`

	Compile cmd.Compile `cmd:"" default:"withargs" help:"Compile source units into target dialects"`
}

// Run executes the recast CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"version":            strings.TrimSpace(pkg.Version),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolveYAML, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithPassThroughTags(ctx, passThroughTags(cli.PassThrough))

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}

// passThroughTags merges the environment and flag tag lists into one
// deduplicated, comma-delimited set. Environment entries sort first so
// an inventory collaborator can seed the list for every invocation.
func passThroughTags(flags []string) []string {
	merged := mung.Make(
		mung.WithSubjectItems(strings.Join(flags, ",")),
		mung.WithDelim(","),
		mung.WithPrefixItems(os.Getenv(passThroughEnv)),
		mung.WithFilter(func(tag string) bool {
			return strings.TrimSpace(tag) != ""
		}),
	).String()

	if merged == "" {
		return nil
	}

	return strings.Split(merged, ",")
}
