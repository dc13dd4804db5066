// Package cli contains the command line interface for recast.
//
// # Usage
//
// The default command compiles source units into one or more target
// dialects:
//
//	recast card.html --target jsx --target blade --out-dir dist
//
// Additional subcommands:
//
//   - inspect: report a unit's free variables, include dependencies, and
//     analysis warnings as YAML
//   - dialects: list compiled-in target dialects and their capabilities
//   - init: write a config file seeded from the current flag values
//   - play: interactive multi-dialect preview
//
// # Configuration
//
// Flags may be set persistently in a YAML config file (see [resolveYAML]
// for the format and lookup rules). Command-line flags always override
// config values. The pass-through tag list additionally merges the
// RECAST_PASS_THROUGH environment variable.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/recast/pprof)
package cli
