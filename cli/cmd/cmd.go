package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/recastml/recast/dialect"
	"github.com/recastml/recast/dialect/blade"
	"github.com/recastml/recast/dialect/handlebars"
	"github.com/recastml/recast/dialect/jsx"
	"github.com/recastml/recast/dialect/liquid"
	"github.com/recastml/recast/dialect/twig"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type passThroughKey struct{}

// WithPassThroughTags returns a new context.Context carrying the merged
// pass-through tag list. These tags are opaque markup for the analyzer,
// never DSL.
func WithPassThroughTags(
	ctx context.Context,
	tags []string,
) context.Context {
	return context.WithValue(ctx, passThroughKey{}, tags)
}

func passThroughTagsFrom(ctx context.Context) []string {
	tags, _ := ctx.Value(passThroughKey{}).([]string)

	return tags
}

// builtins constructs the registry of every compiled-in target dialect.
// Registry construction is cheap and the result is read-only, so each
// command builds its own.
func builtins() *dialect.Registry {
	return dialect.NewRegistry(
		jsx.New(),
		handlebars.New(),
		liquid.New(),
		twig.New(),
		blade.New(),
	)
}

// source is one deduplicated compilation unit input.
type source struct {
	// Name is the base name of the unit without its extension, used to
	// derive output file names. Stdin units are named "stdin".
	Name string

	read io.ReadCloser
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// uniqueSources opens the given source paths, deduplicating by resolved
// device/inode pair. All occurrences of "-" collapse to a single stdin
// reader placed last so it reads after all regular files. Paths that
// cannot be opened are skipped.
func uniqueSources(paths []string) []source {
	if len(paths) == 0 {
		return nil
	}

	srcs := make([]source, 0, len(paths))
	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	hasStdin := false

	for _, path := range paths {
		if path == stdinSource {
			hasStdin = true

			continue
		}

		read, key, ok := openUniqueFile(path, seen)
		if !ok {
			continue
		}

		// A named file may also be the stdin device.
		if key == stdinKey {
			hasStdin = true

			_ = read.Close()

			continue
		}

		srcs = append(srcs, source{Name: unitName(path), read: read})
	}

	if hasStdin {
		srcs = append(srcs, source{
			Name: "stdin",
			read: io.NopCloser(os.Stdin),
		})
	}

	return srcs
}

// unitName derives a compilation unit name from a source path by
// stripping the directory and extension.
func unitName(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
func openUniqueFile(
	path string,
	seen map[fileKey]struct{},
) (io.ReadCloser, fileKey, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fileKey{}, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, fileKey{}, false
	}

	if _, exists := seen[key]; exists {
		return nil, fileKey{}, false
	}

	seen[key] = struct{}{}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, fileKey{}, false
	}

	return file, key, true
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: stat.Dev, ino: stat.Ino}, true
}
