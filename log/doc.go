// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options:
//
//	logger := log.Make(os.Stdout,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithCaller(true))
//	logger.Info("unit compiled", slog.String("dialect", "jsx"))
//
// Each level has a context-aware variant; the context-unaware form calls
// it with [DefaultContextProvider]. Messages below the configured level
// are discarded, and the zero-value Logger discards everything, so
// library code can carry an optional Logger without nil checks.
//
// A package-level default logger backs the top-level [Debug], [Info],
// [Warn], and [Error] functions; [Config] reconfigures it in place.
//
// Two output formats are supported, [FormatJSON] and [FormatText], each
// with an optional colorized pretty variant rendered through lipgloss.
package log
