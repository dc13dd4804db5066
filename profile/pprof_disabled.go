//go:build !pprof

package profile

// Modes returns no profiling modes when built without the pprof tag.
func Modes() []string { return nil }

// start is a no-op without the pprof tag, so Config.Start always
// degrades to the ignore implementation.
func start(string, string, bool) interface{ Stop() } { return ignore{} }
