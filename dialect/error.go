package dialect

import "github.com/recastml/recast/analyze"

// Predefined errors (sentinel values). The analyzer's error type carries
// structured logging attributes, so it is shared here rather than
// redefined.
var (
	ErrUnknownDialect = analyze.NewError("unknown dialect")
	ErrMissingUnit    = analyze.NewError("no analyzed unit")
	ErrInvalidOutput  = analyze.NewError("generated output failed validation")
)
