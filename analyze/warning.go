package analyze

//go:generate go tool stringer --linecomment --type WarningCode --output warning_string.go

import "log/slog"

// WarningCode identifies a class of recoverable analysis issue.
type WarningCode int

const (
	// WarnMissingAttr reports a DSL tag missing a required attribute.
	// A safe default element is substituted.
	WarnMissingAttr WarningCode = iota // missing-attribute
	// WarnDanglingBranch reports an ElseIf or Else with no preceding If
	// (or ElseIf) sibling.
	WarnDanglingBranch // dangling-branch
	// WarnExtraFilters reports an interpolation carrying more than one
	// pipe filter; only the first is applied.
	WarnExtraFilters // extra-filters
	// WarnUnknownFilter reports a filter name outside the standard set.
	// Dialects fall back to a verbatim native call.
	WarnUnknownFilter // unknown-filter
	// WarnSplitInterpolation reports an interpolation whose closing
	// delimiter was not found within its text node.
	WarnSplitInterpolation // split-interpolation
	// WarnUnsupportedFeature reports a source construct the selected
	// target dialect cannot express. A visibly marked placeholder is
	// emitted in its place.
	WarnUnsupportedFeature // unsupported-feature
)

// Warning is a recoverable analysis issue. Warnings never abort a unit:
// a safe substitute keeps the rest of the source compiling.
type Warning struct {
	Code    WarningCode
	Message string
	// Detail names the offending tag, attribute, filter, or expression.
	Detail string
}

// LogValue implements slog.LogValuer.
func (w Warning) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("code", w.Code.String()),
		slog.String("message", w.Message),
	}

	if w.Detail != "" {
		attrs = append(attrs, slog.String("detail", w.Detail))
	}

	return slog.GroupValue(attrs...)
}

// warn appends a warning to the collector. A nil collector discards.
type warnings struct {
	list []Warning
}

func (w *warnings) add(code WarningCode, message, detail string) {
	if w == nil {
		return
	}

	w.list = append(w.list, Warning{
		Code:    code,
		Message: message,
		Detail:  detail,
	})
}
