package dialect

import (
	"fmt"
	"strings"
)

// Pair is an open/close delimiter pair a renderer expects to stay
// balanced in its own output.
type Pair struct {
	Open  string
	Close string
}

// CheckOutput builds a Validation by counting each delimiter pair and
// scanning for internal artifacts. It is pure, so renderers can satisfy
// the idempotent-validation requirement by delegating to it.
func CheckOutput(output string, pairs ...Pair) Validation {
	var errs []string

	for _, p := range pairs {
		open := strings.Count(output, p.Open)
		close := strings.Count(output, p.Close)

		if open != close {
			errs = append(errs, fmt.Sprintf(
				"unbalanced %s ... %s: %d open, %d close",
				p.Open, p.Close, open, close,
			))
		}
	}

	// Analyzer placeholder runes must never survive into output.
	if strings.ContainsRune(output, '') ||
		strings.ContainsRune(output, '') {
		errs = append(errs, "unexpanded interpolation placeholder")
	}

	return Validation{Valid: len(errs) == 0, Errors: errs}
}
