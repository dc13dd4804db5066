package dialect

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

// FilterTable is one target's filter vocabulary: canonical name to
// target-native spelling. Membership is what the driver checks; the
// spelling is informational (inspect output, diagnostics).
type FilterTable map[string]string

// Known reports whether the table accepts the canonical filter name.
func (t FilterTable) Known(name string) bool {
	_, ok := t[name]

	return ok
}

// Names returns the canonical filter names, sorted.
func (t FilterTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// StandardFilters is the canonical filter vocabulary shared across
// targets. A dialect may accept a subset.
var StandardFilters = []string{
	"capitalize",
	"currency",
	"date",
	"default",
	"escape",
	"first",
	"join",
	"json",
	"last",
	"length",
	"lowercase",
	"number",
	"raw",
	"reverse",
	"slice",
	"sort",
	"split",
	"trim",
	"truncate",
	"uppercase",
}

// Suggest fuzzy-matches name against candidates and returns the best
// match, or empty when nothing is close.
func Suggest(name string, candidates []string) string {
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		return ""
	}

	return matches[0].Str
}
