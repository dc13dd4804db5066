package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/recastml/recast/dialect"
)

// Dialects lists every compiled-in target dialect and its capabilities.
type Dialects struct{}

// Run executes the dialects command.
func (d *Dialects) Run(context.Context) error {
	for _, r := range builtins().All() {
		info := r.Info()

		_, err := fmt.Fprintf(os.Stdout, "%-12s %-12s %s\n",
			info.Name, info.Extension, featureList(r.Features()))
		if err != nil {
			return err
		}
	}

	return nil
}

// featureList spells the supported feature set as a comma-joined list.
func featureList(f dialect.Features) string {
	var names []string

	if f.Inheritance {
		names = append(names, "inheritance")
	}

	if f.Partials {
		names = append(names, "partials")
	}

	if f.Filters {
		names = append(names, "filters")
	}

	if f.Macros {
		names = append(names, "macros")
	}

	if f.AsyncOutput {
		names = append(names, "async")
	}

	if f.RawOutput {
		names = append(names, "raw")
	}

	if f.Comments {
		names = append(names, "comments")
	}

	if len(names) == 0 {
		return "-"
	}

	return strings.Join(names, ",")
}
