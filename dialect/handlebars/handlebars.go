// Package handlebars emits Handlebars templates. Filters spell as
// helper calls, so output assumes a runtime registering helpers for the
// canonical filter names. Template inheritance has no Handlebars
// equivalent and degrades to marked placeholders.
package handlebars

import (
	"strconv"
	"strings"

	"github.com/recastml/recast/dialect"
	"github.com/recastml/recast/ir"
)

// Dialect is the Handlebars target.
type Dialect struct{}

// New constructs the Handlebars target.
func New() *Dialect { return &Dialect{} }

func (*Dialect) Info() dialect.Info {
	return dialect.Info{Name: "handlebars", Extension: ".hbs"}
}

func (*Dialect) Features() dialect.Features {
	return dialect.Features{
		Partials:  true,
		Filters:   true,
		RawOutput: true,
		Comments:  true,
	}
}

var filters = dialect.FilterTable{
	"capitalize": "capitalize",
	"currency":   "currency",
	"date":       "date",
	"default":    "default",
	"escape":     "escape",
	"first":      "first",
	"join":       "join",
	"json":       "json",
	"last":       "last",
	"length":     "length",
	"lowercase":  "lowercase",
	"number":     "number",
	"raw":        "(triple-stache)",
	"reverse":    "reverse",
	"slice":      "slice",
	"sort":       "sort",
	"split":      "split",
	"trim":       "trim",
	"truncate":   "truncate",
	"uppercase":  "uppercase",
}

func (*Dialect) Filters() dialect.FilterTable { return filters }

// ApplyFilter spells one filter as a helper call over expr. Names
// outside the table pass through as a verbatim helper name.
func (*Dialect) ApplyFilter(expr, name string, args []string) string {
	call := name + " " + expr

	for _, a := range args {
		call += " " + a
	}

	return call
}

func (d *Dialect) RenderVariable(v ir.Variable) string {
	expr := v.Name

	if v.Default != "" {
		expr = "default " + expr + " " + quote(v.Default)

		if v.Filter != "" && v.Filter != "raw" {
			expr = "(" + expr + ")"
		}
	}

	if v.Filter != "" && v.Filter != "raw" {
		expr = d.ApplyFilter(expr, v.Filter, v.FilterArgs)
	}

	if v.Raw || v.Filter == "raw" {
		return "{{{" + expr + "}}}"
	}

	return "{{" + expr + "}}"
}

func (*Dialect) RenderLoop(loop ir.Loop, body string) string {
	open := "{{#each " + loop.Collection

	// Default scope needs no block params; a renamed item or a
	// positional index does.
	if loop.Item != "item" || loop.Index != "" {
		open += " as |" + loop.Item

		if loop.Index != "" {
			open += " " + loop.Index
		}

		open += "|"
	}

	return open + "}}\n" + body + "\n{{/each}}"
}

func (*Dialect) RenderCondition(chain []dialect.Branch) string {
	if len(chain) == 0 {
		return ""
	}

	var out strings.Builder

	for i, b := range chain {
		switch b.Kind {
		case ir.BranchIf:
			out.WriteString(
				"{{#if " + dialect.NormalizeEquality(b.Cond) + "}}\n",
			)

		case ir.BranchElseIf:
			out.WriteString(
				"{{else if " + dialect.NormalizeEquality(b.Cond) + "}}\n",
			)

		case ir.BranchElse:
			out.WriteString("{{else}}\n")
		}

		out.WriteString(b.Body)

		if i < len(chain)-1 {
			out.WriteByte('\n')
		}
	}

	out.WriteString("\n{{/if}}")

	return out.String()
}

func (*Dialect) RenderSlot(s ir.Slot, fallback string) string {
	if fallback == "" && (s.Name == "" || s.Name == "default") {
		return "{{> @partial-block}}"
	}

	name := s.Name
	if name == "" {
		name = "default"
	}

	if fallback == "" {
		return "{{{slots." + name + "}}}"
	}

	return "{{#if slots." + name + "}}{{{slots." + name +
		"}}}{{else}}" + fallback + "{{/if}}"
}

func (*Dialect) RenderInclude(inc ir.Include) string {
	var out strings.Builder

	out.WriteString("{{> ")
	out.WriteString(inc.Partial)

	for _, p := range inc.Props {
		out.WriteByte(' ')
		out.WriteString(p.Key)
		out.WriteByte('=')

		if expr, dynamic := dialect.PropExpr(p.Val); dynamic {
			out.WriteString(expr)
		} else {
			out.WriteString(quote(p.Val))
		}
	}

	out.WriteString("}}")

	return out.String()
}

func (d *Dialect) RenderBlock(b ir.Block, body string) string {
	return d.RenderComment(
		"recast: block \""+b.Name+
			"\" (no template inheritance in handlebars)",
	) + "\n" + body
}

func (d *Dialect) RenderExtends(b ir.Block) string {
	return d.RenderComment(
		"recast: extends \"" + b.Extends +
			"\" (no template inheritance in handlebars)",
	)
}

func (*Dialect) RenderComment(text string) string {
	return "{{!-- " + text + " --}}"
}

func (*Dialect) Validate(output string) dialect.Validation {
	return dialect.CheckOutput(output,
		dialect.Pair{Open: "{{#each", Close: "{{/each}}"},
		dialect.Pair{Open: "{{#if", Close: "{{/if}}"},
		dialect.Pair{Open: "{{!--", Close: "--}}"},
	)
}

func quote(s string) string {
	if s == "" {
		return `""`
	}

	if s[0] == '"' || s[0] == '\'' {
		return s
	}

	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s
	}

	return strconv.Quote(s)
}
