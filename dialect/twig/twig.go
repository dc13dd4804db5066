// Package twig emits Twig templates. Twig is the only target besides
// Blade with native template inheritance, so Extends and DefineBlock
// spell directly instead of degrading.
package twig

import (
	"strconv"
	"strings"

	"github.com/recastml/recast/dialect"
	"github.com/recastml/recast/ir"
)

// Dialect is the Twig target.
type Dialect struct{}

// New constructs the Twig target.
func New() *Dialect { return &Dialect{} }

func (*Dialect) Info() dialect.Info {
	return dialect.Info{Name: "twig", Extension: ".twig"}
}

func (*Dialect) Features() dialect.Features {
	return dialect.Features{
		Inheritance: true,
		Partials:    true,
		Filters:     true,
		Macros:      true,
		RawOutput:   true,
		Comments:    true,
	}
}

var filters = dialect.FilterTable{
	"capitalize": "capitalize",
	"currency":   "format_currency",
	"date":       "date",
	"default":    "default",
	"escape":     "e",
	"first":      "first",
	"join":       "join",
	"json":       "json_encode",
	"last":       "last",
	"length":     "length",
	"lowercase":  "lower",
	"number":     "number_format",
	"raw":        "raw",
	"reverse":    "reverse",
	"slice":      "slice",
	"sort":       "sort",
	"split":      "split",
	"trim":       "trim",
	"truncate":   "slice",
	"uppercase":  "upper",
}

func (*Dialect) Filters() dialect.FilterTable { return filters }

func cond(expr string) string {
	expr = dialect.NormalizeEquality(expr)
	expr = strings.ReplaceAll(expr, "&&", "and")

	return strings.ReplaceAll(expr, "||", "or")
}

// ApplyFilter spells one filter in pipe form with call-style arguments.
// Names outside the table keep their verbatim spelling.
func (*Dialect) ApplyFilter(expr, name string, args []string) string {
	expr += "|" + nativeFilter(name)

	if len(args) > 0 {
		expr += "(" + strings.Join(args, ", ") + ")"
	}

	return expr
}

func (d *Dialect) RenderVariable(v ir.Variable) string {
	expr := v.Name

	if v.Filter != "" && v.Filter != "raw" {
		expr = d.ApplyFilter(expr, v.Filter, v.FilterArgs)
	}

	if v.Default != "" {
		expr += "|default(" + quote(v.Default) + ")"
	}

	if v.Raw || v.Filter == "raw" {
		expr += "|raw"
	}

	return "{{ " + expr + " }}"
}

func nativeFilter(name string) string {
	if native, ok := filters[name]; ok {
		return native
	}

	return name
}

func (*Dialect) RenderLoop(loop ir.Loop, body string) string {
	open := "{% for " + loop.Item + " in " + loop.Collection + " %}"

	if loop.Index != "" {
		open += "\n{% set " + loop.Index + " = loop.index0 %}"
	}

	return open + "\n" + body + "\n{% endfor %}"
}

func (*Dialect) RenderCondition(chain []dialect.Branch) string {
	if len(chain) == 0 {
		return ""
	}

	var out strings.Builder

	for i, b := range chain {
		switch b.Kind {
		case ir.BranchIf:
			out.WriteString("{% if " + cond(b.Cond) + " %}\n")

		case ir.BranchElseIf:
			out.WriteString("{% elseif " + cond(b.Cond) + " %}\n")

		case ir.BranchElse:
			out.WriteString("{% else %}\n")
		}

		out.WriteString(b.Body)

		if i < len(chain)-1 {
			out.WriteByte('\n')
		}
	}

	out.WriteString("\n{% endif %}")

	return out.String()
}

// RenderSlot spells a slot as a block, Twig's native slot-with-fallback
// construct.
func (*Dialect) RenderSlot(s ir.Slot, fallback string) string {
	name := s.Name
	if name == "" {
		name = "default"
	}

	return "{% block " + name + " %}" + fallback + "{% endblock %}"
}

func (*Dialect) RenderInclude(inc ir.Include) string {
	out := "{% include '" + inc.Partial + "'"

	if len(inc.Props) > 0 {
		pairs := make([]string, 0, len(inc.Props))

		for _, p := range inc.Props {
			val := quote(p.Val)
			if expr, dynamic := dialect.PropExpr(p.Val); dynamic {
				val = expr
			}

			pairs = append(pairs, p.Key+": "+val)
		}

		out += " with { " + strings.Join(pairs, ", ") + " }"
	}

	return out + " %}"
}

func (*Dialect) RenderBlock(b ir.Block, body string) string {
	return "{% block " + b.Name + " %}\n" + body + "\n{% endblock %}"
}

func (*Dialect) RenderExtends(b ir.Block) string {
	return "{% extends '" + b.Extends + "' %}"
}

func (*Dialect) RenderComment(text string) string {
	return "{# " + text + " #}"
}

func (*Dialect) Validate(output string) dialect.Validation {
	return dialect.CheckOutput(output,
		dialect.Pair{Open: "{% for ", Close: "{% endfor %}"},
		dialect.Pair{Open: "{% if ", Close: "{% endif %}"},
		dialect.Pair{Open: "{% block ", Close: "{% endblock %}"},
		dialect.Pair{Open: "{#", Close: "#}"},
		dialect.Pair{Open: "{%", Close: "%}"},
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
