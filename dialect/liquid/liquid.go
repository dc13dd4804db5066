// Package liquid emits Liquid templates. Boolean operators rewrite to
// Liquid's keyword forms, filters spell with colon-prefixed arguments,
// and template inheritance degrades to marked placeholders.
package liquid

import (
	"strconv"
	"strings"

	"github.com/recastml/recast/dialect"
	"github.com/recastml/recast/ir"
)

// Dialect is the Liquid target.
type Dialect struct{}

// New constructs the Liquid target.
func New() *Dialect { return &Dialect{} }

func (*Dialect) Info() dialect.Info {
	return dialect.Info{Name: "liquid", Extension: ".liquid"}
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
	"currency":   "money",
	"date":       "date",
	"default":    "default",
	"escape":     "escape",
	"first":      "first",
	"join":       "join",
	"json":       "json",
	"last":       "last",
	"length":     "size",
	"lowercase":  "downcase",
	"number":     "number",
	"raw":        "(default output)",
	"reverse":    "reverse",
	"slice":      "slice",
	"sort":       "sort",
	"split":      "split",
	"trim":       "strip",
	"truncate":   "truncate",
	"uppercase":  "upcase",
}

func (*Dialect) Filters() dialect.FilterTable { return filters }

// cond rewrites a guard expression into Liquid's operator vocabulary.
func cond(expr string) string {
	expr = dialect.NormalizeEquality(expr)
	expr = strings.ReplaceAll(expr, "&&", "and")

	return strings.ReplaceAll(expr, "||", "or")
}

// ApplyFilter spells one filter in pipe form with colon-prefixed
// arguments. Names outside the table keep their verbatim spelling.
func (*Dialect) ApplyFilter(expr, name string, args []string) string {
	expr += " | " + nativeFilter(name)

	if len(args) > 0 {
		expr += ": " + strings.Join(args, ", ")
	}

	return expr
}

func (d *Dialect) RenderVariable(v ir.Variable) string {
	expr := v.Name

	if v.Filter != "" && v.Filter != "raw" {
		expr = d.ApplyFilter(expr, v.Filter, v.FilterArgs)
	}

	if v.Default != "" {
		expr += " | default: " + quote(v.Default)
	}

	// Liquid output is unescaped by default, so raw needs no spelling.
	return "{{ " + expr + " }}"
}

func nativeFilter(name string) string {
	if native, ok := filters[name]; ok && !strings.HasPrefix(native, "(") {
		return native
	}

	return name
}

func (*Dialect) RenderLoop(loop ir.Loop, body string) string {
	open := "{% for " + loop.Item + " in " + loop.Collection + " %}"

	// Liquid exposes position through forloop; a named index binds it.
	if loop.Index != "" {
		open += "\n{% assign " + loop.Index + " = forloop.index0 %}"
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
			out.WriteString("{% elsif " + cond(b.Cond) + " %}\n")

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

func (*Dialect) RenderSlot(s ir.Slot, fallback string) string {
	name := s.Name
	if name == "" {
		name = "default"
	}

	ref := "slots." + name

	if fallback == "" {
		return "{{ " + ref + " }}"
	}

	return "{% if " + ref + " %}{{ " + ref + " }}{% else %}" +
		fallback + "{% endif %}"
}

func (*Dialect) RenderInclude(inc ir.Include) string {
	var out strings.Builder

	out.WriteString("{% include '" + inc.Partial + "'")

	for _, p := range inc.Props {
		out.WriteString(", " + p.Key + ": ")

		if expr, dynamic := dialect.PropExpr(p.Val); dynamic {
			out.WriteString(expr)
		} else {
			out.WriteString(quote(p.Val))
		}
	}

	out.WriteString(" %}")

	return out.String()
}

func (d *Dialect) RenderBlock(b ir.Block, body string) string {
	return d.RenderComment(
		"recast: block \""+b.Name+"\" (no template inheritance in liquid)",
	) + "\n" + body
}

func (d *Dialect) RenderExtends(b ir.Block) string {
	return d.RenderComment(
		"recast: extends \"" + b.Extends +
			"\" (no template inheritance in liquid)",
	)
}

func (*Dialect) RenderComment(text string) string {
	return "{% comment %} " + text + " {% endcomment %}"
}

func (*Dialect) Validate(output string) dialect.Validation {
	return dialect.CheckOutput(output,
		dialect.Pair{Open: "{% for ", Close: "{% endfor %}"},
		dialect.Pair{Open: "{% if ", Close: "{% endif %}"},
		dialect.Pair{Open: "{% comment %}", Close: "{% endcomment %}"},
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
