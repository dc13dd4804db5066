// Package blade emits Laravel Blade templates. Expression text is
// rewritten into PHP spelling: variable roots gain a dollar sigil and
// member access uses arrows. Blade has native inheritance and partials.
package blade

import (
	"strconv"
	"strings"

	"github.com/recastml/recast/analyze"
	"github.com/recastml/recast/dialect"
	"github.com/recastml/recast/ir"
)

// Dialect is the Blade target.
type Dialect struct{}

// New constructs the Blade target.
func New() *Dialect { return &Dialect{} }

func (*Dialect) Info() dialect.Info {
	return dialect.Info{Name: "blade", Extension: ".blade.php"}
}

func (*Dialect) Features() dialect.Features {
	return dialect.Features{
		Inheritance: true,
		Partials:    true,
		Filters:     true,
		RawOutput:   true,
		Comments:    true,
	}
}

var filters = dialect.FilterTable{
	"capitalize": "Str::ucfirst",
	"currency":   "number_format",
	"date":       "date",
	"default":    "??",
	"escape":     "e",
	"first":      "Arr::first",
	"join":       "implode",
	"json":       "json_encode",
	"last":       "Arr::last",
	"length":     "count",
	"lowercase":  "Str::lower",
	"number":     "number_format",
	"raw":        "{!! !!}",
	"reverse":    "array_reverse",
	"slice":      "array_slice",
	"sort":       "collect()->sort()",
	"split":      "explode",
	"trim":       "trim",
	"truncate":   "Str::limit",
	"uppercase":  "Str::upper",
}

func (*Dialect) Filters() dialect.FilterTable { return filters }

// phpKeywords are bare words left untouched by expression rewriting.
var phpKeywords = map[string]struct{}{
	"true": {}, "false": {}, "null": {},
	"and": {}, "or": {}, "not": {},
}

// phpPath spells a dotted member path as a PHP variable reference.
func phpPath(path string) string {
	if strings.HasPrefix(path, "$") {
		return path
	}

	parts := strings.Split(path, ".")

	if _, kw := phpKeywords[parts[0]]; kw {
		return path
	}

	return "$" + strings.Join(parts, "->")
}

// phpExpr rewrites every member path in an expression into PHP
// spelling, leaving string literals, numbers, keywords, and call targets
// alone.
func phpExpr(expr string) string {
	var out strings.Builder

	for i := 0; i < len(expr); {
		c := expr[i]

		if c == '\'' || c == '"' {
			j := i + 1
			for j < len(expr) && expr[j] != c {
				j++
			}

			if j < len(expr) {
				j++
			}

			out.WriteString(expr[i:j])
			i = j

			continue
		}

		if isIdentStart(c) {
			j := i
			for j < len(expr) && isPathByte(expr[j]) {
				j++
			}

			path := expr[i:j]

			switch {
			case j < len(expr) && expr[j] == '(':
				// Call target, not a variable.
				out.WriteString(path)

			case analyzeGlobal(path):
				out.WriteString(path)

			default:
				out.WriteString(phpPath(path))
			}

			i = j

			continue
		}

		out.WriteByte(c)
		i++
	}

	return out.String()
}

func analyzeGlobal(path string) bool {
	root, _, _ := strings.Cut(path, ".")

	if _, kw := phpKeywords[root]; kw {
		return true
	}

	for _, g := range analyze.KnownGlobals {
		if root == g {
			return true
		}
	}

	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isPathByte(c byte) bool {
	return isIdentStart(c) || c == '.' || (c >= '0' && c <= '9')
}

// ApplyFilter spells one canonical filter as a PHP call over expr.
// Names outside the canonical set spell as a verbatim call.
func (*Dialect) ApplyFilter(expr, name string, args []string) string {
	arg := func(n int, fallback string) string {
		if n < len(args) {
			return args[n]
		}

		return fallback
	}

	switch name {
	case "uppercase":
		return "Str::upper(" + expr + ")"

	case "lowercase":
		return "Str::lower(" + expr + ")"

	case "capitalize":
		return "Str::ucfirst(" + expr + ")"

	case "trim":
		return "trim(" + expr + ")"

	case "length":
		return "count(" + expr + ")"

	case "first":
		return "Arr::first(" + expr + ")"

	case "last":
		return "Arr::last(" + expr + ")"

	case "json":
		return "json_encode(" + expr + ")"

	case "join":
		return "implode(" + arg(0, "', '") + ", " + expr + ")"

	case "split":
		return "explode(" + arg(0, "' '") + ", " + expr + ")"

	case "reverse":
		return "array_reverse(" + expr + ")"

	case "sort":
		return "collect(" + expr + ")->sort()->values()"

	case "slice":
		return "array_slice(" + expr + ", " + strings.Join(args, ", ") + ")"

	case "truncate":
		return "Str::limit(" + expr + ", " + arg(0, "100") + ")"

	case "number":
		return "number_format(" + expr + ")"

	case "currency":
		return "number_format(" + expr + ", 2)"

	case "date":
		return "date(" + arg(0, "'Y-m-d'") + ", strtotime(" + expr + "))"

	case "escape":
		return "e(" + expr + ")"

	case "default", "raw":
		// default spells through the coalescing operator at the
		// variable level; raw through the unescaped echo delimiters.
		return expr
	}

	if len(args) > 0 {
		return name + "(" + expr + ", " + strings.Join(args, ", ") + ")"
	}

	return name + "(" + expr + ")"
}

func (d *Dialect) RenderVariable(v ir.Variable) string {
	expr := phpPath(v.Name)

	if v.Filter != "" && v.Filter != "raw" && v.Filter != "default" {
		expr = d.ApplyFilter(expr, v.Filter, v.FilterArgs)
	}

	def := v.Default
	if def == "" && v.Filter == "default" && len(v.FilterArgs) > 0 {
		def = v.FilterArgs[0]
	}

	if def != "" {
		expr += " ?? " + quote(def)
	}

	if v.Raw || v.Filter == "raw" {
		return "{!! " + expr + " !!}"
	}

	return "{{ " + expr + " }}"
}

func (*Dialect) RenderLoop(loop ir.Loop, body string) string {
	open := "@foreach (" + phpPath(loop.Collection) + " as "

	if loop.Index != "" {
		open += "$" + loop.Index + " => "
	}

	open += "$" + loop.Item + ")"

	return open + "\n" + body + "\n@endforeach"
}

func (*Dialect) RenderCondition(chain []dialect.Branch) string {
	if len(chain) == 0 {
		return ""
	}

	var out strings.Builder

	for i, b := range chain {
		switch b.Kind {
		case ir.BranchIf:
			out.WriteString("@if (" + phpExpr(b.Cond) + ")\n")

		case ir.BranchElseIf:
			out.WriteString("@elseif (" + phpExpr(b.Cond) + ")\n")

		case ir.BranchElse:
			out.WriteString("@else\n")
		}

		out.WriteString(b.Body)

		if i < len(chain)-1 {
			out.WriteByte('\n')
		}
	}

	out.WriteString("\n@endif")

	return out.String()
}

func (*Dialect) RenderSlot(s ir.Slot, fallback string) string {
	name := "slot"
	if s.Name != "" && s.Name != "default" {
		name = s.Name
	}

	if fallback == "" {
		return "{{ $" + name + " }}"
	}

	return "@isset($" + name + ")\n{{ $" + name + " }}\n@else\n" +
		fallback + "\n@endisset"
}

func (*Dialect) RenderInclude(inc ir.Include) string {
	out := "@include('" + inc.Partial + "'"

	if len(inc.Props) > 0 {
		pairs := make([]string, 0, len(inc.Props))

		for _, p := range inc.Props {
			val := quote(p.Val)
			if expr, dynamic := dialect.PropExpr(p.Val); dynamic {
				val = phpExpr(expr)
			}

			pairs = append(pairs, "'"+p.Key+"' => "+val)
		}

		out += ", [" + strings.Join(pairs, ", ") + "]"
	}

	return out + ")"
}

func (*Dialect) RenderBlock(b ir.Block, body string) string {
	return "@section('" + b.Name + "')\n" + body + "\n@endsection"
}

func (*Dialect) RenderExtends(b ir.Block) string {
	return "@extends('" + b.Extends + "')"
}

func (*Dialect) RenderComment(text string) string {
	return "{{-- " + text + " --}}"
}

func (*Dialect) Validate(output string) dialect.Validation {
	return dialect.CheckOutput(output,
		dialect.Pair{Open: "@foreach", Close: "@endforeach"},
		dialect.Pair{Open: "@if (", Close: "@endif"},
		dialect.Pair{Open: "@section", Close: "@endsection"},
		dialect.Pair{Open: "@isset", Close: "@endisset"},
		dialect.Pair{Open: "{!!", Close: "!!}"},
		dialect.Pair{Open: "{{--", Close: "--}}"},
	)
}

func quote(s string) string {
	if s == "" {
		return "''"
	}

	if s[0] == '"' || s[0] == '\'' {
		return s
	}

	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s
	}

	return "'" + s + "'"
}
