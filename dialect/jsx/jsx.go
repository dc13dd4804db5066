// Package jsx emits React-flavored JSX.
//
// The branching strategy follows the chain shape: a plain If/Else spells
// as a logical gate or ternary, while any ElseIf forces a self-invoking
// block whose arms return early. Loop keys resolve to the key expression
// carried on the annotation, falling back to the positional index.
package jsx

import (
	"strconv"
	"strings"

	"github.com/recastml/recast/dialect"
	"github.com/recastml/recast/ir"
)

// Dialect is the JSX target.
type Dialect struct{}

// New constructs the JSX target.
func New() *Dialect { return &Dialect{} }

func (*Dialect) Info() dialect.Info {
	return dialect.Info{Name: "jsx", Extension: ".jsx"}
}

func (*Dialect) Features() dialect.Features {
	return dialect.Features{
		Partials:    true,
		Filters:     true,
		Macros:      true,
		AsyncOutput: true,
		RawOutput:   true,
		Comments:    true,
	}
}

var filters = dialect.FilterTable{
	"capitalize": "charAt(0).toUpperCase() + slice(1)",
	"currency":   "toLocaleString(style: currency)",
	"date":       "toLocaleDateString()",
	"default":    "??",
	"escape":     "(automatic)",
	"first":      "[0]",
	"join":       "join()",
	"json":       "JSON.stringify()",
	"last":       "at(-1)",
	"length":     "length",
	"lowercase":  "toLowerCase()",
	"number":     "toLocaleString()",
	"raw":        "dangerouslySetInnerHTML",
	"reverse":    "toReversed()",
	"slice":      "slice()",
	"sort":       "toSorted()",
	"split":      "split()",
	"trim":       "trim()",
	"truncate":   "slice(0, n)",
	"uppercase":  "toUpperCase()",
}

func (*Dialect) Filters() dialect.FilterTable { return filters }

// ApplyFilter spells one canonical filter as a JavaScript expression
// over expr. Names outside the canonical set spell as a verbatim method
// call.
func (*Dialect) ApplyFilter(expr, name string, args []string) string {
	arg := func(n int, fallback string) string {
		if n < len(args) {
			return args[n]
		}

		return fallback
	}

	switch name {
	case "uppercase":
		return expr + ".toUpperCase()"

	case "lowercase":
		return expr + ".toLowerCase()"

	case "capitalize":
		return expr + ".charAt(0).toUpperCase() + " + expr + ".slice(1)"

	case "trim":
		return expr + ".trim()"

	case "length":
		return expr + ".length"

	case "first":
		return expr + "[0]"

	case "last":
		return expr + ".at(-1)"

	case "json":
		return "JSON.stringify(" + expr + ")"

	case "join":
		return expr + ".join(" + arg(0, `", "`) + ")"

	case "split":
		return expr + ".split(" + arg(0, `" "`) + ")"

	case "reverse":
		return expr + ".toReversed()"

	case "sort":
		return expr + ".toSorted()"

	case "slice":
		return expr + ".slice(" + strings.Join(args, ", ") + ")"

	case "truncate":
		return expr + ".slice(0, " + arg(0, "100") + ")"

	case "default":
		if v := arg(0, ""); v != "" {
			return expr + " ?? " + v
		}

		return expr

	case "number":
		return "Number(" + expr + ").toLocaleString()"

	case "currency":
		return expr + ".toLocaleString(undefined, { style: \"currency\"" +
			", currency: " + arg(0, `"USD"`) + " })"

	case "date":
		return "new Date(" + expr + ").toLocaleDateString()"

	case "escape", "raw":
		// No expression form here: JSX escapes by default, and raw
		// output is handled at the variable level.
		return expr
	}

	return expr + "." + name + "(" + strings.Join(args, ", ") + ")"
}

func (d *Dialect) RenderVariable(v ir.Variable) string {
	expr := v.Name

	if v.Filter != "" {
		expr = d.ApplyFilter(expr, v.Filter, v.FilterArgs)
	}

	if v.Default != "" {
		expr += " ?? " + quote(v.Default)
	}

	if v.Raw || v.Filter == "raw" {
		return "<span dangerouslySetInnerHTML={{ __html: " + expr + " }}/>"
	}

	return "{" + expr + "}"
}

func (*Dialect) RenderLoop(loop ir.Loop, body string) string {
	key := loop.Key
	if key == "" {
		// Last resort: the positional index keys the list.
		if loop.Index == "" {
			loop.Index = "index"
		}

		key = loop.Index
	}

	params := loop.Item
	if loop.Index != "" {
		params = "(" + loop.Item + ", " + loop.Index + ")"
	}

	return "{" + loop.Collection + ".map(" + params + " => (\n" +
		injectKey(body, key) + "\n))}"
}

// injectKey places a key prop on the body's leading element. A quoted
// key attribute carried over from source markup is rewritten to brace
// form when its value is a plain member path.
func injectKey(body, key string) string {
	if key == "" || !strings.HasPrefix(body, "<") {
		return body
	}

	head := strings.IndexByte(body, '>')
	if head < 0 {
		return body
	}

	if i := strings.Index(body[:head], ` key="`); i >= 0 {
		rest := body[i+len(` key="`):]

		j := strings.IndexByte(rest, '"')
		if j < 0 || !isPath(rest[:j]) {
			return body
		}

		return body[:i] + " key={" + rest[:j] + "}" + rest[j+1:]
	}

	end := strings.IndexAny(body, " \t\n/>")
	if end < 0 {
		return body
	}

	return body[:end] + " key={" + key + "}" + body[end:]
}

func isPath(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '.', r == '_', r == '$':
		default:
			return false
		}
	}

	return s != ""
}

func (*Dialect) RenderCondition(chain []dialect.Branch) string {
	if len(chain) == 0 {
		return ""
	}

	multi := false

	for _, b := range chain {
		if b.Kind == ir.BranchElseIf {
			multi = true
		}
	}

	if !multi {
		if len(chain) == 1 {
			return "{" + chain[0].Cond + " && (\n" +
				chain[0].Body + "\n)}"
		}

		return "{" + chain[0].Cond + " ? (\n" + chain[0].Body +
			"\n) : (\n" + chain[1].Body + "\n)}"
	}

	var out strings.Builder

	out.WriteString("{(() => {\n")

	hasElse := false

	for _, b := range chain {
		if b.Kind == ir.BranchElse {
			hasElse = true

			out.WriteString("  return (\n    " + b.Body + "\n  );\n")

			continue
		}

		out.WriteString("  if (" + b.Cond + ") return (\n    " +
			b.Body + "\n  );\n")
	}

	if !hasElse {
		out.WriteString("  return null;\n")
	}

	out.WriteString("})()}")

	return out.String()
}

func (*Dialect) RenderSlot(s ir.Slot, fallback string) string {
	ref := "children"
	if s.Name != "" && s.Name != "default" {
		ref = "props." + s.Name
	}

	if fallback != "" {
		return "{" + ref + " ?? (\n" + fallback + "\n)}"
	}

	return "{" + ref + "}"
}

func (*Dialect) RenderInclude(inc ir.Include) string {
	var out strings.Builder

	out.WriteByte('<')
	out.WriteString(componentName(inc.Partial))

	for _, p := range inc.Props {
		out.WriteByte(' ')
		out.WriteString(p.Key)
		out.WriteByte('=')

		if expr, dynamic := dialect.PropExpr(p.Val); dynamic {
			out.WriteString("{" + expr + "}")
		} else {
			out.WriteString(quote(p.Val))
		}
	}

	out.WriteString("/>")

	return out.String()
}

// componentName converts a partial reference into a component
// identifier: "partials/site-header" yields "SiteHeader".
func componentName(ref string) string {
	var out strings.Builder

	for _, part := range strings.FieldsFunc(
		dialect.BaseName(ref),
		func(r rune) bool { return r == '-' || r == '_' || r == '.' },
	) {
		out.WriteString(strings.ToUpper(part[:1]))
		out.WriteString(part[1:])
	}

	return out.String()
}

func (d *Dialect) RenderBlock(b ir.Block, body string) string {
	return d.RenderComment(
		"recast: block \""+b.Name+"\" (no template inheritance in jsx)",
	) + "\n" + body
}

func (d *Dialect) RenderExtends(b ir.Block) string {
	return d.RenderComment(
		"recast: extends \"" + b.Extends +
			"\" (no template inheritance in jsx)",
	)
}

func (*Dialect) RenderComment(text string) string {
	return "{/* " + text + " */}"
}

func (*Dialect) Validate(output string) dialect.Validation {
	return dialect.CheckOutput(output,
		dialect.Pair{Open: "{", Close: "}"},
		dialect.Pair{Open: "{/*", Close: "*/}"},
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
