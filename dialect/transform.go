package dialect

import (
	"context"
	"log/slog"
	"strings"

	"github.com/recastml/recast/analyze"
	"github.com/recastml/recast/ir"
)

// Result is the output of compiling one analyzed unit for one target.
type Result struct {
	Target Info
	Output string

	// Variables are the free variables of the unit, deduplicated in
	// first-appearance order. Loop-bound names are excluded.
	Variables []string
	// Dependencies are the partial and layout references, deduplicated
	// in first-appearance order.
	Dependencies []string

	// Warnings holds the analysis warnings plus any recorded during
	// rendering. Warnings never fail a transform.
	Warnings []analyze.Warning
}

// Transform renders one analyzed unit into target text. The traversal is
// depth-first: children render before the construct framing them. The
// renderer's own Validate gate runs over the finished output; a failed
// gate means a renderer bug and fails the transform.
func Transform(
	ctx context.Context,
	unit *analyze.Unit,
	r Renderer,
) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, analyze.WrapError(err)
	}

	if unit == nil || unit.Tree == nil {
		return nil, ErrMissingUnit
	}

	d := &driver{r: r}

	out := d.renderChildren(unit.Tree.Children)

	if v := r.Validate(out); !v.Valid {
		return nil, ErrInvalidOutput.With(
			slog.String("dialect", r.Info().Name),
			slog.String("detail", strings.Join(v.Errors, "; ")),
		)
	}

	warnings := make(
		[]analyze.Warning, 0, len(unit.Warnings)+len(d.warn),
	)
	warnings = append(warnings, unit.Warnings...)
	warnings = append(warnings, d.warn...)

	return &Result{
		Target:       r.Info(),
		Output:       out,
		Variables:    ir.CollectVariables(unit.Tree, analyze.KnownGlobals...),
		Dependencies: ir.CollectDependencies(unit.Tree),
		Warnings:     warnings,
	}, nil
}

// driver walks the tree for one transform, accumulating render-time
// warnings.
type driver struct {
	r    Renderer
	warn []analyze.Warning
}

func (d *driver) record(code analyze.WarningCode, message, detail string) {
	d.warn = append(d.warn, analyze.Warning{
		Code:    code,
		Message: message,
		Detail:  detail,
	})
}

// renderChildren renders a sibling list. Adjacent condition branches
// (If, then ElseIfs, then an optional Else, with only blank text
// between) fold into one chain and reach the renderer as a single call,
// so the renderer can pick its branching strategy from the whole chain.
func (d *driver) renderChildren(children []*ir.Node) string {
	var out strings.Builder

	for i := 0; i < len(children); i++ {
		n := children[i]

		if cond, ok := n.Ann.(ir.Condition); ok &&
			cond.Branch == ir.BranchIf {
			chain, next := d.foldChain(children, i)

			out.WriteString(d.r.RenderCondition(chain))

			i = next - 1

			continue
		}

		out.WriteString(d.render(n))
	}

	return out.String()
}

// foldChain collects the condition chain starting at an If branch and
// returns it with the index of the first sibling past the chain. Blank
// text between branches is consumed, not emitted.
func (d *driver) foldChain(children []*ir.Node, start int) ([]Branch, int) {
	var chain []Branch

	i := start

	for i < len(children) {
		n := children[i]

		if n.Kind == ir.KindText && strings.TrimSpace(n.Text) == "" {
			if !continuesChain(children, i+1) {
				break
			}

			i++

			continue
		}

		cond, ok := n.Ann.(ir.Condition)
		if !ok {
			break
		}

		if len(chain) > 0 && cond.Branch == ir.BranchIf {
			break
		}

		chain = append(chain, Branch{
			Kind: cond.Branch,
			Cond: cond.Expr,
			Body: strings.TrimSpace(d.renderChildren(n.Children)),
		})

		i++

		if cond.Branch == ir.BranchElse {
			break
		}
	}

	return chain, i
}

// continuesChain reports whether the sibling at i is an ElseIf or Else
// branch.
func continuesChain(children []*ir.Node, i int) bool {
	if i >= len(children) {
		return false
	}

	cond, ok := children[i].Ann.(ir.Condition)

	return ok && cond.Branch != ir.BranchIf
}

func (d *driver) render(n *ir.Node) string {
	switch n.Kind {
	case ir.KindRoot:
		return d.renderChildren(n.Children)

	case ir.KindText:
		return n.Text

	case ir.KindComment:
		return d.r.RenderComment(n.Text)

	case ir.KindDoctype:
		return "<!DOCTYPE " + n.Text + ">"
	}

	if n.Ann != nil {
		return d.renderAnnotated(n)
	}

	if n.Unwrap {
		// Synthetic and degraded wrappers contribute children only.
		return d.renderChildren(n.Children)
	}

	return d.renderElement(n)
}

func (d *driver) renderAnnotated(n *ir.Node) string {
	body := func() string {
		return strings.TrimSpace(d.renderChildren(n.Children))
	}

	switch ann := n.Ann.(type) {
	case ir.Loop:
		return d.r.RenderLoop(ann, body())

	case ir.Condition:
		// A lone If outside a sibling fold still renders as a one-arm
		// chain. Dangling ElseIf/Else branches were warned about at
		// analysis time; their bodies render behind a marked
		// placeholder so nothing is silently dropped.
		if ann.Branch == ir.BranchIf {
			return d.r.RenderCondition([]Branch{{
				Kind: ir.BranchIf,
				Cond: ann.Expr,
				Body: body(),
			}})
		}

		return d.r.RenderComment(
			"recast: dangling "+ann.Branch.String()+" branch",
		) + body()

	case ir.Variable:
		// A Var spelled with children keeps them; they render after
		// the construct so nothing is dropped.
		return d.r.RenderVariable(d.checkVariable(ann)) +
			d.renderChildren(n.Children)

	case ir.Slot:
		return d.r.RenderSlot(ann, body())

	case ir.Include:
		if !d.r.Features().Partials {
			d.record(
				analyze.WarnUnsupportedFeature,
				d.r.Info().Name+" has no partial mechanism",
				ann.Partial,
			)
		}

		return d.r.RenderInclude(ann) + d.renderChildren(n.Children)

	case ir.Block:
		if !d.r.Features().Inheritance {
			d.record(
				analyze.WarnUnsupportedFeature,
				d.r.Info().Name+" has no template inheritance",
				ann.Name+ann.Extends,
			)
		}

		if ann.Extends != "" {
			out := d.r.RenderExtends(ann)
			if rest := body(); rest != "" {
				out += "\n\n" + rest
			}

			return out
		}

		return d.r.RenderBlock(ann, body())
	}

	return d.renderChildren(n.Children)
}

// checkVariable validates the filter of a variable against the target's
// vocabulary. An unknown filter records a warning with the closest known
// name but still passes through: the renderer spells it as a verbatim
// native call rather than dropping it.
func (d *driver) checkVariable(v ir.Variable) ir.Variable {
	if v.Filter == "" {
		return v
	}

	table := d.r.Filters()
	if table.Known(v.Filter) {
		return v
	}

	detail := v.Filter
	if s := Suggest(v.Filter, table.Names()); s != "" {
		detail += " (closest: " + s + ")"
	}

	d.record(
		analyze.WarnUnknownFilter,
		"filter not in the "+d.r.Info().Name+" vocabulary",
		detail,
	)

	return v
}

// voidTags never take children or a closing tag.
var voidTags = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {},
	"hr": {}, "img": {}, "input": {}, "link": {}, "meta": {},
	"source": {}, "track": {}, "wbr": {},
}

func (d *driver) renderElement(n *ir.Node) string {
	var out strings.Builder

	out.WriteByte('<')
	out.WriteString(n.Tag)

	for _, a := range n.Attrs {
		out.WriteByte(' ')
		out.WriteString(a.Key)

		if a.Val != "" {
			out.WriteString(`="`)
			out.WriteString(d.rewriteAttr(a.Val))
			out.WriteByte('"')
		}
	}

	if _, void := voidTags[n.Tag]; void {
		out.WriteString("/>")

		return out.String()
	}

	out.WriteByte('>')
	out.WriteString(d.renderChildren(n.Children))
	out.WriteString("</")
	out.WriteString(n.Tag)
	out.WriteByte('>')

	return out.String()
}

// rewriteAttr replaces each {{ ... }} span in an attribute value with
// the target's variable spelling. The scan moves strictly forward so a
// target whose spelling keeps the same delimiters cannot loop.
func (d *driver) rewriteAttr(val string) string {
	var out strings.Builder

	for {
		open := strings.Index(val, "{{")
		if open < 0 {
			break
		}

		rel := strings.Index(val[open:], "}}")
		if rel < 0 {
			break
		}

		out.WriteString(val[:open])

		expr := strings.TrimSpace(val[open+2 : open+rel])
		out.WriteString(d.r.RenderVariable(d.attrVariable(expr)))

		val = val[open+rel+2:]
	}

	out.WriteString(val)

	return out.String()
}

// attrVariable classifies an attribute interpolation into a variable
// annotation. Attribute position supports variables and filters only;
// anything richer degrades to its raw expression text.
func (d *driver) attrVariable(expr string) ir.Variable {
	cls := analyze.Classify(expr)

	name := cls.Path
	if name == "" {
		name = cls.Src
	}

	v := ir.Variable{Name: name}

	if len(cls.Filters) > 0 {
		v.Filter = cls.Filters[0].Name
		v.FilterArgs = cls.Filters[0].Args
	}

	return d.checkVariable(v)
}
