package analyze

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/recastml/recast/ir"
	"github.com/recastml/recast/log"
)

// options holds the configuration for one analysis.
type options struct {
	registry    *Registry
	passThrough []string
	logger      log.Logger
}

// Option applies a configuration option to an analysis.
type Option func(options) options

// WithRegistry supplies a pre-constructed DSL tag registry. When unset, a
// default registry is constructed from the pass-through tag list.
func WithRegistry(reg *Registry) Option {
	return func(o options) options {
		o.registry = reg

		return o
	}
}

// WithPassThroughTags names tags that are opaque markup, not DSL, as
// supplied by an external component-inventory collaborator.
func WithPassThroughTags(tags ...string) Option {
	return func(o options) options {
		o.passThrough = append(o.passThrough, tags...)

		return o
	}
}

// WithLogger supplies a logger for analysis diagnostics. The zero-value
// logger is silent.
func WithLogger(logger log.Logger) Option {
	return func(o options) options {
		o.logger = logger

		return o
	}
}

// Unit is the result of analyzing one compilation unit: the annotated
// immutable tree plus the non-fatal warnings gathered along the way.
type Unit struct {
	Tree     *ir.Node
	Warnings []Warning
}

// Parse analyzes one source-text buffer into an annotated intermediate
// tree. Recoverable issues degrade to warnings on the returned Unit;
// only unparsable source fails the unit.
func Parse(ctx context.Context, source string, opts ...Option) (*Unit, error) {
	var o options
	for _, opt := range opts {
		o = opt(o)
	}

	if err := ctx.Err(); err != nil {
		return nil, WrapError(err)
	}

	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptySource
	}

	reg := o.registry
	if reg == nil {
		reg = NewRegistry(o.passThrough...)
	}

	b := &builder{reg: reg, warn: &warnings{}}

	children, err := b.buildFragment(source)
	if err != nil {
		return nil, err
	}

	tree := ir.Root(children...)

	// Construction-time passes; the tree is immutable once published.
	tree = adoptExtends(tree)
	tree = propagateRaw(tree, false)
	tree = resolveLoopKeys(tree)
	checkConditionChains(tree, b.warn)

	o.logger.Debug("unit analyzed",
		slog.Int("nodes", ir.CountNodes(tree)),
		slog.Int("warnings", len(b.warn.list)),
	)

	return &Unit{Tree: tree, Warnings: b.warn.list}, nil
}

// ParseReader analyzes a source unit read from r.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Unit, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Parse(ctx, string(src), opts...)
}

// adoptExtends nests everything following a childless unit-level
// <Extends> under it: a layout declaration frames the blocks that fill
// it, so backends with native inheritance see one construct.
func adoptExtends(root *ir.Node) *ir.Node {
	for i, child := range root.Children {
		b, ok := child.Ann.(ir.Block)
		if !ok || b.Extends == "" || child.HasChildren() ||
			i+1 == len(root.Children) {
			continue
		}

		ext := *child
		ext.Children = root.Children[i+1:]

		c := *root
		c.Children = append(
			append([]*ir.Node{}, root.Children[:i]...), &ext,
		)

		return &c
	}

	return root
}

// propagateRaw marks variables inside <Raw> regions as unescaped.
func propagateRaw(n *ir.Node, inRaw bool) *ir.Node {
	c := *n

	if c.Kind == ir.KindElement && c.Unwrap && c.Tag == TagRaw {
		inRaw = true
	}

	if inRaw {
		if v, ok := c.Ann.(ir.Variable); ok && !v.Raw {
			v.Raw = true
			c.Ann = v
		}
	}

	if len(c.Children) > 0 {
		children := make([]*ir.Node, len(c.Children))
		for i, child := range c.Children {
			children[i] = propagateRaw(child, inRaw)
		}

		c.Children = children
	}

	return &c
}

// idLikeFields are item properties treated as identity, in priority
// order.
var idLikeFields = []string{"id", "uuid", "key"}

// resolveLoopKeys fills the key of each loop annotation that has none.
func resolveLoopKeys(n *ir.Node) *ir.Node {
	return ir.Map(n, func(node *ir.Node) *ir.Node {
		loop, ok := node.Ann.(ir.Loop)
		if !ok || loop.Key != "" {
			return node
		}

		if key := ResolveLoopKey(loop, node); key != "" {
			node.Ann = ir.Loop{
				Item:       loop.Item,
				Collection: loop.Collection,
				Index:      loop.Index,
				Key:        key,
			}
		}

		return node
	})
}

// ResolveLoopKey resolves the per-item key for a loop with no explicit
// key: an identifier-like field on the item referenced anywhere in the
// loop body ("id", "uuid", "key") takes priority over the positional
// index; backends fall back to the index only when this returns empty.
func ResolveLoopKey(loop ir.Loop, body *ir.Node) string {
	if loop.Key != "" {
		return loop.Key
	}

	if loop.Item == "" || body == nil {
		return ""
	}

	for _, field := range idLikeFields {
		want := loop.Item + "." + field

		hit := ir.Find(body, func(n *ir.Node) bool {
			v, ok := n.Ann.(ir.Variable)

			return ok && v.Name == want
		})
		if hit != nil {
			return want
		}
	}

	return ""
}

// checkConditionChains warns about ElseIf/Else branches that do not
// immediately follow an If (or another ElseIf) among their significant
// siblings. The dangling branch still renders, behind a visibly marked
// placeholder, so this is a validation-time warning rather than an
// abort.
func checkConditionChains(n *ir.Node, w *warnings) {
	ir.Walk(n, ir.Visitor{
		Enter: func(node *ir.Node) ir.Step {
			if !node.HasChildren() {
				return ir.SkipChildren
			}

			inChain := false

			for _, child := range node.Children {
				if child.Kind == ir.KindText &&
					strings.TrimSpace(child.Text) == "" {
					continue
				}

				cond, ok := child.Ann.(ir.Condition)
				if !ok {
					inChain = false

					continue
				}

				switch cond.Branch {
				case ir.BranchIf:
					inChain = true

				case ir.BranchElseIf, ir.BranchElse:
					if !inChain {
						w.add(
							WarnDanglingBranch,
							"<"+cond.Branch.String()+
								"> has no preceding <if> sibling",
							cond.Expr,
						)
					}

					if cond.Branch == ir.BranchElse {
						inChain = false
					}
				}
			}

			return ir.Continue
		},
	})
}
