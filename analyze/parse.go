package analyze

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/recastml/recast/ir"
)

// The markup parser is a black-box boundary: only the generic node kind,
// attribute list, and child list of its output are consumed, so the
// concrete parser is swappable. Source text is tokenized rather than
// tree-built: the html5 content model would scaffold implied html/head/
// body elements and drop or hoist table-scoped tags (td, tr, tbody)
// nested under compile-time wrappers, so the token stream is linked into
// a tree by tag name alone and constructs stay nested exactly as
// written.
//
// Interpolation spans are masked with private-use placeholder runes
// before tokenizing so a span containing markup (an iteration callback
// returning an element) survives the tokenizer as one atomic token.

const (
	openDelim  = "{{"
	closeDelim = "}}"

	// Private-use runes bracketing a masked interpolation index. They
	// pass through the markup parser untouched in both text and
	// attribute values.
	maskOpen  = ''
	maskClose = ''
)

// builder converts parser output into the annotated intermediate tree.
type builder struct {
	reg  *Registry
	warn *warnings
	// exprs is the table of masked interpolation expressions, indexed
	// by placeholder.
	exprs []string
}

// buildFragment masks interpolations, parses markup text, and builds its
// nodes. It is also used to recurse into iteration callback bodies and
// conditional arms found inside interpolations.
func (b *builder) buildFragment(src string) ([]*ir.Node, error) {
	root := &html.Node{Type: html.ElementNode}

	if err := b.parseInto(root, b.mask(src)); err != nil {
		return nil, err
	}

	var out []*ir.Node

	for c := root.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, b.build(c)...)
	}

	return out, nil
}

// voidElements never take children, so their start tags open no scope.
var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {},
	"hr": {}, "img": {}, "input": {}, "link": {}, "meta": {},
	"source": {}, "track": {}, "wbr": {},
}

// parseInto tokenizes masked markup and links the token stream into a
// tree under parent. An end tag closes the nearest open element of the
// same name; a stray end tag is ignored, and elements still open at the
// end of input keep the children gathered so far.
func (b *builder) parseInto(parent *html.Node, masked string) error {
	z := html.NewTokenizer(strings.NewReader(masked))

	open := []*html.Node{parent}
	top := func() *html.Node { return open[len(open)-1] }

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return ErrUnparsableSource.Wrap(err)
			}

			return nil

		case html.TextToken:
			top().AppendChild(&html.Node{
				Type: html.TextNode,
				Data: z.Token().Data,
			})

		case html.StartTagToken, html.SelfClosingTagToken:
			t := z.Token()
			n := &html.Node{
				Type:     html.ElementNode,
				Data:     t.Data,
				DataAtom: t.DataAtom,
				Attr:     t.Attr,
			}

			top().AppendChild(n)

			_, void := voidElements[t.Data]
			if t.Type == html.StartTagToken && !void {
				open = append(open, n)
			}

		case html.EndTagToken:
			t := z.Token()

			for i := len(open) - 1; i > 0; i-- {
				if open[i].Data == t.Data {
					open = open[:i]

					break
				}
			}

		case html.CommentToken:
			top().AppendChild(&html.Node{
				Type: html.CommentNode,
				Data: z.Token().Data,
			})

		case html.DoctypeToken:
			top().AppendChild(&html.Node{
				Type: html.DoctypeNode,
				Data: z.Token().Data,
			})
		}
	}
}

// mask replaces every balanced {{ ... }} span with a placeholder token
// and records the span's expression. Spans nest: an iteration callback
// body may itself contain interpolations, which stay verbatim inside the
// recorded expression and are masked again when the body is rebuilt.
func (b *builder) mask(src string) string {
	var out strings.Builder

	for {
		open := strings.Index(src, openDelim)
		if open < 0 {
			out.WriteString(src)

			break
		}

		out.WriteString(src[:open])

		end := matchDelims(src, open)
		if end < 0 {
			b.warn.add(
				WarnSplitInterpolation,
				"interpolation has no closing delimiter",
				strings.TrimSpace(src[open:]),
			)
			out.WriteString(src[open:])

			break
		}

		expr := strings.TrimSpace(src[open+len(openDelim) : end])

		b.exprs = append(b.exprs, expr)

		out.WriteRune(maskOpen)
		out.WriteString(strconv.Itoa(len(b.exprs) - 1))
		out.WriteRune(maskClose)

		src = src[end+len(closeDelim):]
	}

	return out.String()
}

// matchDelims returns the index of the }} closing the {{ at open,
// counting nested pairs, or -1.
func matchDelims(src string, open int) int {
	depth := 0

	for i := open; i+1 < len(src); i++ {
		switch {
		case src[i] == '{' && src[i+1] == '{':
			depth++
			i++

		case src[i] == '}' && src[i+1] == '}':
			depth--
			if depth == 0 {
				return i
			}

			i++
		}
	}

	return -1
}

// unmask restores {{ ... }} spans in attribute values, which keep their
// delimiters for the dialect drivers to rewrite.
func (b *builder) unmask(s string) string {
	for {
		i := strings.IndexRune(s, maskOpen)
		if i < 0 {
			return s
		}

		j := strings.IndexRune(s[i:], maskClose)
		if j < 0 {
			return s
		}

		idx, err := strconv.Atoi(s[i+len(string(maskOpen)) : i+j])
		if err != nil || idx < 0 || idx >= len(b.exprs) {
			return s
		}

		s = s[:i] +
			openDelim + b.exprs[idx] + closeDelim +
			s[i+j+len(string(maskClose)):]
	}
}

// build converts one parser node. A single source node may yield several
// tree nodes: text nodes split around interpolations, and ternary
// interpolations yield an If/Else sibling pair.
func (b *builder) build(n *html.Node) []*ir.Node {
	switch n.Type {
	case html.ElementNode:
		return []*ir.Node{b.buildElement(n)}

	case html.TextNode:
		return b.buildText(n.Data)

	case html.CommentNode:
		return []*ir.Node{ir.Comment(b.unmask(n.Data))}

	case html.DoctypeNode:
		return []*ir.Node{ir.Doctype(n.Data)}

	default:
		return nil
	}
}

func (b *builder) buildElement(n *html.Node) *ir.Node {
	attrs := make([]ir.Attr, 0, len(n.Attr))
	for _, a := range n.Attr {
		attrs = append(attrs, ir.Attr{Key: a.Key, Val: b.unmask(a.Val)})
	}

	var children []*ir.Node

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, b.build(c)...)
	}

	handler, isDSL := b.reg.Handler(n.Data)
	if !isDSL {
		return ir.Element(n.Data, attrs, children...)
	}

	// DSL tags carry compile-time semantics only: they are never
	// emitted as literal tags, so the element is always an unwrap
	// wrapper. A handler returning nil (missing required attribute,
	// or <Raw>) degrades to a plain wrapper whose children still
	// compile.
	return &ir.Node{
		Kind:     ir.KindElement,
		Tag:      n.Data,
		Attrs:    attrs,
		Children: children,
		Ann:      handler(attrs, b.warn),
		Unwrap:   true,
	}
}

// buildText splits masked text around interpolation placeholders and
// converts each span according to its classification.
func (b *builder) buildText(text string) []*ir.Node {
	var out []*ir.Node

	for {
		i := strings.IndexRune(text, maskOpen)
		if i < 0 {
			break
		}

		j := strings.IndexRune(text[i:], maskClose)
		if j < 0 {
			break
		}

		if i > 0 {
			out = append(out, ir.Text(text[:i]))
		}

		idx, err := strconv.Atoi(text[i+len(string(maskOpen)) : i+j])
		if err == nil && idx >= 0 && idx < len(b.exprs) {
			out = append(out, b.buildInterpolation(b.exprs[idx])...)
		}

		text = text[i+j+len(string(maskClose)):]
	}

	if text != "" {
		out = append(out, ir.Text(text))
	}

	return out
}

// buildInterpolation converts one classified expression span into
// synthetic unwrap nodes carrying the matching annotation.
func (b *builder) buildInterpolation(expr string) []*ir.Node {
	cls := Classify(expr)

	switch cls.Kind {
	case ExprIteration:
		return []*ir.Node{synthetic(ir.Loop{
			Item:       cls.Item,
			Collection: cls.Collection,
			Index:      cls.Index,
			Key:        cls.Key,
		}, b.bodyNodes(cls.Body)...)}

	case ExprConditional:
		nodes := []*ir.Node{synthetic(ir.Condition{
			Expr:   cls.Guard,
			Branch: ir.BranchIf,
		}, b.bodyNodes(cls.Body)...)}

		if cls.ElseBody != "" {
			nodes = append(nodes, synthetic(ir.Condition{
				Branch: ir.BranchElse,
			}, b.bodyNodes(cls.ElseBody)...))
		}

		return nodes

	case ExprChildren:
		return []*ir.Node{synthetic(ir.Slot{Name: "default"})}

	case ExprLiteral:
		return []*ir.Node{ir.Text(unquote(cls.Src))}

	default:
		name := cls.Path
		if name == "" {
			name = cls.Src
		}

		return []*ir.Node{synthetic(b.variable(name, cls.Filters))}
	}
}

// bodyNodes converts an iteration callback body or a conditional arm.
// Markup recurses through the parser; anything else is an expression and
// classifies like a nested interpolation, so its variables stay dynamic.
func (b *builder) bodyNodes(body string) []*ir.Node {
	if body == "" {
		return nil
	}

	if strings.HasPrefix(body, "<") {
		nodes, err := b.buildFragment(body)
		if err == nil {
			return nodes
		}

		return []*ir.Node{ir.Text(body)}
	}

	return b.buildInterpolation(body)
}

// variable builds a Variable annotation from a classified path and
// filter chain. Only the first filter of a chain is attached.
func (b *builder) variable(name string, filters []FilterCall) ir.Variable {
	v := ir.Variable{Name: name}

	if len(filters) > 0 {
		v.Filter = filters[0].Name
		v.FilterArgs = filters[0].Args
	}

	if len(filters) > 1 {
		extra := make([]string, 0, len(filters)-1)
		for _, f := range filters[1:] {
			extra = append(extra, f.Name)
		}

		b.warn.add(
			WarnExtraFilters,
			"only the first filter of a chain is applied",
			strings.Join(extra, ", "),
		)
	}

	return v
}

// synthetic creates an unwrap wrapper element for an interpolation span.
func synthetic(ann ir.Annotation, children ...*ir.Node) *ir.Node {
	return &ir.Node{
		Kind:     ir.KindElement,
		Tag:      "span",
		Children: children,
		Ann:      ann,
		Unwrap:   true,
	}
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') ||
			(s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}

	return s
}
