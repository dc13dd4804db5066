package analyze

import (
	"strings"

	"github.com/recastml/recast/ir"
)

// DSL component tag names. The markup parser lowercases tag names, so
// matching is effectively case-insensitive (<Loop> and <loop> are the
// same tag).
const (
	TagLoop        = "loop"
	TagIf          = "if"
	TagElseIf      = "elseif"
	TagElse        = "else"
	TagVar         = "var"
	TagSlot        = "slot"
	TagInclude     = "include"
	TagDefineBlock = "defineblock"
	TagExtends     = "extends"
	TagRaw         = "raw"
)

// Handler reads a recognized DSL tag's attributes and produces its
// annotation. A missing required attribute is reported through the
// warning collector, never an abort: the handler returns a nil
// annotation and the element degrades to a safe unwrap wrapper.
type Handler func(attrs []ir.Attr, w *warnings) ir.Annotation

// Registry maps explicitly recognized DSL component tags to their
// handlers, plus the caller-supplied pass-through tag names (opaque
// markup, not DSL). A registry is constructed once and read-only
// afterwards; it is passed into the compilation entry point rather than
// held in package state.
type Registry struct {
	handlers    map[string]Handler
	passThrough map[string]struct{}
}

// NewRegistry constructs the registry of recognized DSL tags. Tags named
// in passThrough are treated as opaque markup even if a component
// inventory would otherwise recognize them.
func NewRegistry(passThrough ...string) *Registry {
	r := &Registry{
		handlers:    make(map[string]Handler, 10),
		passThrough: make(map[string]struct{}, len(passThrough)),
	}

	for _, tag := range passThrough {
		r.passThrough[strings.ToLower(tag)] = struct{}{}
	}

	r.handlers[TagLoop] = handleLoop
	r.handlers[TagIf] = handleIf
	r.handlers[TagElseIf] = handleElseIf
	r.handlers[TagElse] = handleElse
	r.handlers[TagVar] = handleVar
	r.handlers[TagSlot] = handleSlot
	r.handlers[TagInclude] = handleInclude
	r.handlers[TagDefineBlock] = handleDefineBlock
	r.handlers[TagExtends] = handleExtends

	// Raw has no annotation of its own: it flags contained variables as
	// unescaped in a later pass.
	r.handlers[TagRaw] = func([]ir.Attr, *warnings) ir.Annotation {
		return nil
	}

	return r
}

// Handler returns the handler for a tag name and whether the tag is a
// recognized DSL tag. Pass-through names are never DSL.
func (r *Registry) Handler(tag string) (Handler, bool) {
	tag = strings.ToLower(tag)

	if _, opaque := r.passThrough[tag]; opaque {
		return nil, false
	}

	h, ok := r.handlers[tag]

	return h, ok
}

// IsPassThrough reports whether tag was supplied as opaque markup.
func (r *Registry) IsPassThrough(tag string) bool {
	_, ok := r.passThrough[strings.ToLower(tag)]

	return ok
}

// attrValue returns the named attribute with interpolation delimiters
// stripped: items="{{ cart.items }}" and items="cart.items" read the
// same.
func attrValue(attrs []ir.Attr, key string) (string, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return stripDelims(a.Val), true
		}
	}

	return "", false
}

func stripDelims(v string) string {
	v = strings.TrimSpace(v)

	if strings.HasPrefix(v, "{{") && strings.HasSuffix(v, "}}") {
		v = strings.TrimSpace(v[2 : len(v)-2])
	}

	return v
}

// required reads a required attribute, warning when missing.
func required(attrs []ir.Attr, key, tag string, w *warnings) (string, bool) {
	v, ok := attrValue(attrs, key)
	if !ok || v == "" {
		w.add(
			WarnMissingAttr,
			"required attribute missing on <"+tag+">",
			key,
		)

		return "", false
	}

	return v, true
}

func handleLoop(attrs []ir.Attr, w *warnings) ir.Annotation {
	items, ok := required(attrs, "items", TagLoop, w)
	if !ok {
		return nil
	}

	item, ok := attrValue(attrs, "as")
	if !ok || item == "" {
		item = "item"
	}

	index, _ := attrValue(attrs, "index")
	key, _ := attrValue(attrs, "key")

	return ir.Loop{
		Item:       item,
		Collection: items,
		Index:      index,
		Key:        key,
	}
}

func handleIf(attrs []ir.Attr, w *warnings) ir.Annotation {
	cond, ok := required(attrs, "cond", TagIf, w)
	if !ok {
		return nil
	}

	return ir.Condition{Expr: cond, Branch: ir.BranchIf}
}

func handleElseIf(attrs []ir.Attr, w *warnings) ir.Annotation {
	cond, ok := required(attrs, "cond", TagElseIf, w)
	if !ok {
		return nil
	}

	return ir.Condition{Expr: cond, Branch: ir.BranchElseIf}
}

func handleElse([]ir.Attr, *warnings) ir.Annotation {
	return ir.Condition{Branch: ir.BranchElse}
}

func handleVar(attrs []ir.Attr, w *warnings) ir.Annotation {
	name, ok := required(attrs, "name", TagVar, w)
	if !ok {
		return nil
	}

	def, _ := attrValue(attrs, "default")
	filter, _ := attrValue(attrs, "filter")

	var filterArgs []string

	if args, ok := attrValue(attrs, "args"); ok && args != "" {
		for _, arg := range splitTopLevel(args, ',') {
			if arg = strings.TrimSpace(arg); arg != "" {
				filterArgs = append(filterArgs, arg)
			}
		}
	}

	_, raw := attrValue(attrs, "raw")

	return ir.Variable{
		Name:       name,
		Default:    def,
		Filter:     filter,
		FilterArgs: filterArgs,
		Raw:        raw,
	}
}

func handleSlot(attrs []ir.Attr, _ *warnings) ir.Annotation {
	name, ok := attrValue(attrs, "name")
	if !ok || name == "" {
		name = "default"
	}

	return ir.Slot{Name: name}
}

func handleInclude(attrs []ir.Attr, w *warnings) ir.Annotation {
	src, ok := required(attrs, "src", TagInclude, w)
	if !ok {
		return nil
	}

	// Every non-reserved attribute becomes a prop, in source order.
	// Values keep their interpolation delimiters: a dynamic prop and a
	// string-literal prop spell differently in every target.
	var props []ir.Attr

	for _, a := range attrs {
		if a.Key == "src" {
			continue
		}

		props = append(props, a)
	}

	return ir.Include{Partial: src, Props: props}
}

func handleDefineBlock(attrs []ir.Attr, w *warnings) ir.Annotation {
	name, ok := required(attrs, "name", TagDefineBlock, w)
	if !ok {
		return nil
	}

	return ir.Block{Name: name}
}

func handleExtends(attrs []ir.Attr, w *warnings) ir.Annotation {
	src, ok := required(attrs, "src", TagExtends, w)
	if !ok {
		return nil
	}

	return ir.Block{Extends: src}
}
