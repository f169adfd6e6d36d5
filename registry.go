package html2md

import (
	"fmt"
	"sort"
	"strings"
)

// ElementRenderer renders an element. It receives the walker so it can
// recurse into children with a derived state.
type ElementRenderer func(w *Walker, n *Node, s State) string

// NodeRenderer renders a non-element node. Non-element renderers never recurse.
type NodeRenderer func(n *Node) string

// Registry maps dispatch keys to renderers. A Registry is immutable once
// built, so it can be shared across conversions and goroutines.
type Registry struct {
	elements        map[string]ElementRenderer
	nodes           map[NodeKind]NodeRenderer
	elementFallback ElementRenderer
	nodeFallback    NodeRenderer
}

// Overrides holds caller-supplied renderers merged over a Registry.
// Nil entries are ignored.
type Overrides struct {
	Elements        map[string]ElementRenderer
	Nodes           map[NodeKind]NodeRenderer
	ElementFallback ElementRenderer
	NodeFallback    NodeRenderer
}

// IsEmpty reports whether o overrides nothing.
func (o Overrides) IsEmpty() bool {
	return len(o.Elements) == 0 && len(o.Nodes) == 0 && o.ElementFallback == nil && o.NodeFallback == nil
}

var defaultRegistry = newDefaultRegistry()

// DefaultRegistry returns the built-in registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

func newDefaultRegistry() *Registry {
	r := &Registry{
		elements:        make(map[string]ElementRenderer, 64),
		nodes:           map[NodeKind]NodeRenderer{KindText: TextNode},
		elementFallback: Transparent,
		nodeFallback:    ElideNode,
	}

	for level := 1; level <= 6; level++ {
		r.elements[fmt.Sprintf("h%d", level)] = Heading(level)
	}
	for _, tag := range []string{"p", "div", "header", "footer", "hgroup", "article", "main", "section", "address"} {
		r.elements[tag] = Block
	}
	// Web-application elements with no meaningful Markdown analog
	for _, tag := range []string{"form", "fieldset", "output", "menu", "nav", "noscript", "canvas", "script", "style", "head", "template"} {
		r.elements[tag] = Elide
	}
	for _, tag := range []string{"aside", "figure", "audio", "video", "table", "picture"} {
		r.elements[tag] = Preserve
	}

	bold := Emphasis(WrapBold, "**")
	italic := Emphasis(WrapItalic, "_")

	r.elements["html"] = Transparent
	r.elements["body"] = Transparent
	r.elements["pre"] = Pre
	r.elements["code"] = Code
	r.elements["strong"] = bold
	r.elements["b"] = bold
	r.elements["em"] = italic
	r.elements["i"] = italic
	r.elements["a"] = Link
	r.elements["img"] = Image
	r.elements["ul"] = List("- ")
	r.elements["ol"] = List("1. ")
	r.elements["li"] = ListItem
	r.elements["blockquote"] = Blockquote
	r.elements["hr"] = HorizontalRule
	r.elements["br"] = LineBreak
	r.elements["iframe"] = FrameWarning

	return r
}

// Merge returns a new Registry with o applied over r, key by key.
// The receiver is not modified.
func (r *Registry) Merge(o Overrides) *Registry {
	merged := &Registry{
		elements:        make(map[string]ElementRenderer, len(r.elements)+len(o.Elements)),
		nodes:           make(map[NodeKind]NodeRenderer, len(r.nodes)+len(o.Nodes)),
		elementFallback: r.elementFallback,
		nodeFallback:    r.nodeFallback,
	}
	for tag, fn := range r.elements {
		merged.elements[tag] = fn
	}
	for kind, fn := range r.nodes {
		merged.nodes[kind] = fn
	}

	for tag, fn := range o.Elements {
		if fn != nil {
			merged.elements[strings.ToLower(tag)] = fn
		}
	}
	for kind, fn := range o.Nodes {
		if fn != nil {
			merged.nodes[kind] = fn
		}
	}
	if o.ElementFallback != nil {
		merged.elementFallback = o.ElementFallback
	}
	if o.NodeFallback != nil {
		merged.nodeFallback = o.NodeFallback
	}
	return merged
}

// Element returns the renderer for tag, or the element fallback.
func (r *Registry) Element(tag string) ElementRenderer {
	if fn, ok := r.elements[tag]; ok {
		return fn
	}
	return r.elementFallback
}

// Node returns the renderer for a non-element kind, or the node fallback.
func (r *Registry) Node(kind NodeKind) NodeRenderer {
	if fn, ok := r.nodes[kind]; ok {
		return fn
	}
	return r.nodeFallback
}

// Handles reports whether tag has its own renderer (not the fallback).
func (r *Registry) Handles(tag string) bool {
	_, ok := r.elements[tag]
	return ok
}

// Tags returns the registered element tags, sorted.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.elements))
	for tag := range r.elements {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// strategies maps configuration names to element renderers.
var strategies = map[string]ElementRenderer{
	"block":       Block,
	"transparent": Transparent,
	"elide":       Elide,
	"preserve":    Preserve,
	"code":        Code,
	"pre":         Pre,
	"bold":        Emphasis(WrapBold, "**"),
	"italic":      Emphasis(WrapItalic, "_"),
	"link":        Link,
	"image":       Image,
	"blockquote":  Blockquote,
	"hr":          HorizontalRule,
	"br":          LineBreak,
	"ul":          List("- "),
	"ol":          List("1. "),
	"li":          ListItem,
	"h1":          Heading(1),
	"h2":          Heading(2),
	"h3":          Heading(3),
	"h4":          Heading(4),
	"h5":          Heading(5),
	"h6":          Heading(6),
}

// StrategyByName resolves a named strategy, as used in configuration files.
func StrategyByName(name string) (ElementRenderer, error) {
	fn, ok := strategies[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownStrategy, name, strings.Join(StrategyNames(), ", "))
	}
	return fn, nil
}

// StrategyNames returns the available strategy names, sorted.
func StrategyNames() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OverridesFromNames builds Overrides from a tag to strategy-name mapping.
func OverridesFromNames(byTag map[string]string) (Overrides, error) {
	o := Overrides{Elements: make(map[string]ElementRenderer, len(byTag))}
	for tag, name := range byTag {
		fn, err := StrategyByName(name)
		if err != nil {
			return Overrides{}, fmt.Errorf("renderer for %q: %w", tag, err)
		}
		o.Elements[strings.ToLower(tag)] = fn
	}
	return o, nil
}
