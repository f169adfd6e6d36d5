package html2md

import "strings"

// Walker drives depth-first rendering. Renderers receive the walker so they
// can recurse into children with a derived state.
type Walker struct {
	registry *Registry
	logger   Logger
	bullets  string
}

// NewWalker returns a walker over r. A nil r uses the default registry and a
// nil logger discards diagnostics.
func NewWalker(r *Registry, logger Logger) *Walker {
	if r == nil {
		r = DefaultRegistry()
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Walker{registry: r, logger: logger, bullets: DefaultBulletGlyphs}
}

// Registry returns the registry the walker dispatches through.
func (w *Walker) Registry() *Registry { return w.registry }

// Logger returns the walker's scoped logger.
func (w *Walker) Logger() Logger { return w.logger }

// Walk renders each child of n and returns the results in document order.
// The node itself is not rendered.
func (w *Walker) Walk(n *Node, s State) []string {
	if n == nil || len(n.Children) == 0 {
		return []string{}
	}

	scoped := w.scope(n)
	results := make([]string, len(n.Children))
	for i, c := range n.Children {
		if c.Kind == KindElement {
			scoped.logger.Debug("render element", "tag", c.Tag, "indent", len(s.Indent), "wrap", s.Wrap.String())
			results[i] = w.registry.Element(c.Tag)(scoped, c, s)
			continue
		}
		results[i] = w.registry.Node(c.Kind)(c)
	}
	return results
}

// WalkJoined is Walk with the results concatenated.
func (w *Walker) WalkJoined(n *Node, s State) string {
	return strings.Join(w.Walk(n, s), "")
}

// scope derives a walker whose logger path names the node being expanded.
func (w *Walker) scope(n *Node) *Walker {
	label := n.Kind.String()
	if n.Kind == KindElement {
		label = n.Tag
	}
	return &Walker{
		registry: w.registry,
		logger:   w.logger.Child("walk(" + label + ")"),
		bullets:  w.bullets,
	}
}

// isBullet reports whether r is one of the configured bullet glyphs.
func (w *Walker) isBullet(r rune) bool {
	return strings.ContainsRune(w.bullets, r)
}
