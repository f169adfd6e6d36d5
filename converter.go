package html2md

import (
	"fmt"
	"io"
	"strings"
)

// Converter turns document trees into Markdown.
// Create with NewConverter. A Converter is safe for concurrent use.
type Converter struct {
	cfg      converterConfig
	logger   Logger
	registry *Registry
}

// NewConverter creates a Converter with the default registry.
// Use options to customize behavior (e.g., WithOverrides, WithLogger, WithBaseURL).
// Returns an error if an option value is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:    converterConfig{bullets: DefaultBulletGlyphs},
		logger: NopLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := validateBulletGlyphs(c.cfg.bullets); err != nil {
		return nil, err
	}
	if err := validateBaseURL(c.cfg.baseURL); err != nil {
		return nil, err
	}

	c.registry = DefaultRegistry()
	if !c.cfg.overrides.IsEmpty() {
		c.registry = c.registry.Merge(c.cfg.overrides)
	}
	return c, nil
}

// Registry returns the merged registry the converter dispatches through.
func (c *Converter) Registry() *Registry {
	return c.registry
}

// Convert renders the children of root and returns normalized Markdown.
// The root itself is not rendered; a nil root yields "".
func (c *Converter) Convert(root *Node) string {
	if root == nil {
		return ""
	}
	log := c.logger.Child("convert")
	w := &Walker{registry: c.registry, logger: log, bullets: c.cfg.bullets}

	out := Normalize(w.WalkJoined(root, InitialState()))
	log.Debug("converted", "children", len(root.Children), "bytes", len(out))
	return out
}

// ConvertNode renders n itself, for instance a picked element.
// Document and fragment nodes have no markup of their own, so their children
// are rendered as with Convert.
func (c *Converter) ConvertNode(n *Node) string {
	switch {
	case n == nil:
		return ""
	case n.Kind == KindDocument || n.Kind == KindFragment:
		return c.Convert(n)
	}
	return c.Convert(Fragment(n))
}

// ConvertString parses markup and converts it.
func (c *Converter) ConvertString(markup string) (string, error) {
	return c.ConvertReader(strings.NewReader(markup))
}

// ConvertReader parses markup from r and converts it.
func (c *Converter) ConvertReader(r io.Reader) (string, error) {
	root, err := ParseWithOptions(r, ParseOptions{BaseURL: c.cfg.baseURL})
	if err != nil {
		return "", err
	}
	return c.Convert(root), nil
}

var defaultConverter = mustConverter()

func mustConverter() *Converter {
	c, err := NewConverter()
	if err != nil {
		panic(fmt.Sprintf("html2md: default converter: %v", err))
	}
	return c
}

// ToMarkdown converts root with the default settings.
func ToMarkdown(root *Node) string {
	return defaultConverter.Convert(root)
}
