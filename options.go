package html2md

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/alnah/go-html2md/internal/pipeline"
)

// DefaultBulletGlyphs are the characters block containers rewrite into "- ".
const DefaultBulletGlyphs = "·•‣◦"

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds option values validated by NewConverter.
type converterConfig struct {
	bullets   string
	baseURL   string
	overrides Overrides
}

// WithLogger sets the diagnostic sink. A nil logger discards output.
func WithLogger(l Logger) Option {
	return func(c *Converter) {
		if l == nil {
			l = NopLogger()
		}
		c.logger = l
	}
}

// WithOverrides merges caller renderers over the default registry.
// Applying it more than once merges every set, later calls winning.
func WithOverrides(o Overrides) Option {
	return func(c *Converter) {
		c.cfg.overrides = mergeOverrides(c.cfg.overrides, o)
	}
}

// WithBulletGlyphs replaces the set of bullet characters rewritten by block
// containers. An empty set disables the rewrite.
func WithBulletGlyphs(glyphs string) Option {
	return func(c *Converter) {
		c.cfg.bullets = glyphs
	}
}

// WithBaseURL resolves relative link and image references when converting
// markup strings or readers. Trees passed to Convert are used as given.
func WithBaseURL(raw string) Option {
	return func(c *Converter) {
		c.cfg.baseURL = raw
	}
}

// validateBulletGlyphs rejects glyphs that would match ordinary text.
func validateBulletGlyphs(glyphs string) error {
	if !utf8.ValidString(glyphs) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidBulletGlyphs)
	}
	for _, r := range glyphs {
		if unicode.IsSpace(r) || unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			return fmt.Errorf("%w: %q is not allowed", ErrInvalidBulletGlyphs, r)
		}
	}
	return nil
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return nil
	}
	if _, err := pipeline.ParseBaseURL(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	return nil
}

func mergeOverrides(dst, src Overrides) Overrides {
	out := Overrides{
		Elements:        make(map[string]ElementRenderer, len(dst.Elements)+len(src.Elements)),
		Nodes:           make(map[NodeKind]NodeRenderer, len(dst.Nodes)+len(src.Nodes)),
		ElementFallback: dst.ElementFallback,
		NodeFallback:    dst.NodeFallback,
	}
	for _, m := range []map[string]ElementRenderer{dst.Elements, src.Elements} {
		for tag, fn := range m {
			if fn != nil {
				out.Elements[tag] = fn
			}
		}
	}
	for _, m := range []map[NodeKind]NodeRenderer{dst.Nodes, src.Nodes} {
		for kind, fn := range m {
			if fn != nil {
				out.Nodes[kind] = fn
			}
		}
	}
	if src.ElementFallback != nil {
		out.ElementFallback = src.ElementFallback
	}
	if src.NodeFallback != nil {
		out.NodeFallback = src.NodeFallback
	}
	return out
}
