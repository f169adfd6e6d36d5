package pipeline

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrMarkupParse indicates the markup could not be parsed.
var ErrMarkupParse = errors.New("markup parsing failed")

// MaxMarkupSize limits markup input to prevent memory exhaustion (default 32MB).
var MaxMarkupSize int64 = 32 << 20

// ParseMarkup parses HTML content, handling both full documents and fragments.
// The returned node is always an html.DocumentNode: full documents are returned
// as parsed, fragments are parsed in a <body> context and wrapped in a container
// so callers can traverse both uniformly.
func ParseMarkup(content string) (*html.Node, error) {
	if isFullDocument(content) {
		doc, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMarkupParse, err)
		}
		return doc, nil
	}

	return parseFragment(content, atom.Body)
}

// ParseElement parses the outer HTML of one element taken from a live page.
// The fragment context is chosen from the element's own tag, so table parts
// and body keep their tags. It also returns that tag ("" when content does
// not start with an element).
func ParseElement(content string) (doc *html.Node, tag string, err error) {
	tag = leadingTag(content)
	if tag == "html" || isFullDocument(content) {
		doc, err = ParseMarkup(content)
		return doc, tag, err
	}
	doc, err = parseFragment(content, contextFor(tag))
	return doc, tag, err
}

// parseFragment parses content as children of a ctx element and wraps the
// resulting nodes in a document container.
func parseFragment(content string, ctx atom.Atom) (*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: ctx,
		Data:     ctx.String(),
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMarkupParse, err)
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// contextFor returns the parent element an element with tag can be parsed in.
func contextFor(tag string) atom.Atom {
	switch tag {
	case "td", "th":
		return atom.Tr
	case "tr":
		return atom.Tbody
	case "thead", "tbody", "tfoot", "caption", "colgroup":
		return atom.Table
	case "col":
		return atom.Colgroup
	case "head", "body", "frameset":
		return atom.Html
	default:
		return atom.Body
	}
}

// leadingTag returns the name of the first start tag in content, skipping
// comments, doctypes and blank text.
func leadingTag(content string) string {
	z := html.NewTokenizer(strings.NewReader(content))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			return string(name)
		case html.TextToken:
			if strings.TrimSpace(string(z.Text())) != "" {
				return ""
			}
		}
	}
}

// ReadMarkup reads at most MaxMarkupSize bytes from r and parses them with ParseMarkup.
func ReadMarkup(r io.Reader) (*html.Node, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxMarkupSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading input: %v", ErrMarkupParse, err)
	}
	if int64(len(data)) > MaxMarkupSize {
		return nil, fmt.Errorf("%w: input exceeds %d bytes", ErrMarkupParse, MaxMarkupSize)
	}
	return ParseMarkup(string(data))
}

// isFullDocument reports whether content starts like a complete HTML document.
func isFullDocument(content string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(content))
	return strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html")
}
