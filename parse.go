package html2md

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-html2md/internal/pipeline"
)

// ParseOptions configures markup parsing.
type ParseOptions struct {
	// BaseURL, when set, resolves relative a[href] and img[src] values to absolute URLs.
	BaseURL string
}

// Parse reads markup from r and returns a KindDocument root holding its nodes.
// Full documents (starting with <!doctype or <html) are parsed as such;
// anything else is parsed as a body fragment.
func Parse(r io.Reader) (*Node, error) {
	return ParseWithOptions(r, ParseOptions{})
}

// ParseString is Parse for an in-memory string.
func ParseString(markup string) (*Node, error) {
	return ParseWithOptions(strings.NewReader(markup), ParseOptions{})
}

// ParseWithOptions parses markup from r applying opts.
func ParseWithOptions(r io.Reader, opts ParseOptions) (*Node, error) {
	doc, err := pipeline.ReadMarkup(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return snapshotDocument(doc, opts)
}

// parseElement parses the outer HTML of a single element and returns that
// element. When the parser drops its tag, the whole parsed fragment is returned.
func parseElement(markup string, opts ParseOptions) (*Node, error) {
	doc, tag, err := pipeline.ParseElement(markup)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	root, err := snapshotDocument(doc, opts)
	if err != nil {
		return nil, err
	}
	for _, c := range root.Children {
		if tag != "" && c.IsElement(tag) {
			return c, nil
		}
	}
	return root, nil
}

func snapshotDocument(doc *html.Node, opts ParseOptions) (*Node, error) {
	if opts.BaseURL != "" {
		base, err := pipeline.ParseBaseURL(opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
		}
		pipeline.RewriteRelativeURLs(doc, base)
	}

	return FromHTMLNode(doc), nil
}

// FromHTMLNode returns an isolated snapshot of a golang.org/x/net/html tree.
// The snapshot shares no memory with n, so later changes to n are not observed.
func FromHTMLNode(n *html.Node) *Node {
	if n == nil {
		return nil
	}

	out := &Node{Kind: kindOf(n.Type)}
	switch n.Type {
	case html.ElementNode:
		out.Tag = strings.ToLower(n.Data)
		out.Attrs = snapshotAttrs(n.Attr)
	case html.TextNode, html.CommentNode:
		out.Text = n.Data
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out.Children = append(out.Children, FromHTMLNode(c))
	}
	return out
}

// kindOf maps x/net/html node types onto node kinds.
func kindOf(t html.NodeType) NodeKind {
	switch t {
	case html.ElementNode:
		return KindElement
	case html.TextNode:
		return KindText
	case html.CommentNode:
		return KindComment
	case html.DocumentNode:
		return KindDocument
	default:
		return KindOther
	}
}

// snapshotAttrs copies attributes, keeping the first occurrence of each name.
func snapshotAttrs(attrs []html.Attribute) []Attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attribute, 0, len(attrs))
	seen := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, Attribute{Name: name, Value: a.Val})
	}
	return out
}
