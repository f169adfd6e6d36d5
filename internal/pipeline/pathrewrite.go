package pipeline

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// urlAttributes lists the attributes rewritten per element.
// Only attributes the Markdown renderer reads are touched.
var urlAttributes = map[string]string{
	"a":   "href",
	"img": "src",
}

// ParseBaseURL parses and validates a base URL used for rewriting.
// The base must be absolute (have a scheme).
func ParseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("base URL %q is not absolute", raw)
	}
	return u, nil
}

// RewriteRelativeURLs resolves relative link and image references against base,
// the way a browser exposes them through a.href and img.src.
// If base is nil, the tree is left unchanged.
//
// Rewrites:
//   - img[src]
//   - a[href]
//
// Does NOT rewrite:
//   - fragment-only links (#section), which stay page-local
//   - empty or unparsable values
//   - srcset, CSS url() references, script[src]
func RewriteRelativeURLs(doc *html.Node, base *url.URL) {
	if doc == nil || base == nil {
		return
	}
	rewriteNode(doc, base)
}

// rewriteNode traverses the DOM and rewrites relative references.
func rewriteNode(n *html.Node, base *url.URL) {
	if n.Type == html.ElementNode {
		if attr, ok := urlAttributes[n.Data]; ok {
			rewriteAttr(n, attr, base)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, base)
	}
}

// rewriteAttr rewrites a single attribute if it holds a relative reference.
func rewriteAttr(n *html.Node, attrName string, base *url.URL) {
	for i, attr := range n.Attr {
		if attr.Key != attrName {
			continue
		}
		if !isRelativeReference(attr.Val) {
			continue
		}
		ref, err := url.Parse(strings.TrimSpace(attr.Val))
		if err != nil {
			continue // leave unparsable values alone
		}
		n.Attr[i].Val = base.ResolveReference(ref).String()
	}
}

// isRelativeReference returns true if the value should be resolved against a base.
func isRelativeReference(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") {
		return false
	}

	// Skip anything carrying its own scheme (http, https, file, data, mailto, javascript)
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return false
	}

	return true
}
