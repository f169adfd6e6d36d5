// Package pipeline holds the markup plumbing around the converter.
//
// Input side:
//   - Bounded reading and parsing of HTML documents and fragments (x/net/html)
//   - Resolution of relative link and image references against a base URL
//
// Preview side:
//   - Front matter removal and blank-line compression of converted Markdown
//   - Markdown to HTML rendering via Goldmark, with chroma code highlighting
//   - Stylesheet and source-link injection into the preview document
//
// The root html2md package owns the Markdown rendering itself; this package
// never inspects node semantics beyond URL attributes.
package pipeline
