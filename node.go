package html2md

import "strings"

// NodeKind is the structural category of a Node.
type NodeKind int

// Node kinds.
const (
	KindOther NodeKind = iota
	KindElement
	KindText
	KindComment
	KindAttribute
	KindFragment
	KindDocument
)

// String returns the lower-case kind name.
func (k NodeKind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindAttribute:
		return "attribute"
	case KindFragment:
		return "fragment"
	case KindDocument:
		return "document"
	default:
		return "other"
	}
}

// Attribute is a single name/value pair on an element.
type Attribute struct {
	Name  string
	Value string
}

// Node is a read-only document tree node.
//
// Trees are owned by the caller. The converter only reads them; use Clone or
// FromHTMLNode to work on an isolated copy of a tree that may change underneath.
type Node struct {
	Kind     NodeKind
	Tag      string      // lower-cased, elements only
	Attrs    []Attribute // unique names, source order
	Children []*Node
	Text     string // text and comment content
}

// Element builds an element node. Tag is lower-cased.
func Element(tag string, attrs []Attribute, children ...*Node) *Node {
	return &Node{
		Kind:     KindElement,
		Tag:      strings.ToLower(tag),
		Attrs:    attrs,
		Children: children,
	}
}

// Text builds a text node.
func Text(s string) *Node {
	return &Node{Kind: KindText, Text: s}
}

// Fragment builds a fragment node holding children.
func Fragment(children ...*Node) *Node {
	return &Node{Kind: KindFragment, Children: children}
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the named attribute value, or fallback when absent.
func (n *Node) AttrOr(name, fallback string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return fallback
}

// IsElement reports whether n is an element with one of the given tags.
// With no tags, it reports whether n is an element at all.
func (n *Node) IsElement(tags ...string) bool {
	if n == nil || n.Kind != KindElement {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if n.Tag == t {
			return true
		}
	}
	return false
}

// TextContent returns the concatenated text of n and its descendants,
// mirroring the DOM textContent property. Comments are excluded.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if n.Kind == KindText {
		return n.Text
	}
	var b strings.Builder
	n.appendText(&b)
	return b.String()
}

func (n *Node) appendText(b *strings.Builder) {
	for _, c := range n.Children {
		switch c.Kind {
		case KindText:
			b.WriteString(c.Text)
		case KindComment:
		default:
			c.appendText(b)
		}
	}
}

// Find returns the first element with the given tag at or below n, in document order.
func (n *Node) Find(tag string) *Node {
	if n == nil {
		return nil
	}
	if n.IsElement(tag) {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(tag); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every element with the given tag at or below n, in document order.
func (n *Node) FindAll(tag string) []*Node {
	var out []*Node
	n.collect(tag, &out)
	return out
}

func (n *Node) collect(tag string, out *[]*Node) {
	if n == nil {
		return
	}
	if n.IsElement(tag) {
		*out = append(*out, n)
	}
	for _, c := range n.Children {
		c.collect(tag, out)
	}
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Kind: n.Kind, Tag: n.Tag, Text: n.Text}
	if n.Attrs != nil {
		c.Attrs = make([]Attribute, len(n.Attrs))
		copy(c.Attrs, n.Attrs)
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// voidElements never have children or closing tags.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// rawTextElements hold text that is serialized without escaping.
var rawTextElements = map[string]bool{
	"script": true, "style": true, "xmp": true, "iframe": true,
	"noembed": true, "noframes": true, "plaintext": true,
}

// OuterHTML serializes n as markup. Output is deterministic: attributes keep
// their order, text is escaped, and void elements have no closing tag.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	n.writeHTML(&b, false)
	return b.String()
}

func (n *Node) writeHTML(b *strings.Builder, raw bool) {
	switch n.Kind {
	case KindText:
		if raw {
			b.WriteString(n.Text)
		} else {
			b.WriteString(textEscaper.Replace(n.Text))
		}
	case KindComment:
		b.WriteString("<!--")
		b.WriteString(n.Text)
		b.WriteString("-->")
	case KindElement:
		b.WriteByte('<')
		b.WriteString(n.Tag)
		for _, a := range n.Attrs {
			b.WriteByte(' ')
			b.WriteString(a.Name)
			b.WriteString(`="`)
			b.WriteString(escapeAttr(a.Value))
			b.WriteByte('"')
		}
		b.WriteByte('>')
		if voidElements[n.Tag] {
			return
		}
		for _, c := range n.Children {
			c.writeHTML(b, rawTextElements[n.Tag])
		}
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteByte('>')
	default:
		for _, c := range n.Children {
			c.writeHTML(b, raw)
		}
	}
}

// Escaping follows the HTML serialization algorithm used by browsers for outerHTML.
var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\u00a0", "&nbsp;")
	attrEscaper = strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", "\u00a0", "&nbsp;")
)

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
