package html2md

import (
	"strings"
	"unicode/utf8"
)

// Renderer strategies. Each is an ElementRenderer (or NodeRenderer) that can be
// placed in a Registry under any tag.

const ruleWidth = 80

// crlf normalizes line endings in raw text.
var crlf = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// textEscapes are applied to text content so it survives as literal Markdown.
var textEscapes = strings.NewReplacer("\r\n", "\n", "\r", "\n", "*", `\*`)

// Heading renders h1 through h6. Levels outside 1..6 are clamped.
func Heading(level int) ElementRenderer {
	level = min(max(level, 1), 6)
	marker := strings.Repeat("#", level) + " "
	return func(w *Walker, n *Node, s State) string {
		return s.Separator() + marker + strings.TrimSpace(w.WalkJoined(n, s)) + s.Separator()
	}
}

// Block renders a block container. Lines whose first glyph is a configured
// bullet are rewritten as list items.
func Block(w *Walker, n *Node, s State) string {
	return s.Separator() + w.rewriteBullets(w.WalkJoined(n, s), s) + s.Separator()
}

func (w *Walker) rewriteBullets(text string, s State) string {
	if w.bullets == "" || !strings.ContainsAny(text, w.bullets) {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		rest := strings.TrimLeft(strings.TrimPrefix(line, s.Indent), " \t\u00a0")
		r, size := utf8.DecodeRuneInString(rest)
		if size == 0 || !w.isBullet(r) {
			continue
		}
		lines[i] = s.Indent + "- " + strings.TrimLeft(rest[size:], " \t\u00a0")
	}
	return strings.Join(lines, "\n")
}

// Pre renders preformatted text as a fenced code block. The text content is
// kept verbatim apart from line-ending normalization. A language-* class on
// the element or its code child becomes the info string.
func Pre(w *Walker, n *Node, s State) string {
	code := strings.TrimSuffix(crlf.Replace(n.TextContent()), "\n")
	fence := strings.Repeat("`", max(3, longestRun(code, '`')+1))
	body := strings.ReplaceAll(code, "\n", s.Newline())
	return s.Separator() + fence + codeLanguage(n) + s.Newline() + body + s.Newline() + fence + s.Separator()
}

func codeLanguage(n *Node) string {
	for _, el := range []*Node{n, n.Find("code")} {
		if el == nil || el.Kind != KindElement {
			continue
		}
		for _, class := range strings.Fields(el.AttrOr("class", "")) {
			if lang, ok := strings.CutPrefix(class, "language-"); ok && lang != "" {
				return lang
			}
			if lang, ok := strings.CutPrefix(class, "lang-"); ok && lang != "" {
				return lang
			}
		}
	}
	return ""
}

// Code renders inline code from the raw text content.
func Code(w *Walker, n *Node, s State) string {
	text := crlf.Replace(n.TextContent())
	run := longestRun(text, '`')
	if run == 0 {
		return "`" + text + "`"
	}
	fence := strings.Repeat("`", run+1)
	return fence + " " + text + " " + fence
}

func longestRun(s string, c byte) int {
	longest, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			cur++
			longest = max(longest, cur)
			continue
		}
		cur = 0
	}
	return longest
}

// Emphasis wraps inline content in marker unless an ancestor already applied flag,
// in which case the content passes through unmarked. Surrounding whitespace
// stays outside the markers.
func Emphasis(flag WrapFlags, marker string) ElementRenderer {
	return func(w *Walker, n *Node, s State) string {
		if s.Wrap.Has(flag) {
			return w.WalkJoined(n, s)
		}
		inner := w.WalkJoined(n, s.WithWrap(flag))
		trimmed := strings.TrimSpace(inner)
		if trimmed == "" {
			return inner
		}
		lead := inner[:strings.Index(inner, trimmed)]
		trail := inner[len(lead)+len(trimmed):]
		return lead + marker + trimmed + marker + trail
	}
}

// Link renders an anchor as [inner](href).
func Link(w *Walker, n *Node, s State) string {
	return "[" + w.WalkJoined(n, s) + "](" + n.AttrOr("href", "") + ")"
}

// Image renders an image reference padded with single spaces.
func Image(w *Walker, n *Node, s State) string {
	return " ![" + n.AttrOr("alt", "") + "](" + n.AttrOr("src", "") + ") "
}

// List renders ul or ol children with prefix as the item marker.
// Items that render blank are dropped.
func List(prefix string) ElementRenderer {
	return func(w *Walker, n *Node, s State) string {
		var b strings.Builder
		for _, item := range w.Walk(n, s.WithPrefix(prefix)) {
			item = strings.TrimRight(item, " \t\n")
			if strings.TrimSpace(item) == "" {
				continue
			}
			b.WriteString(item)
		}
		return s.Separator() + b.String() + s.Separator()
	}
}

// ListItem renders one item on a new line with the current prefix. Its content
// is indented one step so nested blocks stay inside the item.
func ListItem(w *Walker, n *Node, s State) string {
	inner := s.WithIndent(listIndent)
	body := trimLeadingBlankLines(w.WalkJoined(n, inner))
	body = strings.TrimLeft(strings.TrimPrefix(body, inner.Indent), " \t")
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return s.Newline() + s.Prefix + body
}

// Blockquote renders its content with every line prefixed by "> ".
// A quote with no content renders nothing.
func Blockquote(w *Walker, n *Node, s State) string {
	inner := s.WithIndent(quoteIndent)
	body := w.WalkJoined(n, inner)
	if strings.TrimSpace(strings.ReplaceAll(body, inner.Newline(), "\n")) == "" {
		return ""
	}
	return s.Separator() + inner.Newline() + body + s.Separator()
}

// HorizontalRule renders a thematic break.
func HorizontalRule(w *Walker, n *Node, s State) string {
	return s.Separator() + strings.Repeat("-", ruleWidth) + s.Separator()
}

// LineBreak renders br as a paragraph break.
func LineBreak(w *Walker, n *Node, s State) string {
	return s.Separator()
}

// Elide drops the element and its subtree.
func Elide(w *Walker, n *Node, s State) string {
	return ""
}

// Preserve passes the element through as markup, unchanged.
func Preserve(w *Walker, n *Node, s State) string {
	return n.OuterHTML()
}

// Transparent renders only the children.
func Transparent(w *Walker, n *Node, s State) string {
	return w.WalkJoined(n, s)
}

// FrameWarning drops an embedded frame and reports it through the logger.
func FrameWarning(w *Walker, n *Node, s State) string {
	w.Logger().Warn("embedded frame skipped", "tag", n.Tag, "src", n.AttrOr("src", ""))
	return ""
}

// TextNode renders text with line endings normalized and asterisks escaped.
// Source indentation after a line break is dropped: Markdown would read it as
// an indented code block.
func TextNode(n *Node) string {
	text := textEscapes.Replace(n.Text)
	if !strings.Contains(text, "\n") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = strings.TrimLeft(lines[i], " \t")
	}
	return strings.Join(lines, "\n")
}

// ElideNode drops a non-element node.
func ElideNode(n *Node) string {
	return ""
}
