package html2md

import "testing"

// ---------------------------------------------------------------------------
// TestNode - Accessors
// ---------------------------------------------------------------------------

func TestNode_Attr(t *testing.T) {
	t.Parallel()

	n := Element("A", []Attribute{{Name: "href", Value: "/x"}, {Name: "title", Value: ""}})

	if n.Tag != "a" {
		t.Errorf("Tag = %q, want lower-cased %q", n.Tag, "a")
	}
	if v, ok := n.Attr("href"); !ok || v != "/x" {
		t.Errorf("Attr(href) = %q, %v, want %q, true", v, ok, "/x")
	}
	if v, ok := n.Attr("title"); !ok || v != "" {
		t.Errorf("Attr(title) = %q, %v, want empty, true", v, ok)
	}
	if _, ok := n.Attr("rel"); ok {
		t.Error("Attr(rel) ok = true, want false")
	}
	if got := n.AttrOr("rel", "none"); got != "none" {
		t.Errorf("AttrOr(rel) = %q, want %q", got, "none")
	}
}

func TestNode_IsElement(t *testing.T) {
	t.Parallel()

	p := Element("p", nil)
	if !p.IsElement() || !p.IsElement("div", "p") || p.IsElement("div") {
		t.Error("IsElement() mismatch for <p>")
	}
	if Text("x").IsElement() {
		t.Error("Text().IsElement() = true, want false")
	}
	var nilNode *Node
	if nilNode.IsElement() {
		t.Error("nil.IsElement() = true, want false")
	}
}

func TestNode_TextContent(t *testing.T) {
	t.Parallel()

	n := Element("div", nil,
		Text("a"),
		&Node{Kind: KindComment, Text: "hidden"},
		Element("span", nil, Text("b"), Element("b", nil, Text("c"))),
	)
	if got := n.TextContent(); got != "abc" {
		t.Errorf("TextContent() = %q, want %q", got, "abc")
	}
	if got := Text("t").TextContent(); got != "t" {
		t.Errorf("Text.TextContent() = %q, want %q", got, "t")
	}
}

func TestNode_Find(t *testing.T) {
	t.Parallel()

	first := Element("td", nil, Text("1"))
	n := Element("table", nil, Element("tr", nil, first, Element("td", nil, Text("2"))))

	if got := n.Find("td"); got != first {
		t.Errorf("Find(td) = %v, want first cell", got)
	}
	if got := n.Find("th"); got != nil {
		t.Errorf("Find(th) = %v, want nil", got)
	}
	if got := len(n.FindAll("td")); got != 2 {
		t.Errorf("len(FindAll(td)) = %d, want 2", got)
	}
	if got := n.Find("table"); got != n {
		t.Error("Find(table) did not return the receiver")
	}
}

func TestNode_Clone(t *testing.T) {
	t.Parallel()

	orig := Element("p", []Attribute{{Name: "class", Value: "a"}}, Text("x"))
	c := orig.Clone()

	c.Attrs[0].Value = "b"
	c.Children[0].Text = "y"
	c.Children = append(c.Children, Text("z"))

	if orig.OuterHTML() != `<p class="a">x</p>` {
		t.Errorf("original changed after clone edit: %q", orig.OuterHTML())
	}
	if (*Node)(nil).Clone() != nil {
		t.Error("nil.Clone() != nil")
	}
}

// ---------------------------------------------------------------------------
// TestOuterHTML - Serialization
// ---------------------------------------------------------------------------

func TestNode_OuterHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			name: "nested elements",
			node: Element("p", nil, Text("a "), Element("b", nil, Text("b"))),
			want: "<p>a <b>b</b></p>",
		},
		{
			name: "void element",
			node: Element("img", []Attribute{{Name: "src", Value: "a.png"}, {Name: "alt", Value: `say "hi"`}}),
			want: `<img src="a.png" alt="say &quot;hi&quot;">`,
		},
		{
			name: "text escaped",
			node: Element("td", nil, Text("1 < 2 & 3 > 2")),
			want: "<td>1 &lt; 2 &amp; 3 &gt; 2</td>",
		},
		{
			name: "raw text element",
			node: Element("script", nil, Text("if (a < b) {}")),
			want: "<script>if (a < b) {}</script>",
		},
		{
			name: "comment",
			node: Element("div", nil, &Node{Kind: KindComment, Text: " c "}),
			want: "<div><!-- c --></div>",
		},
		{
			name: "non-breaking space",
			node: Element("span", nil, Text("a\u00a0b")),
			want: "<span>a&nbsp;b</span>",
		},
		{
			name: "fragment",
			node: Fragment(Element("br", nil), Text("x")),
			want: "<br>x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.node.OuterHTML(); got != tt.want {
				t.Errorf("OuterHTML() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNodeKind_String(t *testing.T) {
	t.Parallel()

	want := map[NodeKind]string{
		KindOther: "other", KindElement: "element", KindText: "text", KindComment: "comment",
		KindAttribute: "attribute", KindFragment: "fragment", KindDocument: "document",
	}
	for kind, name := range want {
		if got := kind.String(); got != name {
			t.Errorf("NodeKind(%d).String() = %q, want %q", kind, got, name)
		}
	}
}
