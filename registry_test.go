package html2md

import (
	"errors"
	"slices"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRegistry - Dispatch Tables
// ---------------------------------------------------------------------------

func TestDefaultRegistry_Handles(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()
	for _, tag := range []string{"h1", "h6", "p", "div", "pre", "code", "b", "strong", "em", "i", "a", "img",
		"ul", "ol", "li", "blockquote", "hr", "br", "table", "figure", "picture", "script", "style", "iframe"} {
		if !r.Handles(tag) {
			t.Errorf("Handles(%q) = false, want true", tag)
		}
	}
	for _, tag := range []string{"span", "custom-el", "h7"} {
		if r.Handles(tag) {
			t.Errorf("Handles(%q) = true, want false (fallback)", tag)
		}
	}
}

func TestRegistry_Fallbacks(t *testing.T) {
	t.Parallel()

	r := DefaultRegistry()
	w := NewWalker(r, nil)
	span := Element("span", nil, Text("x"))

	if got := r.Element("span")(w, span, InitialState()); got != "x" {
		t.Errorf("Element(span) rendered %q, want transparent %q", got, "x")
	}
	for _, kind := range []NodeKind{KindComment, KindAttribute, KindFragment, KindDocument, KindOther} {
		if got := r.Node(kind)(&Node{Kind: kind, Text: "x"}); got != "" {
			t.Errorf("Node(%v) rendered %q, want empty", kind, got)
		}
	}
	if got := r.Node(KindText)(Text("*")); got != `\*` {
		t.Errorf("Node(text) rendered %q, want %q", got, `\*`)
	}
}

func TestRegistry_MergeDoesNotModifyReceiver(t *testing.T) {
	t.Parallel()

	base := DefaultRegistry()
	merged := base.Merge(Overrides{Elements: map[string]ElementRenderer{"span": Elide, "p": nil}})

	if base.Handles("span") {
		t.Error("base.Handles(span) = true after Merge, want false")
	}
	if !merged.Handles("span") {
		t.Error("merged.Handles(span) = false, want true")
	}
	if !merged.Handles("p") {
		t.Error("nil override removed p, want it ignored")
	}
	if merged == base {
		t.Error("Merge() returned the receiver")
	}
}

func TestRegistry_Tags(t *testing.T) {
	t.Parallel()

	tags := DefaultRegistry().Tags()
	if !slices.IsSorted(tags) {
		t.Errorf("Tags() not sorted: %v", tags)
	}
	if !slices.Contains(tags, "blockquote") {
		t.Errorf("Tags() missing blockquote: %v", tags)
	}
}

func TestOverrides_IsEmpty(t *testing.T) {
	t.Parallel()

	if !(Overrides{}).IsEmpty() {
		t.Error("Overrides{}.IsEmpty() = false, want true")
	}
	if (Overrides{NodeFallback: ElideNode}).IsEmpty() {
		t.Error("IsEmpty() = true with NodeFallback set, want false")
	}
}

// ---------------------------------------------------------------------------
// TestStrategyByName - Named Strategies
// ---------------------------------------------------------------------------

func TestStrategyByName(t *testing.T) {
	t.Parallel()

	w := NewWalker(nil, nil)
	n := Element("x", nil, Text("v"))

	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{name: "block", want: "\n\nv\n\n"},
		{name: " Bold ", want: "**v**"},
		{name: "italic", want: "_v_"},
		{name: "elide", want: ""},
		{name: "transparent", want: "v"},
		{name: "preserve", want: "<x>v</x>"},
		{name: "h3", want: "\n\n### v\n\n"},
		{name: "code", want: "`v`"},
		{name: "nope", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fn, err := StrategyByName(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownStrategy) {
					t.Fatalf("StrategyByName(%q) error = %v, want ErrUnknownStrategy", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("StrategyByName(%q) unexpected error: %v", tt.name, err)
			}
			if got := fn(w, n, InitialState()); got != tt.want {
				t.Errorf("StrategyByName(%q) rendered %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestOverridesFromNames(t *testing.T) {
	t.Parallel()

	o, err := OverridesFromNames(map[string]string{"Aside": "block", "table": "elide"})
	if err != nil {
		t.Fatalf("OverridesFromNames() unexpected error: %v", err)
	}
	got := mustConvert(t, `<aside>a</aside><table><tr><td>x</td></tr></table>`, WithOverrides(o))
	if got != "a" {
		t.Errorf("ConvertString() = %q, want %q", got, "a")
	}

	if _, err := OverridesFromNames(map[string]string{"aside": "sideways"}); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("OverridesFromNames() error = %v, want ErrUnknownStrategy", err)
	}
}
