package html2md

// WrapFlags records which inline marks are already applied on the current path.
type WrapFlags uint8

// Inline mark kinds.
const (
	WrapBold WrapFlags = 1 << iota
	WrapItalic
	WrapUnderline
)

// Has reports whether every bit of f is set in w.
func (w WrapFlags) Has(f WrapFlags) bool {
	return w&f == f
}

// String lists the set flags, for diagnostics.
func (w WrapFlags) String() string {
	if w == 0 {
		return "none"
	}
	s := ""
	for _, f := range []struct {
		flag WrapFlags
		name string
	}{{WrapBold, "bold"}, {WrapItalic, "italic"}, {WrapUnderline, "underline"}} {
		if w.Has(f.flag) {
			if s != "" {
				s += "|"
			}
			s += f.name
		}
	}
	return s
}

// Indent steps.
const (
	listIndent  = "  "
	quoteIndent = "> "
)

// State is the formatting state threaded through rendering.
// It is a value type: every With* method returns a derived copy.
type State struct {
	Indent string    // printed after every line break
	Prefix string    // marker for the next list item
	Wrap   WrapFlags // inline marks applied by ancestors
}

// InitialState is the state a top-level conversion starts from.
func InitialState() State {
	return State{Prefix: "- "}
}

// WithIndent returns a copy with extra appended to the indent.
func (s State) WithIndent(extra string) State {
	s.Indent += extra
	return s
}

// WithPrefix returns a copy with the list item prefix replaced.
func (s State) WithPrefix(prefix string) State {
	s.Prefix = prefix
	return s
}

// WithWrap returns a copy with f added to the wrap flags. Flags are never cleared.
func (s State) WithWrap(f WrapFlags) State {
	s.Wrap |= f
	return s
}

// Newline is a line break followed by the indent.
func (s State) Newline() string {
	return "\n" + s.Indent
}

// Separator is the blank-line separator placed around block content.
func (s State) Separator() string {
	nl := s.Newline()
	return nl + nl
}
