package pipeline

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/glamour"
)

var (
	ErrUnknownTheme   = errors.New("unknown terminal theme")
	ErrTerminalRender = errors.New("terminal rendering failed")
)

// DefaultTerminalTheme picks dark or light from the terminal background.
const DefaultTerminalTheme = "auto"

// TerminalThemes lists the accepted themes. "notty" emits plain text.
var TerminalThemes = []string{DefaultTerminalTheme, "dark", "light", "notty", "ascii"}

// RenderTerminal renders markdown as styled terminal text wrapped at width
// columns (0 disables wrapping). Front matter is dropped like in the HTML
// preview.
func RenderTerminal(markdown, theme string, width int) (string, error) {
	if theme == "" {
		theme = DefaultTerminalTheme
	}
	if !slices.Contains(TerminalThemes, theme) {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if theme == DefaultTerminalTheme {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(theme))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTerminalRender, err)
	}

	_, body := SplitFrontMatter(markdown)
	out, err := r.Render(PreparePreview(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTerminalRender, err)
	}
	return out, nil
}
