package pipeline

import (
	"context"
	"html"
	"strings"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// The stylesheet cannot close its own <style> element.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"

	if idx := strings.Index(strings.ToLower(htmlContent), "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}
	if pos, ok := afterBodyOpen(htmlContent); ok {
		return htmlContent[:pos] + styleBlock + htmlContent[pos:]
	}
	return styleBlock + htmlContent
}

// InjectSourceLink inserts a link back to source right after <body>.
// Empty sources leave the document unchanged.
func InjectSourceLink(ctx context.Context, htmlContent, source string) string {
	if source == "" || ctx.Err() != nil {
		return htmlContent
	}

	escaped := html.EscapeString(source)
	block := `<p class="html2md-source">Source: <a href="` + escaped + `">` + escaped + `</a></p>`

	if pos, ok := afterBodyOpen(htmlContent); ok {
		return htmlContent[:pos] + block + htmlContent[pos:]
	}
	return block + htmlContent
}

// afterBodyOpen returns the offset just past the opening <body ...> tag.
func afterBodyOpen(htmlContent string) (int, bool) {
	idx := strings.Index(strings.ToLower(htmlContent), "<body")
	if idx == -1 {
		return 0, false
	}
	closeIdx := strings.Index(htmlContent[idx:], ">")
	if closeIdx == -1 {
		return 0, false
	}
	return idx + closeIdx + 1, true
}

// sanitizeCSS escapes "</" so the stylesheet cannot end the <style> element early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
