package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-html2md/internal/yamlutil"
)

// ErrHTMLConversion indicates Markdown to HTML rendering failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultPreviewTitle is used when a preview has no title.
const DefaultPreviewTitle = "html2md preview"

// previewTemplate wraps Goldmark's fragment output in a complete HTML5 document.
const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
<main class="html2md-preview">
%s
</main>
</body>
</html>`

// HTMLConverter abstracts Markdown to HTML rendering.
type HTMLConverter interface {
	ToHTML(ctx context.Context, markdown, title string) (string, error)
}

// GoldmarkConverter renders Markdown with goldmark (pure Go).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and
// chroma syntax highlighting for fenced code.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
			// Raw HTML the converter preserved (tables, figures) is shown as-is.
			gmhtml.WithUnsafe(),
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML renders markdown to a standalone HTML5 document titled title.
// Goldmark has no context support, so rendering runs in a goroutine and
// the caller stops waiting on cancellation.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, markdown, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if title == "" {
		title = DefaultPreviewTitle
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(markdown), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: fmt.Sprintf(previewTemplate, html.EscapeString(title), buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// PreviewOptions configures RenderPreview.
type PreviewOptions struct {
	Title  string // document title; front matter title or DefaultPreviewTitle when empty
	CSS    string // stylesheet injected into <head>
	Source string // original URL or path, linked above the content
}

// RenderPreview prepares converted Markdown and renders it as a styled
// HTML page. Front matter is dropped from the body and only supplies a
// default title. Blank runs are compressed before conv runs.
func RenderPreview(ctx context.Context, conv HTMLConverter, markdown string, opts PreviewOptions) (string, error) {
	front, body := SplitFrontMatter(markdown)
	title := opts.Title
	if title == "" {
		title = frontMatterTitle(front)
	}
	page, err := conv.ToHTML(ctx, PreparePreview(body), title)
	if err != nil {
		return "", err
	}
	injector := &CSSInjection{}
	page = injector.InjectCSS(ctx, page, opts.CSS)
	page = InjectSourceLink(ctx, page, opts.Source)
	return page, nil
}

// frontMatterTitle returns the title key of a front matter block.
// Malformed blocks yield "".
func frontMatterTitle(front string) string {
	if front == "" {
		return ""
	}
	var meta struct {
		Title string `yaml:"title"`
	}
	if err := yamlutil.Unmarshal([]byte(front), &meta); err != nil {
		return ""
	}
	return meta.Title
}
