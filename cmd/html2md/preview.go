package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/alnah/go-html2md/internal/assets"
	"github.com/alnah/go-html2md/internal/fileutil"
	"github.com/alnah/go-html2md/internal/hints"
	"github.com/alnah/go-html2md/internal/pipeline"
)

// runPreview renders Markdown (or an HTML file after conversion) as a styled
// HTML page and prints where it was written, or with --terminal prints
// styled text directly.
func runPreview(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePreviewFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printPreviewUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: preview takes one file", ErrUsage)
	}
	if flags.terminal && flags.output != "" {
		return fmt.Errorf("%w: --terminal prints to stdout, drop --output", ErrUsage)
	}
	if flags.width < 0 {
		return fmt.Errorf("%w: --width must be positive, got %d", ErrUsage, flags.width)
	}

	s, err := loadSettings(&flags.common, &flags.converter, env)
	if err != nil {
		return err
	}

	source := stdinName
	if len(positional) == 1 {
		source = positional[0]
	}
	markdown, err := previewMarkdown(source, s, env)
	if err != nil {
		return err
	}

	if flags.terminal {
		width := flags.width
		if width == 0 {
			width = terminalWidth(env.Stdout)
		}
		text, err := pipeline.RenderTerminal(markdown, flags.theme, width)
		if err != nil {
			if errors.Is(err, pipeline.ErrUnknownTheme) {
				return fmt.Errorf("%w%s", err, hints.ForUnknownTheme(pipeline.TerminalThemes))
			}
			return err
		}
		_, err = io.WriteString(env.Stdout, text)
		return err
	}

	css, err := loadPreviewStyle(flags, env)
	if err != nil {
		return err
	}

	link := ""
	if fileutil.IsHTML(source) {
		link = source
	}
	page, err := pipeline.RenderPreview(ctx, pipeline.NewGoldmarkConverter(), markdown, pipeline.PreviewOptions{
		Title:  flags.title,
		CSS:    css,
		Source: link,
	})
	if err != nil {
		return err
	}

	path := flags.output
	if path == "" {
		// Kept after exit so a browser can open it.
		if path, _, err = fileutil.WriteTempFile(page, "html"); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	} else if err := writeOutput(path, page); err != nil {
		return err
	}

	fmt.Fprintln(env.Stdout, path)
	return nil
}

// previewMarkdown reads source, converting it first when it is HTML.
func previewMarkdown(source string, s *settings, env *Environment) (string, error) {
	var r io.Reader = env.Stdin
	if source != stdinName {
		f, err := os.Open(source) // #nosec G304 -- user-supplied path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		defer f.Close()
		r = f
	}

	if fileutil.IsHTML(source) {
		return convertReader(r, source, s, nil, env)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return string(data), nil
}

// terminalWidth returns the column count of w when it is a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultTerminalWidth
	}
	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 {
		return defaultTerminalWidth
	}
	return cols
}

// loadPreviewStyle loads the stylesheet, from --asset-path first when set.
func loadPreviewStyle(flags *previewFlags, env *Environment) (string, error) {
	loader := env.AssetLoader
	if flags.assetPath != "" {
		resolver, err := assets.NewAssetResolver(flags.assetPath)
		if err != nil {
			return "", err
		}
		loader = resolver
	}

	name := flags.style
	if name == "" {
		name = assets.DefaultStyleName
	}
	css, err := loader.LoadStyle(name)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return "", fmt.Errorf("%w%s", err, hints.ForStyleNotFound(assets.StyleNames()))
		}
		return "", err
	}
	return css, nil
}
