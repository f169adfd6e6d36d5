package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	html2md "github.com/alnah/go-html2md"
)

// runPick opens a URL in a visible browser, lets the user click an element,
// and converts that element.
func runPick(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePickFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printPickUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: pick needs exactly one URL", ErrUsage)
	}
	url := positional[0]
	if err := validateURLs(positional); err != nil {
		return err
	}

	s, err := loadSettings(&flags.common, &flags.converter, env)
	if err != nil {
		return err
	}
	opts, err := s.browserOptions(&flags.browser)
	if err != nil {
		return err
	}

	session, err := env.NewPicker(ctx, url, opts, s.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			s.logger.Warn("closing picker", "error", err)
		}
	}()

	if !s.quiet {
		fmt.Fprintln(env.Stderr, "Click an element to convert it, or press Escape to cancel.")
	}
	node, err := session.Pick(ctx)
	if err != nil {
		return err
	}

	md, err := s.document(pageMetadata(ctx, session, node, s.logger), s.converter.ConvertNode(node), url, &flags.output, env.Now())
	result := ConversionResult{InputPath: url, OutputPath: flags.output.output, Markdown: md, Err: err}
	if err == nil && result.OutputPath != "" {
		result.Err = writeOutput(result.OutputPath, md)
	}
	return finishBatch(ctx, []ConversionResult{result}, flags.output.copy, s, env)
}

// pageMetadata returns the whole page for front matter lookups, since JSON-LD
// blocks rarely sit inside the picked element. It falls back to the element.
func pageMetadata(ctx context.Context, session PickSession, picked *html2md.Node, logger html2md.Logger) *html2md.Node {
	doc, err := session.Document(ctx)
	if err != nil {
		logger.Debug("reading page metadata", "error", err)
		return picked
	}
	return doc
}
