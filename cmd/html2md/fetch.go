package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	html2md "github.com/alnah/go-html2md"
	"github.com/alnah/go-html2md/internal/fileutil"
	"github.com/alnah/go-html2md/internal/hints"
)

// Sentinel errors for browser-backed commands.
var (
	ErrInvalidURL         = errors.New("not an http(s) URL")
	ErrBrowserUnavailable = errors.New("no browser available")
)

// runFetch loads URLs in headless Chrome and converts the rendered pages.
func runFetch(ctx context.Context, args []string, env *Environment) error {
	flags, urls, err := parseFetchFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printFetchUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("%w: fetch needs at least one URL", ErrNoInput)
	}
	if err := validateURLs(urls); err != nil {
		return err
	}

	s, err := loadSettings(&flags.common, &flags.converter, env)
	if err != nil {
		return err
	}
	workers, err := s.resolveWorkers(flags.workers)
	if err != nil {
		return err
	}
	opts, err := s.browserOptions(&flags.browser)
	if err != nil {
		return err
	}

	outputs := fetchOutputPaths(urls, flags.output.output, s.cfg.Output.DefaultDir)

	pool := env.NewPool(min(html2md.ResolvePoolSize(workers), len(urls)), opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			s.logger.Warn("closing browsers", "error", err)
		}
	}()

	s.logger.Debug("fetching", "urls", len(urls), "browsers", pool.Size())
	results := runBatch(ctx, pool.Size(), urls, func(ctx context.Context, idx int) ConversionResult {
		return fetchURL(ctx, pool, urls[idx], outputs[idx], flags, s, env)
	})
	return finishBatch(ctx, results, flags.output.copy, s, env)
}

// fetchURL snapshots one page and writes or returns its Markdown.
func fetchURL(ctx context.Context, pool Pool, url, output string, flags *fetchFlags, s *settings, env *Environment) ConversionResult {
	result := ConversionResult{InputPath: url, OutputPath: output}

	b := pool.Acquire()
	if b == nil {
		result.Err = ErrBrowserUnavailable
		return result
	}
	defer pool.Release(b)

	root, err := b.Snapshot(ctx, url, flags.selector)
	if err != nil {
		result.Err = snapshotError(err, flags.selector)
		return result
	}

	md, err := s.render(root, url, &flags.output, env.Now())
	if err != nil {
		result.Err = err
		return result
	}
	result.Markdown = md

	if output != "" {
		result.Err = writeOutput(output, md)
	}
	return result
}

// snapshotError adds the selector hint when the selector matched nothing.
func snapshotError(err error, selector string) error {
	if errors.Is(err, html2md.ErrSelectorNotFound) {
		return fmt.Errorf("%w%s", err, hints.ForSelectorNotFound(selector))
	}
	return err
}

// fetchOutputPaths decides where each page goes. A single URL without an
// output prints to stdout; otherwise files are named after the URL.
func fetchOutputPaths(urls []string, output, defaultDir string) []string {
	if output == "" {
		output = defaultDir
	}
	if output == "" {
		if len(urls) == 1 {
			return []string{""}
		}
		output = "."
	}
	if len(urls) == 1 && fileutil.IsMarkdownPath(output) {
		return []string{output}
	}
	return uniqueURLPaths(urls, output)
}

// validateURLs rejects anything but http(s) URLs.
func validateURLs(urls []string) error {
	for _, u := range urls {
		if !fileutil.IsURL(u) {
			return fmt.Errorf("%w: %q", ErrInvalidURL, u)
		}
	}
	return nil
}
