package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	html2md "github.com/alnah/go-html2md"
	"github.com/alnah/go-html2md/internal/fileutil"
)

// runTable exports a table from a file, URL or stdin as tab-separated values.
func runTable(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseTableFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printTableUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: table takes one file or URL", ErrUsage)
	}
	if flags.index < 0 {
		return fmt.Errorf("%w: --index must be >= 0", ErrUsage)
	}

	s, err := loadSettings(&flags.common, nil, env)
	if err != nil {
		return err
	}

	source := stdinName
	if len(positional) == 1 {
		source = positional[0]
	}

	root, err := loadTableSource(ctx, source, flags, s, env)
	if err != nil {
		return err
	}

	tables := root.FindAll("table")
	if flags.index >= len(tables) {
		return fmt.Errorf("%w: %d table(s) in %s, index %d", html2md.ErrNoTable, len(tables), source, flags.index)
	}
	tsv, err := html2md.TableToTSV(tables[flags.index])
	if err != nil {
		return err
	}

	result := ConversionResult{InputPath: source, OutputPath: flags.output, Markdown: tsv}
	if flags.output != "" {
		result.Err = writeOutput(flags.output, tsv+"\n")
	}
	return finishBatch(ctx, []ConversionResult{result}, flags.copy, s, env)
}

// loadTableSource parses the markup holding the table.
func loadTableSource(ctx context.Context, source string, flags *tableFlags, s *settings, env *Environment) (*html2md.Node, error) {
	if fileutil.IsURL(source) {
		opts, err := s.browserOptions(&flags.browser)
		if err != nil {
			return nil, err
		}
		pool := env.NewPool(1, opts...)
		defer func() {
			if err := pool.Close(); err != nil {
				s.logger.Warn("closing browser", "error", err)
			}
		}()

		b := pool.Acquire()
		if b == nil {
			return nil, ErrBrowserUnavailable
		}
		defer pool.Release(b)
		root, err := b.Snapshot(ctx, source, flags.selector)
		if err != nil {
			return nil, snapshotError(err, flags.selector)
		}
		return root, nil
	}

	if flags.selector != "" {
		return nil, fmt.Errorf("%w: --selector needs a URL; use --index for files", ErrUsage)
	}

	var r io.Reader = env.Stdin
	if source != stdinName {
		f, err := os.Open(source) // #nosec G304 -- user-supplied path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		defer f.Close()
		r = f
	}
	return html2md.Parse(r)
}
