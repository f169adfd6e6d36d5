package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	html2md "github.com/alnah/go-html2md"
)

// stdinName labels stdin input in results and front matter.
const stdinName = "-"

// runConvert converts local HTML files, directories or stdin.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printConvertUsage(env.Stdout)
		return nil
	}
	if err != nil {
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

	if len(positional) == 0 || (len(positional) == 1 && positional[0] == stdinName) {
		return convertStdin(ctx, flags, s, env)
	}

	outDir := flags.output.output
	if outDir == "" {
		outDir = s.cfg.Output.DefaultDir
	}
	files, err := discoverFiles(positional, outDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no HTML files found in %v", ErrNoInput, positional)
	}

	inputs := make([]string, len(files))
	for i, f := range files {
		inputs[i] = f.InputPath
	}

	s.logger.Debug("converting", "files", len(files), "workers", html2md.ResolvePoolSize(workers))
	results := runBatch(ctx, html2md.ResolvePoolSize(workers), inputs, func(_ context.Context, idx int) ConversionResult {
		return convertFile(files[idx], s, &flags.output, env)
	})
	return finishBatch(ctx, results, flags.output.copy, s, env)
}

// convertFile converts one HTML file and writes its Markdown.
func convertFile(f FileToConvert, s *settings, out *outputFlags, env *Environment) ConversionResult {
	result := ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath}

	file, err := os.Open(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadInput, err)
		return result
	}
	defer file.Close()

	md, err := convertReader(file, f.InputPath, s, out, env)
	if err != nil {
		result.Err = err
		return result
	}
	result.Markdown = md

	if err := writeOutput(f.OutputPath, md); err != nil {
		result.Err = err
	}
	return result
}

// convertStdin converts stdin to stdout, or to --output when given.
func convertStdin(ctx context.Context, flags *convertFlags, s *settings, env *Environment) error {
	md, err := convertReader(env.Stdin, stdinName, s, &flags.output, env)
	result := ConversionResult{InputPath: stdinName, OutputPath: flags.output.output, Markdown: md, Err: err}
	if err == nil && result.OutputPath != "" {
		result.Err = writeOutput(result.OutputPath, md)
	}
	return finishBatch(ctx, []ConversionResult{result}, flags.output.copy, s, env)
}

// convertReader parses markup from r and renders the Markdown document.
func convertReader(r io.Reader, source string, s *settings, out *outputFlags, env *Environment) (string, error) {
	root, err := html2md.ParseWithOptions(r, html2md.ParseOptions{BaseURL: s.cfg.Converter.BaseURL})
	if err != nil {
		return "", err
	}
	if source == stdinName {
		source = ""
	}
	return s.render(root, source, out, env.Now())
}
