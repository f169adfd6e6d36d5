package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-html2md/internal/fileutil"
	"github.com/alnah/go-html2md/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrInvalidExtension = errors.New("file must have .html, .htm or .xhtml extension")
	ErrReadInput        = errors.New("failed to read input")
	ErrWriteOutput      = errors.New("failed to write output")
	ErrBatchFailed      = errors.New("some conversions failed")
)

// ConversionResult holds the outcome of a single conversion.
// An empty OutputPath means the Markdown goes to stdout.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Markdown   string
	Err        error
	Duration   time.Duration
}

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// runBatch calls work for every input with up to workers goroutines.
// Results keep input order; inputs not started before ctx ends get ctx.Err().
func runBatch(ctx context.Context, workers int, inputs []string, work func(ctx context.Context, idx int) ConversionResult) []ConversionResult {
	if len(inputs) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(inputs))
	results := make([]ConversionResult, len(inputs))
	jobs := make(chan int, len(inputs))

	var wg sync.WaitGroup
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{InputPath: inputs[idx], Err: ctx.Err()}
					continue
				}
				start := time.Now()
				r := work(ctx, idx)
				r.Duration = time.Since(start)
				results[idx] = r
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// discoverFiles expands inputs into HTML files to convert. Directories are
// walked recursively and mirrored under outputDir.
func discoverFiles(inputs []string, outputDir string) ([]FileToConvert, error) {
	var files []FileToConvert
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if !fileutil.IsHTML(input) {
				return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(input))
			}
			out := resolveOutputPath(input, outputDir, "", len(inputs) == 1)
			files = append(files, FileToConvert{InputPath: input, OutputPath: out})
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() || !fileutil.IsHTML(path) {
				return nil
			}
			out := resolveOutputPath(path, outputDir, input, false)
			files = append(files, FileToConvert{InputPath: path, OutputPath: out})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// resolveOutputPath determines the Markdown path for an HTML file. An
// outputDir ending in .md or .markdown names the file itself when single is true.
func resolveOutputPath(inputPath, outputDir, baseInputDir string, single bool) string {
	if outputDir == "" {
		return fileutil.MarkdownPath(inputPath, "")
	}

	if single && fileutil.IsMarkdownPath(outputDir) {
		return outputDir
	}

	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return fileutil.MarkdownPath(inputPath, filepath.Join(outputDir, filepath.Dir(rel)))
		}
	}
	return fileutil.MarkdownPath(inputPath, outputDir)
}

// uniqueURLPaths names one Markdown file per URL inside dir, suffixing
// repeated slugs with -2, -3 and so on.
func uniqueURLPaths(urls []string, dir string) []string {
	seen := make(map[string]int, len(urls))
	paths := make([]string, len(urls))
	for i, u := range urls {
		slug := fileutil.SlugFromURL(u)
		seen[slug]++
		if n := seen[slug]; n > 1 {
			slug = fmt.Sprintf("%s-%d", slug, n)
		}
		paths[i] = filepath.Join(dir, slug+".md")
	}
	return paths
}

// writeOutput writes content to path, creating parent directories.
func writeOutput(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	// #nosec G306 -- Markdown files are meant to be readable
	if err := os.WriteFile(path, []byte(content), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults writes stdout-bound Markdown to env.Stdout and status lines
// to env.Stderr. It returns the number of failures.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			// A lone failure is returned to runMain, which prints it.
			if len(results) > 1 {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			}
			continue
		}

		if r.OutputPath == "" {
			fmt.Fprintln(env.Stdout, r.Markdown)
			continue
		}

		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stderr, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stderr, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stderr, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// finishBatch prints results, copies a lone result to the clipboard when
// asked, and reports failures as ErrBatchFailed.
func finishBatch(ctx context.Context, results []ConversionResult, copyFlag bool, s *settings, env *Environment) error {
	failed := printResults(results, s.quiet, s.verbose, env)

	if copyFlag || s.cfg.Clipboard.Enabled {
		if ok := successes(results); len(ok) == 1 {
			copyToClipboard(ctx, ok[0].Markdown, ok[0].OutputPath == "", s, env)
		} else if copyFlag && len(ok) > 1 {
			fmt.Fprintln(env.Stderr, "warning: --copy ignored for more than one result")
		}
	}

	if failed > 0 {
		if len(results) == 1 {
			return results[0].Err
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %d of %d: %w", ErrBatchFailed, failed, len(results), err)
		}
		return fmt.Errorf("%w: %d of %d", ErrBatchFailed, failed, len(results))
	}
	return nil
}

func successes(results []ConversionResult) []ConversionResult {
	var ok []ConversionResult
	for _, r := range results {
		if r.Err == nil {
			ok = append(ok, r)
		}
	}
	return ok
}

// copyToClipboard writes text to the clipboard. On failure the text is
// printed instead, unless printed already, so it can be copied by hand.
func copyToClipboard(ctx context.Context, text string, printed bool, s *settings, env *Environment) {
	cb := env.Clipboard(s.cfg.Clipboard.Command)
	if err := cb.Write(ctx, text); err != nil {
		fmt.Fprintf(env.Stderr, "warning: %v%s\n", err, hints.ForClipboard())
		if !printed {
			fmt.Fprintln(env.Stdout, text)
		}
		return
	}
	if !s.quiet {
		fmt.Fprintln(env.Stderr, "Copied to clipboard")
	}
}

// looksLikeHTML reports whether arg names an HTML file, for the
// "html2md page.html" shortcut.
func looksLikeHTML(arg string) bool {
	return !strings.HasPrefix(arg, "-") && fileutil.IsHTML(arg)
}
