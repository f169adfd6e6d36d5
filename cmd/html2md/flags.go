package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-html2md/internal/pipeline"
)

// ErrUsage wraps flag parsing and argument errors.
var ErrUsage = errors.New("invalid usage")

// defaultTerminalWidth applies when stdout is not a terminal.
const defaultTerminalWidth = 80

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// converterFlags holds Markdown conversion flags.
type converterFlags struct {
	baseURL   string
	bullets   string
	renderers []string // tag=strategy
}

// outputFlags holds output destination flags.
type outputFlags struct {
	output        string
	copy          bool
	noFrontMatter bool
}

// browserFlags holds Chrome flags.
type browserFlags struct {
	bin     string
	timeout time.Duration
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	converter converterFlags
	output    outputFlags
	workers   int
}

// fetchFlags holds all flags for the fetch command.
type fetchFlags struct {
	common    commonFlags
	converter converterFlags
	output    outputFlags
	browser   browserFlags
	selector  string
	workers   int
}

// pickFlags holds all flags for the pick command.
type pickFlags struct {
	common    commonFlags
	converter converterFlags
	output    outputFlags
	browser   browserFlags
}

// tableFlags holds all flags for the table command.
type tableFlags struct {
	common   commonFlags
	browser  browserFlags
	output   string
	copy     bool
	selector string
	index    int
}

// previewFlags holds all flags for the preview command.
type previewFlags struct {
	common    commonFlags
	converter converterFlags
	output    string
	style     string
	assetPath string
	title     string
	terminal  bool
	theme     string
	width     int
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed output")
}

func addConverterFlags(fs *flag.FlagSet, f *converterFlags) {
	fs.StringVar(&f.baseURL, "base-url", "", "resolve relative links against this URL")
	fs.StringVar(&f.bullets, "bullets", "", "bullet glyphs rewritten to list markers")
	fs.StringArrayVar(&f.renderers, "renderer", nil, "override a tag renderer (tag=strategy, repeatable)")
}

func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.BoolVar(&f.copy, "copy", false, "copy the Markdown to the clipboard")
	fs.BoolVar(&f.noFrontMatter, "no-front-matter", false, "omit the YAML front matter")
}

func addBrowserFlags(fs *flag.FlagSet, f *browserFlags) {
	fs.StringVar(&f.bin, "browser-bin", "", "Chrome/Chromium binary")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "page load timeout (e.g. 30s, 2m)")
}

// newFlagSet creates a FlagSet that reports errors to the caller instead of printing.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := newFlagSet("convert")
	addCommonFlags(fs, &f.common)
	addConverterFlags(fs, &f.converter)
	addOutputFlags(fs, &f.output)
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	return fs
}

func newFetchFlagSet(f *fetchFlags) *flag.FlagSet {
	fs := newFlagSet("fetch")
	addCommonFlags(fs, &f.common)
	addConverterFlags(fs, &f.converter)
	addOutputFlags(fs, &f.output)
	addBrowserFlags(fs, &f.browser)
	fs.StringVarP(&f.selector, "selector", "s", "", "CSS selector of the element to convert")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel browsers (0 = auto)")
	return fs
}

func newPickFlagSet(f *pickFlags) *flag.FlagSet {
	fs := newFlagSet("pick")
	addCommonFlags(fs, &f.common)
	addConverterFlags(fs, &f.converter)
	addOutputFlags(fs, &f.output)
	addBrowserFlags(fs, &f.browser)
	return fs
}

func newTableFlagSet(f *tableFlags) *flag.FlagSet {
	fs := newFlagSet("table")
	addCommonFlags(fs, &f.common)
	addBrowserFlags(fs, &f.browser)
	fs.StringVarP(&f.output, "output", "o", "", "output TSV file")
	fs.BoolVar(&f.copy, "copy", false, "copy the TSV to the clipboard")
	fs.StringVarP(&f.selector, "selector", "s", "", "CSS selector scoping the page (URLs only)")
	fs.IntVarP(&f.index, "index", "i", 0, "which table to export, counting from 0")
	return fs
}

func newPreviewFlagSet(f *previewFlags) *flag.FlagSet {
	fs := newFlagSet("preview")
	addCommonFlags(fs, &f.common)
	addConverterFlags(fs, &f.converter)
	fs.StringVarP(&f.output, "output", "o", "", "output HTML file (default: temp file)")
	fs.StringVar(&f.style, "style", "", "preview stylesheet name")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom styles/")
	fs.StringVar(&f.title, "title", "", "page title")
	fs.BoolVar(&f.terminal, "terminal", false, "render in the terminal instead of HTML")
	fs.StringVar(&f.theme, "theme", pipeline.DefaultTerminalTheme, "terminal theme")
	fs.IntVar(&f.width, "width", 0, "terminal wrap width (default: terminal width)")
	return fs
}

// parseArgs parses args with fs, wrapping failures in ErrUsage.
// flag.ErrHelp is returned unwrapped so callers can print command help.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	positional, err := parseArgs(newConvertFlagSet(f), args)
	return f, positional, err
}

func parseFetchFlags(args []string) (*fetchFlags, []string, error) {
	f := &fetchFlags{}
	positional, err := parseArgs(newFetchFlagSet(f), args)
	return f, positional, err
}

func parsePickFlags(args []string) (*pickFlags, []string, error) {
	f := &pickFlags{}
	positional, err := parseArgs(newPickFlagSet(f), args)
	return f, positional, err
}

func parseTableFlags(args []string) (*tableFlags, []string, error) {
	f := &tableFlags{}
	positional, err := parseArgs(newTableFlagSet(f), args)
	return f, positional, err
}

func parsePreviewFlags(args []string) (*previewFlags, []string, error) {
	f := &previewFlags{}
	positional, err := parseArgs(newPreviewFlagSet(f), args)
	return f, positional, err
}
