package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-html2md/internal/pipeline"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2md <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert HTML files, directories or stdin to Markdown")
	fmt.Fprintln(w, "  fetch       Load web pages in Chrome and convert them")
	fmt.Fprintln(w, "  pick        Click an element on a page and convert it")
	fmt.Fprintln(w, "  table       Export an HTML table as tab-separated values")
	fmt.Fprintln(w, "  preview     Render Markdown as a styled HTML page")
	fmt.Fprintln(w, "  doctor      Check Chrome, clipboard and environment")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'html2md help <command>' for details on a specific command.")
}

// printCommonFlags prints flags shared by every converting command.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed output")
	fmt.Fprintln(w)
}

// printConverterFlags prints Markdown conversion flags.
func printConverterFlags(w io.Writer) {
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "      --base-url <url>      Resolve relative links and images against URL")
	fmt.Fprintln(w, "      --bullets <glyphs>    Bullet characters rewritten to \"- \" (default \"·•‣◦\")")
	fmt.Fprintln(w, "      --renderer <t=s>      Render tag t with strategy s (repeatable)")
	fmt.Fprintln(w, "                            Strategies: block, transparent, elide, preserve, ...")
	fmt.Fprintln(w)
}

// printOutputFlags prints output destination flags.
func printOutputFlags(w io.Writer, dest string) {
	fmt.Fprintln(w, "Output:")
	fmt.Fprintf(w, "  -o, --output <path>       %s\n", dest)
	fmt.Fprintln(w, "      --copy                Copy the Markdown to the clipboard")
	fmt.Fprintln(w, "      --no-front-matter     Omit the YAML front matter")
	fmt.Fprintln(w)
}

// printBrowserFlags prints Chrome flags.
func printBrowserFlags(w io.Writer) {
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "      --browser-bin <path>  Chrome/Chromium binary (or ROD_BROWSER_BIN)")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Page load timeout (default 30s)")
	fmt.Fprintln(w)
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2md convert [<input>...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert HTML to Markdown. Without input, or with \"-\", reads stdin")
	fmt.Fprintln(w, "and writes stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .html/.htm/.xhtml files or directories")
	fmt.Fprintln(w)
	printCommonFlags(w)
	printConverterFlags(w)
	printOutputFlags(w, "Output .md file (single input) or directory")
	fmt.Fprintln(w, "Performance:")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  html2md convert page.html")
	fmt.Fprintln(w, "  html2md convert ./saved/ -o ./notes/")
	fmt.Fprintln(w, "  curl -s https://example.com | html2md convert --base-url https://example.com")
}

// printFetchUsage prints usage for the fetch command.
func printFetchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2md fetch <url>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Load pages in headless Chrome and convert the rendered document.")
	fmt.Fprintln(w, "A single URL without --output prints to stdout.")
	fmt.Fprintln(w)
	printCommonFlags(w)
	printConverterFlags(w)
	printOutputFlags(w, "Output .md file (single URL) or directory")
	printBrowserFlags(w)
	fmt.Fprintln(w, "Selection:")
	fmt.Fprintln(w, "  -s, --selector <css>      Convert only the first matching element")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel browsers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  html2md fetch https://jobs.example.com/123 -s main")
	fmt.Fprintln(w, "  html2md fetch https://a.example https://b.example -o ./notes/")
}

// printPickUsage prints usage for the pick command.
func printPickUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2md pick <url> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Open the page in a Chrome window; hover to outline elements, click one")
	fmt.Fprintln(w, "to convert it, press Escape to cancel (exit code 5).")
	fmt.Fprintln(w)
	printCommonFlags(w)
	printConverterFlags(w)
	printOutputFlags(w, "Output .md file (default: stdout)")
	printBrowserFlags(w)
}

// printTableUsage prints usage for the table command.
func printTableUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2md table [<file>|<url>] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export a table as tab-separated values. Reads stdin without input.")
	fmt.Fprintln(w)
	printCommonFlags(w)
	fmt.Fprintln(w, "Selection:")
	fmt.Fprintln(w, "  -i, --index <n>           Table to export, counting from 0")
	fmt.Fprintln(w, "  -s, --selector <css>      Scope the page before counting (URLs only)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w, "      --copy                Copy the TSV to the clipboard")
	fmt.Fprintln(w)
	printBrowserFlags(w)
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2md preview [<file>] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render Markdown as a styled HTML page and print its path. HTML input")
	fmt.Fprintln(w, "is converted first, so the page shows what the conversion kept.")
	fmt.Fprintln(w)
	printCommonFlags(w)
	printConverterFlags(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output HTML file (default: temp file)")
	fmt.Fprintln(w, "      --title <s>           Page title")
	fmt.Fprintln(w, "      --style <name>        Stylesheet: preview, plain")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with custom styles/<name>.css")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Terminal:")
	fmt.Fprintln(w, "      --terminal            Print styled text to stdout instead of HTML")
	fmt.Fprintf(w, "      --theme <name>        Theme: %s (default %q)\n", strings.Join(pipeline.TerminalThemes, ", "), pipeline.DefaultTerminalTheme)
	fmt.Fprintf(w, "      --width <n>           Wrap width (default: terminal width, else %d)\n", defaultTerminalWidth)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2md doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, clipboard tools and the environment.")
	fmt.Fprintln(w, "Exit code 1 when errors are found.")
}

// runHelp prints help for a command, or the main usage.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "fetch":
		printFetchUsage(env.Stdout)
	case "pick":
		printPickUsage(env.Stdout)
	case "table":
		printTableUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: html2md version")
	default:
		fmt.Fprintf(env.Stderr, "unknown command %q\n\n", args[0])
		printUsage(env.Stderr)
	}
}
