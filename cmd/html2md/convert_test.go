package main

// Notes:
// - runConvert is exercised through runMain so exit codes are covered too.
// - Conversion details are tested in the root package; here we check
//   routing: stdin/stdout, files, directories, clipboard and config merging.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	html2md "github.com/alnah/go-html2md"
)

// ---------------------------------------------------------------------------
// TestConvert_Stdin - stdin to stdout
// ---------------------------------------------------------------------------

func TestConvert_Stdin(t *testing.T) {
	t.Parallel()

	te := newTestEnv(samplePage)
	if code := te.run("convert", "--no-front-matter"); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, te.stderr)
	}
	if got := te.stdout.String(); got != sampleMarkdown+"\n" {
		t.Errorf("stdout = %q, want %q", got, sampleMarkdown+"\n")
	}
}

func TestConvert_StdinDash(t *testing.T) {
	t.Parallel()

	te := newTestEnv(samplePage)
	if code := te.run("convert", "-", "--no-front-matter"); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, te.stderr)
	}
	if got := te.stdout.String(); got != sampleMarkdown+"\n" {
		t.Errorf("stdout = %q, want %q", got, sampleMarkdown+"\n")
	}
}

func TestConvert_FrontMatterFromJSONLD(t *testing.T) {
	t.Parallel()

	te := newTestEnv(jobPage)
	if code := te.run("convert"); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, te.stderr)
	}

	got := te.stdout.String()
	if !strings.HasPrefix(got, "---\n") {
		t.Fatalf("stdout does not start with front matter: %q", got)
	}
	for _, want := range []string{"title: Go Engineer", "company: Acme", "2026-09-30", "converted:", "2026-10-18"} {
		if !strings.Contains(got, want) {
			t.Errorf("stdout missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "source:") {
		t.Errorf("stdin conversion should have no source field:\n%s", got)
	}
	if !strings.HasSuffix(got, "# Go Engineer\n\nBuild things.\n") {
		t.Errorf("stdout body = %q, want converted page at the end", got)
	}
}

func TestConvert_BaseURL(t *testing.T) {
	t.Parallel()

	te := newTestEnv(`<p><a href="/jobs/1">Job</a></p>`)
	code := te.run("convert", "--no-front-matter", "--base-url", "https://example.com/")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, te.stderr)
	}
	want := "[Job](https://example.com/jobs/1)\n"
	if got := te.stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Files - File and directory inputs
// ---------------------------------------------------------------------------

func TestConvert_SingleFileNextToInput(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"page.html": samplePage})
	te := newTestEnv("")

	code := te.run("convert", filepath.Join(dir, "page.html"), "--no-front-matter")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, te.stderr)
	}
	if got := readFile(t, filepath.Join(dir, "page.md")); got != sampleMarkdown {
		t.Errorf("page.md = %q, want %q", got, sampleMarkdown)
	}
	if te.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty when writing files", te.stdout.String())
	}
	if !strings.Contains(te.stderr.String(), "Created ") {
		t.Errorf("stderr = %q, want a Created line", te.stderr.String())
	}
}

func TestConvert_SingleFileExplicitOutput(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"page.htm": samplePage})
	out := filepath.Join(dir, "nested", "result.md")
	te := newTestEnv("")

	code := te.run("convert", filepath.Join(dir, "page.htm"), "-o", out, "-q")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, te.stderr)
	}

	got := readFile(t, out)
	if !strings.HasPrefix(got, "---\n") || !strings.Contains(got, "source: ") {
		t.Errorf("result.md = %q, want front matter with source", got)
	}
	if !strings.HasSuffix(got, sampleMarkdown) {
		t.Errorf("result.md = %q, want body %q", got, sampleMarkdown)
	}
	if strings.Contains(te.stderr.String(), "Created") {
		t.Errorf("--quiet should suppress status lines, got %q", te.stderr.String())
	}
}

func TestConvert_DirectoryMirrored(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"in/a.html":     samplePage,
		"in/sub/b.htm":  "<p>B</p>",
		"in/notes.txt":  "ignored",
		"in/sub/c.json": "{}",
	})
	out := filepath.Join(dir, "out")
	te := newTestEnv("")

	code := te.run("convert", filepath.Join(dir, "in"), "-o", out, "--no-front-matter", "-w", "2")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, te.stderr)
	}
	if got := readFile(t, filepath.Join(out, "a.md")); got != sampleMarkdown {
		t.Errorf("a.md = %q, want %q", got, sampleMarkdown)
	}
	if got := readFile(t, filepath.Join(out, "sub", "b.md")); got != "B" {
		t.Errorf("sub/b.md = %q, want %q", got, "B")
	}
	if _, err := os.Stat(filepath.Join(out, "notes.md")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("notes.txt should not be converted, stat err = %v", err)
	}
	if !strings.Contains(te.stderr.String(), "2 succeeded, 0 failed") {
		t.Errorf("stderr = %q, want summary", te.stderr.String())
	}
}

func TestConvert_ShortcutWithoutCommand(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"page.html": samplePage})
	te := newTestEnv("")

	if code := te.run(filepath.Join(dir, "page.html"), "--no-front-matter"); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, te.stderr)
	}
	if got := readFile(t, filepath.Join(dir, "page.md")); got != sampleMarkdown {
		t.Errorf("page.md = %q, want %q", got, sampleMarkdown)
	}
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"notes.txt":  "text",
		"empty/x.md": "# md",
	})

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"wrong extension", []string{"convert", filepath.Join(dir, "notes.txt")}, ExitUsage},
		{"missing file", []string{"convert", filepath.Join(dir, "missing.html")}, ExitIO},
		{"directory without HTML", []string{"convert", filepath.Join(dir, "empty")}, ExitIO},
		{"too many workers", []string{"convert", "-w", "99"}, ExitUsage},
		{"negative workers", []string{"convert", "-w", "-1"}, ExitUsage},
		{"unknown flag", []string{"convert", "--nope"}, ExitUsage},
		{"malformed renderer", []string{"convert", "--renderer", "aside"}, ExitUsage},
		{"unknown strategy", []string{"convert", "--renderer", "aside=shout"}, ExitUsage},
		{"letter bullets", []string{"convert", "--bullets", "ab"}, ExitUsage},
		{"relative base URL", []string{"convert", "--base-url", "/docs"}, ExitUsage},
		{"missing config", []string{"convert", "-c", filepath.Join(dir, "none.yaml")}, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(samplePage)
			if code := te.run(tt.args...); code != tt.want {
				t.Errorf("exit code = %d, want %d; stderr: %s", code, tt.want, te.stderr)
			}
			if !strings.Contains(te.stderr.String(), "error: ") {
				t.Errorf("stderr = %q, want an error line", te.stderr.String())
			}
		})
	}
}

func TestConvert_UnknownStrategyHint(t *testing.T) {
	t.Parallel()

	te := newTestEnv(samplePage)
	te.run("convert", "--renderer", "aside=shout")
	if !strings.Contains(te.stderr.String(), "hint: renderers accept:") {
		t.Errorf("stderr = %q, want strategy hint", te.stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Config - Config file and flags
// ---------------------------------------------------------------------------

func TestConvert_ConfigRenderersAndFlagsMerge(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"work.yaml": "converter:\n  renderers:\n    b: transparent\nfrontMatter:\n  enabled: false\n",
	})
	te := newTestEnv(`<div><h2>Title</h2><p>Hello <b>world</b> <i>now</i></p></div>`)

	code := te.run("convert", "-c", filepath.Join(dir, "work.yaml"), "--renderer", "i=transparent")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, te.stderr)
	}
	want := "## Title\n\nHello world now\n"
	if got := te.stdout.String(); got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestConvert_HelpFlag(t *testing.T) {
	t.Parallel()

	te := newTestEnv("")
	if code := te.run("convert", "--help"); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(te.stdout.String(), "Usage: html2md convert") {
		t.Errorf("stdout = %q, want convert usage", te.stdout.String())
	}
}

// ---------------------------------------------------------------------------
// TestConvert_Clipboard - --copy and fallbacks
// ---------------------------------------------------------------------------

func TestConvert_CopyToClipboard(t *testing.T) {
	t.Parallel()

	te := newTestEnv(samplePage)
	if code := te.run("convert", "--no-front-matter", "--copy"); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, te.stderr)
	}
	if te.clipboard.text != sampleMarkdown {
		t.Errorf("clipboard = %q, want %q", te.clipboard.text, sampleMarkdown)
	}
	if !strings.Contains(te.stderr.String(), "Copied to clipboard") {
		t.Errorf("stderr = %q, want copy confirmation", te.stderr.String())
	}
}

func TestConvert_ClipboardFailurePrintsMarkdown(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"page.html": samplePage})
	te := newTestEnv("")
	te.clipboard.err = html2md.ErrClipboardUnavailable

	code := te.run("convert", filepath.Join(dir, "page.html"), "--no-front-matter", "--copy")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d (clipboard failures only warn)", code, ExitSuccess)
	}
	if got := te.stdout.String(); got != sampleMarkdown+"\n" {
		t.Errorf("stdout = %q, want the Markdown as fallback", got)
	}
	if !strings.Contains(te.stderr.String(), "warning: ") || !strings.Contains(te.stderr.String(), "hint: ") {
		t.Errorf("stderr = %q, want warning with hint", te.stderr.String())
	}
}

func TestConvert_ClipboardFromConfig(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"clip.yaml": "clipboard:\n  enabled: true\n  command: \"xsel --clipboard --input\"\nfrontMatter:\n  enabled: false\n",
	})
	te := newTestEnv(samplePage)

	if code := te.run("convert", "-c", filepath.Join(dir, "clip.yaml")); code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, te.stderr)
	}
	if te.clipboard.text != sampleMarkdown {
		t.Errorf("clipboard = %q, want %q", te.clipboard.text, sampleMarkdown)
	}
	if te.clipboard.command != "xsel --clipboard --input" {
		t.Errorf("clipboard command = %q, want configured command", te.clipboard.command)
	}
}
