package main

// Notes:
// - Test infrastructure shared by the command tests: fakes for the clipboard,
//   the browser pool and the picker, and an Environment wired to buffers.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	html2md "github.com/alnah/go-html2md"
	"github.com/alnah/go-html2md/internal/assets"
	"github.com/alnah/go-html2md/internal/config"
)

// fixedNow is the clock of every test environment.
var fixedNow = time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

// fakeClipboard records writes.
type fakeClipboard struct {
	mu      sync.Mutex
	text    string
	command string
	calls   int
	err     error
}

func (f *fakeClipboard) Write(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

// fakeSnapshotter serves canned markup per URL.
type fakeSnapshotter struct {
	pages map[string]string
	err   error
}

func (f *fakeSnapshotter) Snapshot(_ context.Context, url, selector string) (*html2md.Node, error) {
	if f.err != nil {
		return nil, f.err
	}
	markup, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("%w: %s", html2md.ErrPageLoad, url)
	}
	root, err := html2md.ParseWithOptions(strings.NewReader(markup), html2md.ParseOptions{BaseURL: url})
	if err != nil || selector == "" {
		return root, err
	}
	n := root.Find(selector)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", html2md.ErrSelectorNotFound, selector)
	}
	return html2md.Fragment(n.Clone()), nil
}

// fakePool hands out one shared fakeSnapshotter.
type fakePool struct {
	mu     sync.Mutex
	snap   Snapshotter
	size   int
	opts   int
	closed bool
}

func (p *fakePool) Acquire() Snapshotter { return p.snap }
func (p *fakePool) Release(Snapshotter)  {}
func (p *fakePool) Size() int            { return p.size }
func (p *fakePool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// fakePicker returns a canned pick.
type fakePicker struct {
	node   *html2md.Node
	err    error
	page   *html2md.Node // nil: Document fails
	url    string
	closed bool
}

func (p *fakePicker) Pick(context.Context) (*html2md.Node, error) { return p.node, p.err }
func (p *fakePicker) Document(context.Context) (*html2md.Node, error) {
	if p.page == nil {
		return nil, html2md.ErrPageLoad
	}
	return p.page, nil
}
func (p *fakePicker) Close() error {
	p.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// Test environment
// ---------------------------------------------------------------------------

// testEnv is an Environment plus handles on its fakes.
type testEnv struct {
	*Environment
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	clipboard *fakeClipboard
	snap      *fakeSnapshotter
	pool      *fakePool
	picker    *fakePicker
}

// newTestEnv builds an environment with buffers, fakes, and stdin content.
func newTestEnv(stdin string) *testEnv {
	te := &testEnv{
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
		clipboard: &fakeClipboard{},
		snap:      &fakeSnapshotter{pages: map[string]string{}},
		picker:    &fakePicker{},
	}
	te.Environment = &Environment{
		Now:         func() time.Time { return fixedNow },
		Stdin:       strings.NewReader(stdin),
		Stdout:      te.stdout,
		Stderr:      te.stderr,
		AssetLoader: assets.NewEmbeddedLoader(),
		Config:      config.DefaultConfig(),
		Clipboard: func(command string) html2md.ClipboardWriter {
			te.clipboard.command = command
			return te.clipboard
		},
		NewPool: func(size int, opts ...html2md.BrowserOption) Pool {
			te.pool = &fakePool{snap: te.snap, size: size, opts: len(opts)}
			return te.pool
		},
		NewPicker: func(_ context.Context, url string, _ []html2md.BrowserOption, _ html2md.Logger) (PickSession, error) {
			te.picker.url = url
			return te.picker, nil
		},
	}
	return te
}

// run invokes runMain with "html2md" prepended.
func (te *testEnv) run(args ...string) int {
	return runMain(append([]string{"html2md"}, args...), te.Environment)
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		full := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	return dir
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// samplePage converts to sampleMarkdown.
const (
	samplePage     = `<div><h2>Title</h2><p>Hello <b>world</b></p></div>`
	sampleMarkdown = "## Title\n\nHello **world**"
)

// jobPage carries JSON-LD posting metadata.
const jobPage = `<!doctype html><html><head><title>Jobs</title>
<script type="application/ld+json">{"@type":"JobPosting","title":"Go Engineer",
"hiringOrganization":{"name":"Acme"},"datePosted":"2026-09-30"}</script>
</head><body><h1>Go Engineer</h1><p>Build things.</p></body></html>`
