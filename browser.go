package html2md

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-html2md/internal/process"
)

// defaultPageTimeout bounds page loads when the context has no deadline.
const defaultPageTimeout = 30 * time.Second

// Browser drives a Chrome instance through go-rod. It backs page snapshots
// and the interactive element picker. Rod downloads Chromium on first use
// if no browser is found.
type Browser struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	headless bool
	bin      string
	timeout  time.Duration
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithHeadless controls whether the browser window is hidden. Picking requires a visible window.
func WithHeadless(headless bool) BrowserOption {
	return func(b *Browser) {
		b.headless = headless
	}
}

// WithBrowserBin uses a specific Chrome binary instead of ROD_BROWSER_BIN or auto-detection.
func WithBrowserBin(path string) BrowserOption {
	return func(b *Browser) {
		b.bin = path
	}
}

// WithPageTimeout sets the page load timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithPageTimeout(d time.Duration) BrowserOption {
	if d <= 0 {
		panic("html2md: WithPageTimeout duration must be positive")
	}
	return func(b *Browser) {
		b.timeout = d
	}
}

// NewBrowser creates a Browser. Chrome is launched lazily on first use.
func NewBrowser(opts ...BrowserOption) *Browser {
	b := &Browser{headless: true, timeout: defaultPageTimeout}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ensureBrowser lazily launches and connects to the browser.
func (b *Browser) ensureBrowser() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		return b.browser, nil
	}

	l := launcher.New().Headless(b.headless)

	// Use pre-installed browser if specified (Docker/containerized environments)
	bin := b.bin
	if bin == "" {
		bin = os.Getenv("ROD_BROWSER_BIN")
	}
	if bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || bin != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		killLauncher(l)
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b.browser = browser
	b.launcher = l
	return browser, nil
}

// Close releases browser resources, including orphaned Chrome child processes.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.launcher != nil {
		killLauncher(b.launcher)
		b.launcher = nil
	}
	return err
}

func killLauncher(l *launcher.Launcher) {
	if pid := l.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	l.Kill()
	l.Cleanup()
}

// openPage creates a page at url bound to ctx and waits for it to load.
// The caller must close the page.
func (b *Browser) openPage(ctx context.Context, url string) (*rod.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := b.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	timeout := b.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			_ = page.Close()
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Context(ctx).Timeout(timeout).WaitLoad(); err != nil {
		_ = page.Close()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrPageLoad, url, err)
	}
	return page, nil
}

// Snapshot loads url and returns an isolated snapshot of the element matched
// by selector, or of the whole document when selector is empty. Relative
// links and images are resolved against the page URL.
func (b *Browser) Snapshot(ctx context.Context, url, selector string) (*Node, error) {
	page, err := b.openPage(ctx, url)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	markup, err := pageMarkup(page.Context(ctx), selector)
	if err != nil {
		return nil, err
	}

	base := url
	if info, err := page.Info(); err == nil && info.URL != "" {
		base = info.URL
	}
	return snapshotMarkup(markup, base)
}

func pageMarkup(page *rod.Page, selector string) (string, error) {
	if selector == "" {
		markup, err := page.HTML()
		if err != nil {
			return "", fmt.Errorf("%w: reading document: %v", ErrPageLoad, err)
		}
		return markup, nil
	}

	found, el, err := page.Has(selector)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrSelectorNotFound, selector, err)
	}
	if !found {
		return "", fmt.Errorf("%w: %q", ErrSelectorNotFound, selector)
	}
	markup, err := el.HTML()
	if err != nil {
		return "", fmt.Errorf("%w: reading %q: %v", ErrPageLoad, selector, err)
	}
	return markup, nil
}

// snapshotMarkup parses outer HTML taken from a page. Non-absolute bases
// (about:blank and friends) are ignored rather than failing the snapshot.
func snapshotMarkup(markup, base string) (*Node, error) {
	return ParseWithOptions(strings.NewReader(markup), snapshotOptions(base))
}

func snapshotOptions(base string) ParseOptions {
	if strings.Contains(base, "://") {
		return ParseOptions{BaseURL: base}
	}
	return ParseOptions{}
}
