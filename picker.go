package html2md

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"

	"github.com/alnah/go-html2md/internal/assets"
)

// Picker lets a user choose an element interactively.
// Pick returns an isolated snapshot of the chosen element, or ErrPickCancelled.
// The snapshot is the element itself, or a KindDocument holding its content
// when the element cannot stand alone.
type Picker interface {
	Pick(ctx context.Context) (*Node, error)
}

// scriptPage is the part of a browser page the picker drives.
type scriptPage interface {
	// Await evaluates a function expression returning a promise of a string.
	Await(ctx context.Context, js string) (string, error)
	// Run evaluates a function expression, ignoring its result.
	Run(ctx context.Context, js string) error
	// URL is the current page address.
	URL() string
}

// cleanupScript removes the picker's listeners and outline if still installed.
const cleanupScript = `() => { const p = window.__html2mdPicker; if (p) { p.cleanup(); } }`

// pickCancelledMessage is the rejection message of the picker script.
const pickCancelledMessage = "html2md: pick cancelled"

// documentScript reads the whole page as it is now.
const documentScript = `() => Promise.resolve(document.documentElement.outerHTML)`

// cleanupTimeout bounds the cleanup call made after a pick ends.
const cleanupTimeout = 5 * time.Second

// BrowserPicker runs the embedded picker script on a page in a visible browser.
// At most one pick is outstanding: starting a new one cancels the previous.
type BrowserPicker struct {
	page   scriptPage
	script string
	logger Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	current uint64
}

// NewBrowserPicker opens url in b and returns a picker bound to that page.
// The browser should be created with WithHeadless(false) so the user can click.
func NewBrowserPicker(ctx context.Context, b *Browser, url string, logger Logger) (*BrowserPicker, error) {
	script, err := assets.LoadScript(assets.PickerScriptName)
	if err != nil {
		return nil, fmt.Errorf("loading picker script: %w", err)
	}

	page, err := b.openPage(ctx, url)
	if err != nil {
		return nil, err
	}
	return newBrowserPicker(&rodScriptPage{page: page}, script, logger), nil
}

func newBrowserPicker(page scriptPage, script string, logger Logger) *BrowserPicker {
	if logger == nil {
		logger = NopLogger()
	}
	return &BrowserPicker{page: page, script: script, logger: logger.Child("picker")}
}

// Pick waits for the user to click an element. It returns ErrPickCancelled
// when the user presses Escape, when ctx ends, or when a newer Pick replaces
// this one. Outlines and listeners are removed on every exit path.
func (p *BrowserPicker) Pick(ctx context.Context) (*Node, error) {
	ctx, id := p.begin(ctx)
	defer p.end(id)

	defer func() {
		if !p.isCurrent(id) {
			return // the newer pick already removed this one's affordances
		}
		cctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cancel()
		if err := p.page.Run(cctx, cleanupScript); err != nil {
			p.logger.Debug("picker cleanup failed", "err", err)
		}
	}()

	p.logger.Info("waiting for element click", "url", p.page.URL())
	markup, err := p.page.Await(ctx, p.script)
	if err != nil {
		if ctx.Err() != nil || strings.Contains(err.Error(), pickCancelledMessage) {
			p.logger.Info("pick cancelled")
			return nil, fmt.Errorf("%w: %v", ErrPickCancelled, err)
		}
		return nil, fmt.Errorf("running picker: %w", err)
	}

	return parseElement(markup, snapshotOptions(p.page.URL()))
}

// Document snapshots the whole page the picker runs on, for metadata such as
// JSON-LD blocks that sit outside the picked element.
func (p *BrowserPicker) Document(ctx context.Context) (*Node, error) {
	markup, err := p.page.Await(ctx, documentScript)
	if err != nil {
		return nil, fmt.Errorf("%w: reading document: %v", ErrPageLoad, err)
	}
	return snapshotMarkup(markup, p.page.URL())
}

// begin registers a new outstanding pick, cancelling any previous one.
func (p *BrowserPicker) begin(ctx context.Context) (context.Context, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.logger.Debug("replacing outstanding pick")
		p.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.current++
	return ctx, p.current
}

func (p *BrowserPicker) isCurrent(id uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current == id
}

func (p *BrowserPicker) end(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == id && p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Close cancels any outstanding pick and closes the page.
func (p *BrowserPicker) Close() error {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	if c, ok := p.page.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// rodScriptPage adapts *rod.Page to scriptPage.
type rodScriptPage struct {
	page *rod.Page
}

func (r *rodScriptPage) Await(ctx context.Context, js string) (string, error) {
	res, err := r.page.Context(ctx).Evaluate(rod.Eval(js).ByPromise())
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (r *rodScriptPage) Run(ctx context.Context, js string) error {
	_, err := r.page.Context(ctx).Evaluate(rod.Eval(js))
	return err
}

func (r *rodScriptPage) URL() string {
	info, err := r.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (r *rodScriptPage) Close() error {
	err := r.page.Close()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
