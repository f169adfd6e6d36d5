package html2md

import (
	"errors"
	"runtime"
	"sync"
)

const (
	MinPoolSize = 1
	// MaxPoolSize caps concurrent Chrome instances (~200MB each).
	MaxPoolSize = 8
	// cpuDivisor leaves headroom for Chrome's renderer processes.
	cpuDivisor = 2
)

// BrowserPool hands out up to Size browsers for parallel snapshots.
// Browsers are built on demand, and each launches Chrome only when it
// first loads a page, so an idle pool costs nothing.
type BrowserPool struct {
	size int
	opts []BrowserOption

	mu      sync.Mutex
	all     []*Browser    // every browser built, closed by Close
	idle    chan *Browser // released browsers; capacity size
	created int
	closed  bool
}

// NewBrowserPool creates a pool of at most n browsers built with opts.
// n below 1 is raised to 1.
func NewBrowserPool(n int, opts ...BrowserOption) *BrowserPool {
	n = max(n, MinPoolSize)
	return &BrowserPool{
		size: n,
		opts: opts,
		all:  make([]*Browser, 0, n),
		idle: make(chan *Browser, n),
	}
}

// Acquire returns an idle browser, builds a new one while under capacity,
// or blocks until one is released. Returns nil once the pool is closed,
// including to callers blocked at the time.
func (p *BrowserPool) Acquire() *Browser {
	select {
	case b := <-p.idle:
		return b
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	if p.created < p.size {
		p.created++
		b := NewBrowser(p.opts...)
		p.all = append(p.all, b)
		p.mu.Unlock()
		return b
	}
	p.mu.Unlock()

	return <-p.idle
}

// Release returns b to the pool. After Close it is a no-op.
func (p *BrowserPool) Release(b *Browser) {
	if b == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	// Never blocks: at most size browsers exist.
	p.idle <- b
}

// Close shuts down every browser the pool built and wakes blocked
// acquirers. Close errors are joined. Safe to call more than once.
func (p *BrowserPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.idle)
	for range p.idle {
		// Drain, so later receives see the closed channel and yield nil.
	}
	browsers := p.all
	p.mu.Unlock()

	var errs []error
	for _, b := range browsers {
		if err := b.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *BrowserPool) Size() int {
	return p.size
}

// ResolvePoolSize returns workers when positive, otherwise half of
// GOMAXPROCS clamped to [MinPoolSize, MaxPoolSize]. The CLI sets
// GOMAXPROCS from the container CPU quota at startup.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	n := runtime.GOMAXPROCS(0) / cpuDivisor
	return min(max(n, MinPoolSize), MaxPoolSize)
}
