package main

import (
	"context"
	"fmt"

	html2md "github.com/alnah/go-html2md"
)

// Snapshotter loads a page and returns a snapshot of it.
type Snapshotter interface {
	Snapshot(ctx context.Context, url, selector string) (*html2md.Node, error)
}

// Compile-time interface implementation check.
var _ Snapshotter = (*html2md.Browser)(nil)

// Pool abstracts browser pool operations for testability.
type Pool interface {
	Acquire() Snapshotter
	Release(Snapshotter)
	Size() int
	Close() error
}

// poolAdapter exposes an html2md.BrowserPool as a Pool.
type poolAdapter struct {
	pool *html2md.BrowserPool
}

// newBrowserPool creates the production pool.
func newBrowserPool(size int, opts ...html2md.BrowserOption) Pool {
	return &poolAdapter{pool: html2md.NewBrowserPool(size, opts...)}
}

// Acquire returns nil once the pool is closed.
func (a *poolAdapter) Acquire() Snapshotter {
	b := a.pool.Acquire()
	if b == nil {
		return nil
	}
	return b
}

// Release panics on a Snapshotter this pool did not hand out (programmer error).
func (a *poolAdapter) Release(s Snapshotter) {
	b, ok := s.(*html2md.Browser)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", s))
	}
	a.pool.Release(b)
}

func (a *poolAdapter) Size() int    { return a.pool.Size() }
func (a *poolAdapter) Close() error { return a.pool.Close() }
