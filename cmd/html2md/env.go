package main

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	html2md "github.com/alnah/go-html2md"
	"github.com/alnah/go-html2md/internal/assets"
	"github.com/alnah/go-html2md/internal/config"
)

// PickSession is an interactive picker bound to an open browser window.
// Document snapshots the whole page, for front matter.
type PickSession interface {
	html2md.Picker
	Document(ctx context.Context) (*html2md.Node, error)
	Close() error
}

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, assets and the browser-backed collaborators.
type Environment struct {
	Now         func() time.Time
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	AssetLoader assets.AssetLoader
	Config      *config.Config // used when no config file is named

	// Clipboard builds the clipboard writer for a configured command ("" = detect).
	Clipboard func(command string) html2md.ClipboardWriter
	// NewPool builds the browser pool used by fetch and table.
	NewPool func(size int, opts ...html2md.BrowserOption) Pool
	// NewPicker opens url in a visible browser and returns a picker on it.
	NewPicker func(ctx context.Context, url string, opts []html2md.BrowserOption, logger html2md.Logger) (PickSession, error)
}

// DefaultEnv returns the production environment with embedded assets and Chrome.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		AssetLoader: assets.NewEmbeddedLoader(),
		Config:      config.DefaultConfig(),
		Clipboard: func(command string) html2md.ClipboardWriter {
			return html2md.NewCommandClipboard(command)
		},
		NewPool:   newBrowserPool,
		NewPicker: newBrowserPickSession,
	}
}

// browserPickSession owns the browser its picker runs in.
type browserPickSession struct {
	*html2md.BrowserPicker
	browser *html2md.Browser
}

// newBrowserPickSession launches a visible browser and opens url in it.
func newBrowserPickSession(ctx context.Context, url string, opts []html2md.BrowserOption, logger html2md.Logger) (PickSession, error) {
	// Appended last so configuration cannot hide the window the user clicks in.
	b := html2md.NewBrowser(append(opts, html2md.WithHeadless(false))...)

	p, err := html2md.NewBrowserPicker(ctx, b, url, logger)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	return &browserPickSession{BrowserPicker: p, browser: b}, nil
}

// Close releases the page, then the browser.
func (s *browserPickSession) Close() error {
	return errors.Join(s.BrowserPicker.Close(), s.browser.Close())
}
