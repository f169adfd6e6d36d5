// Package html2md converts HTML document trees to Markdown.
//
// # Quick Start
//
// Create a converter and convert markup:
//
//	conv, err := html2md.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	md, err := conv.ConvertString(`<h2>Role</h2><p>Build <b>tools</b>.</p>`)
//	// md == "## Role\n\nBuild **tools**."
//
// Convert renders the children of a parsed root; ConvertNode renders a single
// element, as used for a picked fragment of a page.
//
// # Conversion Model
//
// Conversion is a recursive walk over a Node tree:
//
//  1. Each element is dispatched by tag to an ElementRenderer from the Registry
//  2. Renderers receive an immutable State (indent, line prefix, wrap flags)
//     and return zero or more text fragments
//  3. Fragments are joined and whitespace is normalized: runs of blank lines
//     collapse to one, trailing spaces are dropped
//
// Unknown tags render their children as blocks. Text nodes are emitted as-is,
// comments are dropped.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := html2md.NewConverter(
//	    html2md.WithLogger(html2md.NewSlogLogger(slog.Default())),
//	    html2md.WithBaseURL("https://example.com/jobs/"),
//	    html2md.WithBulletGlyphs("•◦"),
//	)
//
// Renderers are overridden per tag, either with functions or by strategy name
// as used in configuration files:
//
//	overrides, err := html2md.OverridesFromNames(map[string]string{
//	    "aside": "block",
//	    "b":     "transparent",
//	})
//	conv, err := html2md.NewConverter(html2md.WithOverrides(overrides))
//
// StrategyNames lists the accepted names.
//
// # Browser Snapshots
//
// Pages rendered by JavaScript are loaded in headless Chrome and snapshotted
// into a Node tree:
//
//	b := html2md.NewBrowser(html2md.WithPageTimeout(time.Minute))
//	defer b.Close()
//
//	root, err := b.Snapshot(ctx, "https://example.com/jobs/42", "main")
//
// For many pages, BrowserPool bounds the number of Chrome processes.
// BrowserPicker opens a visible window and returns the element the user clicks.
//
// # Browser Requirements
//
// Snapshots require Chrome/Chromium. The go-rod library downloads a managed
// Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package html2md
