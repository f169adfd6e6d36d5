package main

import (
	"context"
	"errors"
	"os"

	html2md "github.com/alnah/go-html2md"
	"github.com/alnah/go-html2md/internal/assets"
	"github.com/alnah/go-html2md/internal/config"
	"github.com/alnah/go-html2md/internal/dateutil"
	"github.com/alnah/go-html2md/internal/hints"
	"github.com/alnah/go-html2md/internal/pipeline"
)

// Exit codes for the html2md CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess   = 0 // Successful conversion
	ExitGeneral   = 1 // General/unexpected error
	ExitUsage     = 2 // Invalid flags, config, or validation
	ExitIO        = 3 // File not found, permission denied
	ExitBrowser   = 4 // Browser/Chrome errors
	ExitCancelled = 5 // Pick cancelled or interrupted
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, html2md.ErrPickCancelled) ||
		errors.Is(err, context.Canceled) {
		return ExitCancelled
	}

	if errors.Is(err, html2md.ErrBrowserConnect) ||
		errors.Is(err, html2md.ErrPageCreate) ||
		errors.Is(err, html2md.ErrPageLoad) ||
		errors.Is(err, html2md.ErrSelectorNotFound) ||
		errors.Is(err, ErrBrowserUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, html2md.ErrParse) ||
		errors.Is(err, html2md.ErrNoTable) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidURL) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, html2md.ErrInvalidBaseURL) ||
		errors.Is(err, html2md.ErrInvalidBulletGlyphs) ||
		errors.Is(err, html2md.ErrUnknownStrategy) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, pipeline.ErrUnknownTheme) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, html2md.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, html2md.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, html2md.ErrNoTable):
		return hints.ForNoTable()
	case errors.Is(err, html2md.ErrUnknownStrategy):
		return hints.ForUnknownStrategy(html2md.StrategyNames())
	case errors.Is(err, config.ErrConfigNotFound):
		// The error text already lists the paths tried.
		return hints.ForConfigNotFound(nil)
	default:
		return ""
	}
}
