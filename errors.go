package html2md

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	ErrParse               = errors.New("failed to parse markup")
	ErrInvalidBaseURL      = errors.New("invalid base URL")
	ErrInvalidBulletGlyphs = errors.New("invalid bullet glyphs")
	ErrUnknownStrategy     = errors.New("unknown renderer strategy")

	// Collaborator errors. These always reach the caller so it can pick a fallback.
	ErrPickCancelled  = errors.New("element pick cancelled")
	ErrClipboardWrite = errors.New("clipboard write failed")

	// ErrClipboardUnavailable wraps ErrClipboardWrite, so callers checking the
	// broader error also see it.
	ErrClipboardUnavailable = fmt.Errorf("%w: no clipboard tool available", ErrClipboardWrite)

	// Browser errors.
	ErrBrowserConnect   = errors.New("failed to connect to browser")
	ErrPageCreate       = errors.New("failed to create browser page")
	ErrPageLoad         = errors.New("failed to load page")
	ErrSelectorNotFound = errors.New("selector matched no element")

	// Table export errors.
	ErrNoTable = errors.New("no table found")
)
