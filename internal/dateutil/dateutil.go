// Package dateutil converts user-friendly date format tokens and reformats
// timestamps found in scraped pages.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors.
var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrUnparsableDate    = errors.New("unparsable date")
)

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when no format is configured.
const DefaultDateFormat = "YYYY-MM-DD"

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common date formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// inputLayouts are the timestamp shapes accepted by ParseTimestamp,
// most specific first. Structured data on job boards mostly uses the
// first three.
var inputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	time.RFC1123Z,
	time.RFC1123,
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDateFormat converts a user-friendly format string to Go's time format.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D
// Use brackets to escape literal text: [on] preserves "on" literally.
// Any non-token characters outside brackets are preserved as literals.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var result strings.Builder
	result.Grow(len(format) + 10)

	i := 0
	for i < len(format) {
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}
		if !matched {
			result.WriteByte(format[i])
			i++
		}
	}

	return result.String(), nil
}

// ResolveFormat accepts a preset name (case-insensitive) or a token format
// and returns the Go layout. An empty value selects DefaultDateFormat.
func ResolveFormat(nameOrFormat string) (string, error) {
	if nameOrFormat == "" {
		nameOrFormat = DefaultDateFormat
	}
	if preset, ok := DatePresets[strings.ToLower(nameOrFormat)]; ok {
		nameOrFormat = preset
	}
	return ParseDateFormat(nameOrFormat)
}

// ParseTimestamp parses raw using the accepted input layouts.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrUnparsableDate)
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparsableDate, raw)
}

// Reformat parses raw and renders it with nameOrFormat.
// Values that cannot be parsed are returned unchanged with ErrUnparsableDate,
// so callers can still keep the original text.
func Reformat(raw, nameOrFormat string) (string, error) {
	layout, err := ResolveFormat(nameOrFormat)
	if err != nil {
		return raw, err
	}
	t, err := ParseTimestamp(raw)
	if err != nil {
		return raw, err
	}
	return t.Format(layout), nil
}

// Format renders t with nameOrFormat.
func Format(t time.Time, nameOrFormat string) (string, error) {
	layout, err := ResolveFormat(nameOrFormat)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
