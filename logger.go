package html2md

import (
	"context"
	"log/slog"
	"strings"
)

// Logger is the optional diagnostic sink. Logging is advisory and never
// changes conversion output.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// Child returns a logger scoped with an additional path segment.
	Child(segment string) Logger
}

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any)  {}
func (nopLogger) Info(string, ...any)   {}
func (nopLogger) Warn(string, ...any)   {}
func (nopLogger) Error(string, ...any)  {}
func (n nopLogger) Child(string) Logger { return n }

// NopLogger returns a Logger that discards all output.
func NopLogger() Logger {
	return nopLogger{}
}

// pathSeparator joins scoped path segments.
const pathSeparator = "::"

// slogLogger adapts *slog.Logger to Logger. The scope path is attached
// as a "path" attribute on every record.
type slogLogger struct {
	l    *slog.Logger
	path []string
}

// NewSlogLogger wraps l. A nil l yields a no-op logger.
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		return NopLogger()
	}
	return &slogLogger{l: l}
}

func (s *slogLogger) Debug(msg string, args ...any) { s.log(slog.LevelDebug, msg, args) }
func (s *slogLogger) Info(msg string, args ...any)  { s.log(slog.LevelInfo, msg, args) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.log(slog.LevelWarn, msg, args) }
func (s *slogLogger) Error(msg string, args ...any) { s.log(slog.LevelError, msg, args) }

// Child copies the path so siblings never share a backing array.
func (s *slogLogger) Child(segment string) Logger {
	path := make([]string, len(s.path), len(s.path)+1)
	copy(path, s.path)
	return &slogLogger{l: s.l, path: append(path, segment)}
}

func (s *slogLogger) log(level slog.Level, msg string, args []any) {
	ctx := context.Background()
	if !s.l.Enabled(ctx, level) {
		return
	}
	if len(s.path) > 0 {
		args = append([]any{slog.String("path", strings.Join(s.path, pathSeparator))}, args...)
	}
	s.l.Log(ctx, level, msg, args...)
}
