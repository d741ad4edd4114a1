// Package log provides printf-style logging on top of log/slog.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Level is an alias so callers need not import log/slog.
type Level = slog.Level

const (
	DebugLevel = slog.LevelDebug
	InfoLevel  = slog.LevelInfo
	WarnLevel  = slog.LevelWarn
	ErrorLevel = slog.LevelError
)

func init() {
	Init(InfoLevel, false, os.Stderr)
}

// Init installs a text (or JSON) handler writing to w as the default logger.
func Init(level Level, json bool, w io.Writer) {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			// Keep only the file name of the source location.
			if a.Key == slog.SourceKey {
				if s, ok := a.Value.Any().(*slog.Source); ok {
					s.File = filepath.Base(s.File)
				}
			}
			return a
		},
	}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if json {
		h = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(h))
}

// Disable discards all log output.
func Disable() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ParseLevel maps debug, info, warn and error (case-insensitive) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "", "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	}
	return InfoLevel, fmt.Errorf("unknown log level %q", s)
}

func logf(level Level, format string, args ...any) {
	ctx := context.Background()
	logger := slog.Default()
	if !logger.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // skip [Callers, logf, Infof]
	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	_ = logger.Handler().Handle(ctx, r)
}

// Debugf logs a debug message.
func Debugf(format string, args ...any) {
	logf(DebugLevel, format, args...)
}

// Infof logs an info message.
func Infof(format string, args ...any) {
	logf(InfoLevel, format, args...)
}

// Warnf logs a warning message.
func Warnf(format string, args ...any) {
	logf(WarnLevel, format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...any) {
	logf(ErrorLevel, format, args...)
}

// Fatalf logs an error message and exits with status 1.
func Fatalf(format string, args ...any) {
	logf(ErrorLevel, format, args...)
	os.Exit(1)
}
