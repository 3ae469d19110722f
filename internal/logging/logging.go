// Package logging builds the process-wide slog logger: a console handler on
// stderr, optionally fanned out with a rotating file handler. Nothing here
// ever writes to stdout, which belongs to the serving transport.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the console level and format and, when File is set, the
// rotation policy for the log file.
type Options struct {
	// Level gates the console handler: debug, info, warn, or error.
	Level string
	// Format is text or json.
	Format string
	// File enables rotating file logging when non-empty. The file handler
	// records everything regardless of the console level.
	File           string
	FileMaxSizeMB  int
	FileMaxBackups int
	FileMaxAgeDays int
}

// New builds the logger. The returned closer releases the log file, if one
// was opened, and is safe to call either way.
func New(opts Options) (*slog.Logger, func() error, error) {
	console := consoleHandler(os.Stderr, opts)
	closer := func() error { return nil }

	if opts.File == "" {
		return slog.New(console), closer, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	rotator := newRotator(opts)
	closer = rotator.Close

	fileHandler := slog.NewJSONHandler(rotator, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return slog.New(&multiHandler{handlers: []slog.Handler{console, fileHandler}}), closer, nil
}

func consoleHandler(w io.Writer, opts Options) slog.Handler {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	if strings.EqualFold(opts.Format, "json") {
		return slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.NewTextHandler(w, handlerOpts)
}

func newRotator(opts Options) *lumberjack.Logger {
	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.FileMaxSizeMB,
		MaxBackups: opts.FileMaxBackups,
		MaxAge:     opts.FileMaxAgeDays,
	}
	if rotator.MaxSize <= 0 {
		rotator.MaxSize = 10
	}
	if rotator.MaxBackups < 0 {
		rotator.MaxBackups = 0
	}
	if rotator.MaxAge <= 0 {
		rotator.MaxAge = 30
	}
	return rotator
}

// ParseLevel maps a level name to its slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// multiHandler fans records out to several handlers, each applying its own
// level gate.
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}
