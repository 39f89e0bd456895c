// Package cli implements the graphview command-line interface.
//
// # Commands
//
//   - render: draw a graph file to PNG through an offscreen graph view
//   - serve: expose a live graph view over HTTP, optionally reloading the
//     graph file when it changes
//   - version: print build information
//
// # Configuration
//
// Every setting can come from graphview.toml, GRAPHVIEW_* environment
// variables or flags, in increasing priority; see internal/config.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels in context.Context and also backs the slog logger handed to the
// graph view.
package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// slogger adapts l for packages that log through log/slog.
func slogger(l *log.Logger) *slog.Logger {
	return slog.New(l)
}

// progress logs the completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Rendered 42 nodes (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
