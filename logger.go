// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tiler

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all records. Enabled reports false, so callers skip
// building attributes.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the active logger. SetLogger may run concurrently with
// logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for tiler and its sub-packages.
// By default, tiler produces no log output. Call SetLogger to enable logging.
//
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by tiler:
//   - [slog.LevelDebug]: per-tile diagnostics (cursor, extent, read-back offsets)
//   - [slog.LevelInfo]: pass lifecycle (pass started, pass finished)
//   - [slog.LevelWarn]: passes aborted by an error or abandoned by a
//     configuration change
//
// Example:
//
//	tiler.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by tiler.
// Sub-packages (render/, gpu/) call this to share the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
