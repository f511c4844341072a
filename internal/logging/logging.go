// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

package logging

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/astroqc/tpfqc/internal/util"
)

func SetupInitialLogging() {
	w := os.Stderr
	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      slog.LevelWarn,
			TimeFormat: time.RFC3339,
		}),
	))

	// Redirect the standard log package too, in case a dep uses it.
	lw := &slogWriter{}
	log.Default().SetOutput(lw)
	log.SetOutput(lw)
}

// SetupClientLogging sends logs to a rotated file in the data directory
// so report output on stdout stays clean.
func SetupClientLogging(logFilePath string) {
	if err := util.EnsureFileFolderHierarchy(logFilePath); err != nil {
		slog.Error("Failed to create log folder hierarchy", "error", err)
		return
	}

	lumber := &lumberjack.Logger{
		Filename: logFilePath,
		Compress: true,
	}

	handler := &fileConsoleHandler{
		fileHandler: tint.NewHandler(lumber, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC3339,
		}),
	}

	slog.SetDefault(slog.New(handler))

	lw := &slogWriter{}
	log.Default().SetOutput(lw)
	log.SetOutput(lw)
}

// fileConsoleHandler fans records out to a file handler and, when
// configured, a console handler with its own level.
type fileConsoleHandler struct {
	fileHandler    slog.Handler
	consoleHandler slog.Handler
}

func (h *fileConsoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.fileHandler.Enabled(ctx, level) {
		return true
	}
	return h.consoleHandler != nil && h.consoleHandler.Enabled(ctx, level)
}

func (h *fileConsoleHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.fileHandler.Enabled(ctx, r.Level) {
		if err := h.fileHandler.Handle(ctx, r); err != nil {
			return err
		}
	}
	if h.consoleHandler != nil && h.consoleHandler.Enabled(ctx, r.Level) {
		if err := h.consoleHandler.Handle(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (h *fileConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := &fileConsoleHandler{
		fileHandler: h.fileHandler.WithAttrs(attrs),
	}
	if h.consoleHandler != nil {
		newHandler.consoleHandler = h.consoleHandler.WithAttrs(attrs)
	}
	return newHandler
}

func (h *fileConsoleHandler) WithGroup(name string) slog.Handler {
	newHandler := &fileConsoleHandler{
		fileHandler: h.fileHandler.WithGroup(name),
	}
	if h.consoleHandler != nil {
		newHandler.consoleHandler = h.consoleHandler.WithGroup(name)
	}
	return newHandler
}
