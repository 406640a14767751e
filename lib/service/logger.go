// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger creates a JSON logger on stderr at level and installs it
// as the slog default.
func NewLogger(level slog.Level) *slog.Logger {
	logger := newLogger(os.Stderr, level)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
