// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger for command operations.
// When w is a terminal, uses slog.TextHandler for human-readable output.
// When w is piped or redirected (CI, scripts, an MCP client reading
// stderr), uses slog.JSONHandler for machine-parseable output.
//
// w is normally os.Stderr: stdout carries command output and, for
// `mcp serve`, the JSON-RPC wire. verbose lowers the level to DEBUG.
//
// Callers scope the logger with command-specific context via With():
//
//	logger := cli.NewCommandLogger(os.Stderr, params.Verbose).With(
//	    "command", "fetch",
//	    "commit", params.CommitID,
//	)
func NewCommandLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if IsTerminal(w) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

// IsTerminal reports whether w is an *os.File attached to a terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
