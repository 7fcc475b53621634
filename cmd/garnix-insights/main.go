// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/garnix-insights/garnix-insights/cmd/garnix-insights/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own result (fetch --fail-on-not-ready,
		// watch) return an exit error carrying the status. Don't print a
		// redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return commands.Root(commands.DefaultEnv()).Execute(ctx, os.Args[1:])
}
