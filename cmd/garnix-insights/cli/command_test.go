// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "garnix-insights",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(ctx context.Context, args []string) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "fetch",
				Run: func(ctx context.Context, args []string) error {
					called = "fetch"
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"fetch"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "fetch" {
		t.Errorf("dispatched to %q, want %q", called, "fetch")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "garnix-insights",
		Subcommands: []*Command{
			{
				Name: "mcp",
				Subcommands: []*Command{
					{
						Name: "serve",
						Run: func(ctx context.Context, args []string) error {
							called = "mcp serve"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"mcp", "serve", "extra-arg"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "mcp serve" {
		t.Errorf("dispatched to %q, want %q", called, "mcp serve")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "extra-arg" {
		t.Errorf("args = %v, want [extra-arg]", receivedArgs)
	}
}

func TestCommand_Execute_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "marker")

	var got any
	command := &Command{
		Name: "fetch",
		Run: func(ctx context.Context, args []string) error {
			got = ctx.Value(key{})
			return nil
		},
	}
	if err := command.Execute(ctx, nil); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if got != "marker" {
		t.Errorf("context value = %v, want marker", got)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var commitID string
	var positional []string

	command := &Command{
		Name: "fetch",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("fetch", pflag.ContinueOnError)
			flagSet.StringVar(&commitID, "commit-id", "", "commit to query")
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			positional = args
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--commit-id", "abc1234", "rest"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if commitID != "abc1234" {
		t.Errorf("commitID = %q, want abc1234", commitID)
	}
	if len(positional) != 1 || positional[0] != "rest" {
		t.Errorf("args = %v, want [rest]", positional)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "fetch",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("fetch", pflag.ContinueOnError)
			flagSet.String("commit-id", "", "commit to query")
			flagSet.String("token", "", "JWT token")
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--comit-id", "abc"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --commit-id?") {
		t.Errorf("error = %q, want suggestion for --commit-id", err)
	}
	if CategoryOf(err) != CategoryValidation {
		t.Errorf("category = %q, want validation", CategoryOf(err))
	}
}

func TestCommand_Execute_UnknownCommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "garnix-insights",
		Subcommands: []*Command{
			{Name: "fetch", Run: func(ctx context.Context, args []string) error { return nil }},
			{Name: "logs", Run: func(ctx context.Context, args []string) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"fecth"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "fetch"?`) {
		t.Errorf("error = %q, want suggestion for fetch", err)
	}

	err = root.Execute(context.Background(), []string{"zzzzzzzz"})
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %v, want unknown command without suggestion", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:       "garnix-insights",
		HelpOutput: &help,
		Subcommands: []*Command{
			{Name: "fetch", Summary: "Fetch build status", Run: func(ctx context.Context, args []string) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Fatalf("error = %v, want subcommand required", err)
	}
	if !strings.Contains(help.String(), "Fetch build status") {
		t.Errorf("help output missing subcommand summary:\n%s", help.String())
	}
}

func TestCommand_Execute_HelpIsInherited(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:       "garnix-insights",
		HelpOutput: &help,
		Subcommands: []*Command{
			{
				Name:        "logs",
				Description: "Fetch the log lines of a single build.",
				Examples: []Example{
					{Description: "Show logs", Command: "garnix-insights logs --build-id 42"},
				},
				Run: func(ctx context.Context, args []string) error {
					t.Error("Run called for --help")
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"logs", "--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	output := help.String()
	for _, want := range []string{
		"Fetch the log lines of a single build.",
		"Usage:\n  garnix-insights logs [flags]",
		"# Show logs",
		"garnix-insights logs --build-id 42",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q:\n%s", want, output)
		}
	}
}

func TestCommand_Execute_RunErrorPropagates(t *testing.T) {
	sentinel := errors.New("boom")
	command := &Command{
		Name: "fetch",
		Run:  func(ctx context.Context, args []string) error { return sentinel },
	}
	if err := command.Execute(context.Background(), nil); !errors.Is(err, sentinel) {
		t.Errorf("Execute() = %v, want sentinel", err)
	}
}

func TestCommand_PrintHelp_Flags(t *testing.T) {
	command := &Command{
		Name:    "server",
		Summary: "Run the HTTP API",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("server", pflag.ContinueOnError)
			flagSet.Int("port", 8080, "port to listen on")
			return flagSet
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()
	if !strings.Contains(output, "Run the HTTP API") {
		t.Errorf("help missing summary:\n%s", output)
	}
	if !strings.Contains(output, "--port") || !strings.Contains(output, "port to listen on") {
		t.Errorf("help missing flag usage:\n%s", output)
	}
}
