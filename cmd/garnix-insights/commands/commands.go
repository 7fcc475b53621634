// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the garnix-insights command tree.
package commands

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/garnix-insights/garnix-insights/cmd/garnix-insights/cli"
	"github.com/garnix-insights/garnix-insights/lib/clock"
	"github.com/garnix-insights/garnix-insights/lib/config"
	"github.com/garnix-insights/garnix-insights/lib/garnix"
	"github.com/garnix-insights/garnix-insights/lib/report"
)

// Provider is the Garnix API surface the commands use. *garnix.Client
// implements it.
type Provider interface {
	FetchBuildStatus(ctx context.Context, token, commitID string) (*garnix.BuildStatus, error)
	FetchBuildLogs(ctx context.Context, token, buildID string) (*garnix.LogResponse, error)
	ValidateToken(ctx context.Context, token string) error
}

// Env is everything a command touches outside its own arguments.
// Tests substitute buffers and a stub provider.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Lookup reads environment variables.
	Lookup func(string) (string, bool)

	// Clock drives polling in watch and timestamps in the HTTP API.
	Clock clock.Clock

	// NewProvider builds the Garnix client for a loaded configuration.
	NewProvider func(cfg *config.Config, logger *slog.Logger) (Provider, error)
}

// DefaultEnv wires the process's standard streams and environment to
// the real Garnix API.
func DefaultEnv() *Env {
	return &Env{
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Lookup:      os.LookupEnv,
		Clock:       clock.Real(),
		NewProvider: newGarnixProvider,
	}
}

func newGarnixProvider(cfg *config.Config, logger *slog.Logger) (Provider, error) {
	client, err := garnix.NewClient(garnix.Config{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.API.RequestTimeout()},
		Logger:     logger,
	})
	if err != nil {
		return nil, cli.Wrap(cli.CategoryValidation, err)
	}
	return client, nil
}

// Root returns the top-level "garnix-insights" command.
func Root(env *Env) *cli.Command {
	return &cli.Command{
		Name:    "garnix-insights",
		Summary: "Garnix CI build status for terminals, HTTP clients and MCP agents",
		Description: `garnix-insights reports the state of Garnix CI builds for a commit.

The same build status is available as terminal output (fetch, logs,
watch), as a JSON/CBOR HTTP API (server), and as an MCP server on
stdin/stdout for AI assistants (mcp serve).

Tokens come from --token, then $GARNIX_JWT_TOKEN, then the auth section
of the configuration file. The file is named by --config or
$GARNIX_INSIGHTS_CONFIG.`,
		HelpOutput: env.Stderr,
		Subcommands: []*cli.Command{
			fetchCommand(env),
			logsCommand(env),
			validateTokenCommand(env),
			watchCommand(env),
			serverCommand(env),
			mcpCommand(env),
			sealTokenCommand(env),
			versionCommand(env),
		},
	}
}

// globalParams are accepted by every command that talks to Garnix.
type globalParams struct {
	ConfigPath string `json:"-" flag:"config" env:"GARNIX_INSIGHTS_CONFIG" desc:"configuration file (YAML or JSON)"`
	Verbose    bool   `json:"-" flag:"verbose,v" desc:"enable debug logging"`
}

// tokenParams adds --token with its environment fallback.
type tokenParams struct {
	Token string `json:"-" flag:"token,t" env:"GARNIX_JWT_TOKEN" desc:"Garnix JWT token (default: $GARNIX_JWT_TOKEN, then config)"`
}

// session is the per-invocation state shared by command Run functions.
type session struct {
	env    *Env
	config *config.Config
	logger *slog.Logger
}

// open resolves environment fallbacks for params, loads the
// configuration and builds the command logger.
func (env *Env) open(name string, params any, global *globalParams, flagSet *pflag.FlagSet) (*session, error) {
	if err := cli.ApplyEnv(params, flagSet, env.Lookup); err != nil {
		return nil, err
	}

	cfg := config.Default()
	if global.ConfigPath != "" {
		loaded, err := config.LoadFile(global.ConfigPath)
		if err != nil {
			return nil, cli.Validation("loading configuration: %v", err)
		}
		cfg = loaded
	}

	logger := cli.NewCommandLogger(env.Stderr, global.Verbose).With("command", name)
	logger.Debug("configuration loaded", "path", global.ConfigPath, "base_url", cfg.API.BaseURL)

	return &session{env: env, config: cfg, logger: logger}, nil
}

func (s *session) provider() (Provider, error) {
	return s.env.NewProvider(s.config, s.logger)
}

// printer renders to stdout with colour and truncation only when stdout
// is a terminal.
func (s *session) printer() *report.Printer {
	color := cli.IsTerminal(s.env.Stdout)
	width := 0
	if file, ok := s.env.Stdout.(*os.File); ok && color {
		if columns, _, err := term.GetSize(int(file.Fd())); err == nil {
			width = columns
		}
	}
	return report.NewPrinter(s.env.Stdout, color, width)
}

func (env *Env) clock() clock.Clock {
	if env.Clock == nil {
		return clock.Real()
	}
	return env.Clock
}

func noArguments(args []string) error {
	if len(args) > 0 {
		return cli.Validation("unexpected argument %q", args[0])
	}
	return nil
}
