// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"time"

	"github.com/spf13/pflag"

	"github.com/garnix-insights/garnix-insights/cmd/garnix-insights/cli"
	"github.com/garnix-insights/garnix-insights/cmd/garnix-insights/mcp"
)

func mcpCommand(env *Env) *cli.Command {
	return &cli.Command{
		Name:    "mcp",
		Summary: "Model Context Protocol server",
		Subcommands: []*cli.Command{
			mcpServeCommand(env),
		},
	}
}

type mcpServeParams struct {
	globalParams
	ProtocolVersion string        `json:"protocol_version" flag:"protocol-version" env:"GARNIX_MCP_PROTOCOL_VERSION" desc:"protocol version or alias: latest, stable, legacy (default: mcp.protocol_version)"`
	ToolTimeout     time.Duration `json:"tool_timeout" flag:"tool-timeout" desc:"deadline for each Garnix call made by a tool (default: mcp.tool_timeout, 30s)"`
}

func mcpServeCommand(env *Env) *cli.Command {
	var (
		params  mcpServeParams
		flagSet *pflag.FlagSet
	)

	return &cli.Command{
		Name:    "serve",
		Summary: "Serve MCP tools on stdin/stdout",
		Description: `Run an MCP server speaking line-delimited JSON-RPC 2.0 on stdin and
stdout until stdin closes.

The server announces its protocol version before the first request and
renegotiates on every initialize request. Unknown version selectors
fall back to the latest supported version.

Tools: get_build_status, get_build_logs, check_commit_ready. Each takes
commit_id and token arguments; the server itself holds no credential.

Logs go to stderr. Stdout carries only protocol messages.`,
		Usage: "garnix-insights mcp serve [--protocol-version <v>] [--tool-timeout <d>]",
		Examples: []cli.Example{
			{
				Description: "Register with an MCP client",
				Command:     "garnix-insights mcp serve --protocol-version stable",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet = cli.FlagsFromParams("serve", &params)
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if err := noArguments(args); err != nil {
				return err
			}

			session, err := env.open("mcp serve", &params, &params.globalParams, flagSet)
			if err != nil {
				return err
			}

			selector := params.ProtocolVersion
			if selector == "" {
				selector = session.config.MCP.ProtocolVersion
			}
			timeout := params.ToolTimeout
			if timeout <= 0 {
				timeout = session.config.MCP.ToolTimeoutDuration()
			}

			provider, err := session.provider()
			if err != nil {
				return err
			}

			version := mcp.Negotiate(selector)
			session.logger.Info("mcp server starting",
				"selector", selector,
				"protocol_version", version,
				"tool_timeout", timeout,
			)

			server := mcp.NewServer(provider, version,
				mcp.WithLogger(session.logger),
				mcp.WithToolTimeout(timeout),
			)
			if err := server.Run(ctx, env.Stdin, env.Stdout); err != nil {
				return cli.Internal("mcp session: %v", err)
			}
			return nil
		},
	}
}
