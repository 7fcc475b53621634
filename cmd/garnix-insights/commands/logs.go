// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/garnix-insights/garnix-insights/cmd/garnix-insights/cli"
)

type logsParams struct {
	globalParams
	tokenParams
	cli.OutputFormat
	BuildID string `json:"build_id" flag:"build-id,b" desc:"build to fetch logs for (required)"`
}

func logsCommand(env *Env) *cli.Command {
	var (
		params  logsParams
		flagSet *pflag.FlagSet
	)

	return &cli.Command{
		Name:    "logs",
		Summary: "Print the log lines of a build",
		Description: `Fetch the recorded log lines of one Garnix build.

Build ids appear in the output of "garnix-insights fetch -f json". The
json format prints the log response as returned by Garnix, including
whether the build has finished.`,
		Usage: "garnix-insights logs --build-id <id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Show the logs of a failed build",
				Command:     "garnix-insights logs --build-id 7c1e0b52-4d1a",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet = cli.FlagsFromParams("logs", &params)
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if err := noArguments(args); err != nil {
				return err
			}
			format, err := params.Format()
			if err != nil {
				return err
			}
			if params.BuildID == "" {
				return cli.Validation("--build-id is required")
			}

			session, err := env.open("logs", &params, &params.globalParams, flagSet)
			if err != nil {
				return err
			}
			token, err := session.token(params.Token)
			if err != nil {
				return err
			}
			provider, err := session.provider()
			if err != nil {
				return err
			}

			logs, err := provider.FetchBuildLogs(ctx, token, params.BuildID)
			if err != nil {
				return cli.FromProviderError(err)
			}

			printer := session.printer()
			if format == cli.FormatJSON {
				err = printer.JSON(logs)
			} else {
				err = printer.Logs(params.BuildID, logs)
			}
			if err != nil {
				return cli.Internal("writing output: %v", err)
			}
			return nil
		},
	}
}
