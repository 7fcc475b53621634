// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/garnix-insights/garnix-insights/cmd/garnix-insights/cli"
	"github.com/garnix-insights/garnix-insights/lib/garnix"
	"github.com/garnix-insights/garnix-insights/lib/report"
	"github.com/garnix-insights/garnix-insights/lib/watchui"
)

type watchParams struct {
	globalParams
	tokenParams
	CommitID string        `json:"commit_id" flag:"commit-id,c" desc:"git commit to watch (required)"`
	Interval time.Duration `json:"interval" flag:"interval,i" default:"10s" desc:"delay between polls"`
}

func watchCommand(env *Env) *cli.Command {
	var (
		params  watchParams
		flagSet *pflag.FlagSet
	)

	return &cli.Command{
		Name:    "watch",
		Summary: "Poll a commit until its builds settle",
		Description: `Poll Garnix until the commit has builds and none is pending, then
print whether it is ready.

On a terminal this shows a live view: press r to poll immediately and q
to stop. Otherwise one progress line is printed per poll.

Exits 0 when every build passed and 2 when the builds settled with
failures or cancellations. Network failures and rate limits are retried
at the next interval.`,
		Usage: "garnix-insights watch --commit-id <sha> [--interval <d>]",
		Examples: []cli.Example{
			{
				Description: "Wait for the current commit in CI",
				Command:     "garnix-insights watch -c $(git rev-parse HEAD) -i 30s",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet = cli.FlagsFromParams("watch", &params)
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if err := noArguments(args); err != nil {
				return err
			}
			if params.CommitID == "" {
				return cli.Validation("--commit-id is required")
			}
			if params.Interval <= 0 {
				return cli.Validation("--interval must be positive, got %s", params.Interval)
			}

			session, err := env.open("watch", &params, &params.globalParams, flagSet)
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

			config := watchui.Config{
				CommitID: params.CommitID,
				Fetch: func(ctx context.Context) (*garnix.BuildStatus, error) {
					return provider.FetchBuildStatus(ctx, token, params.CommitID)
				},
				Interval: params.Interval,
				Clock:    env.clock(),
			}

			printer := session.printer()
			var status *garnix.BuildStatus
			if input, ok := env.Stdin.(*os.File); ok && cli.IsTerminal(env.Stdout) && cli.IsTerminal(input) {
				status, err = watchui.Run(ctx, config, input, env.Stdout)
			} else {
				status, err = watchui.Poll(ctx, config, func(update watchui.Update) {
					if update.Err != nil {
						session.logger.Warn("poll failed", "commit", params.CommitID, "error", update.Err)
						return
					}
					printer.Line(report.ProgressLine(params.CommitID, update.Status))
				})
			}

			switch {
			case errors.Is(err, watchui.ErrInterrupted):
				return &cli.ExitError{Code: 130}
			case errors.Is(err, context.Canceled):
				return &cli.ExitError{Code: 130}
			case err != nil:
				return cli.FromProviderError(err)
			}

			if err := printer.Line(report.ReadinessMessage(params.CommitID, status)); err != nil {
				return cli.Internal("writing output: %v", err)
			}
			if status.Readiness() != garnix.ReadinessReady {
				return &cli.ExitError{Code: 2}
			}
			return nil
		},
	}
}
