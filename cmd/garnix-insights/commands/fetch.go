// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/garnix-insights/garnix-insights/cmd/garnix-insights/cli"
	"github.com/garnix-insights/garnix-insights/lib/garnix"
)

type fetchParams struct {
	globalParams
	tokenParams
	cli.OutputFormat
	CommitID       string `json:"commit_id" flag:"commit-id,c" desc:"git commit to report on (required)"`
	FailOnNotReady bool   `json:"fail_on_not_ready" flag:"fail-on-not-ready" desc:"exit with status 2 unless every build passed"`
}

func fetchCommand(env *Env) *cli.Command {
	var (
		params  fetchParams
		flagSet *pflag.FlagSet
	)

	return &cli.Command{
		Name:    "fetch",
		Summary: "Show the build status of a commit",
		Description: `Fetch the Garnix build summary and build list for a commit.

The human format prints a markdown summary, lists failed builds with
their derivations, and grades the success rate. The json format prints
the complete response as returned by Garnix. The plain format prints
undecorated key: value lines for scripts.

With --fail-on-not-ready the command exits with status 2 unless the
commit has builds and every one of them succeeded.`,
		Usage: "garnix-insights fetch --commit-id <sha> [flags]",
		Examples: []cli.Example{
			{
				Description: "Summarise a commit",
				Command:     "garnix-insights fetch --commit-id 3f2a9c1d0e",
			},
			{
				Description: "Gate a deploy on a green commit",
				Command:     "garnix-insights fetch -c $(git rev-parse HEAD) --fail-on-not-ready -f plain",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet = cli.FlagsFromParams("fetch", &params)
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
			if params.CommitID == "" {
				return cli.Validation("--commit-id is required")
			}

			session, err := env.open("fetch", &params, &params.globalParams, flagSet)
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

			session.logger.Debug("fetching build status", "commit", params.CommitID)
			status, err := provider.FetchBuildStatus(ctx, token, params.CommitID)
			if err != nil {
				return cli.FromProviderError(err)
			}

			printer := session.printer()
			switch format {
			case cli.FormatJSON:
				err = printer.JSON(status)
			case cli.FormatPlain:
				err = printer.Plain(status)
			default:
				err = printer.Human(status)
			}
			if err != nil {
				return cli.Internal("writing output: %v", err)
			}

			if params.FailOnNotReady && status.Readiness() != garnix.ReadinessReady {
				return &cli.ExitError{Code: 2}
			}
			return nil
		},
	}
}
