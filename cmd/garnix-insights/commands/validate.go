// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/garnix-insights/garnix-insights/cmd/garnix-insights/cli"
	"github.com/garnix-insights/garnix-insights/lib/garnix"
)

type validateTokenParams struct {
	globalParams
	tokenParams
	cli.OutputFormat
}

// tokenValidity is the json output of validate-token.
type tokenValidity struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func validateTokenCommand(env *Env) *cli.Command {
	var (
		params  validateTokenParams
		flagSet *pflag.FlagSet
	)

	return &cli.Command{
		Name:    "validate-token",
		Summary: "Check that Garnix accepts a JWT token",
		Description: `Ask Garnix whether the token is valid.

A rejected token exits with status 1. With -f json the result is always
written to stdout as {"valid": ..., ...} so scripts can inspect it.`,
		Flags: func() *pflag.FlagSet {
			flagSet = cli.FlagsFromParams("validate-token", &params)
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

			session, err := env.open("validate-token", &params, &params.globalParams, flagSet)
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

			err = provider.ValidateToken(ctx, token)
			switch {
			case err == nil:
				if format == cli.FormatJSON {
					return cli.WriteJSON(env.Stdout, tokenValidity{Valid: true, Message: "Token is valid"})
				}
				return session.printer().Line("[OK] JWT token is valid")

			case garnix.IsAuth(err):
				if format == cli.FormatJSON {
					if writeErr := cli.WriteJSON(env.Stdout, tokenValidity{Valid: false, Error: err.Error()}); writeErr != nil {
						return writeErr
					}
					return &cli.ExitError{Code: 1}
				}
				return cli.Forbidden("JWT token is invalid: %v", err)

			default:
				return cli.FromProviderError(err)
			}
		},
	}
}
