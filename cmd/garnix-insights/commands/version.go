// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/garnix-insights/garnix-insights/cmd/garnix-insights/cli"
	"github.com/garnix-insights/garnix-insights/lib/version"
)

type versionParams struct {
	JSON bool `json:"-" flag:"json" desc:"print machine-readable build information"`
}

func versionCommand(env *Env) *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(_ context.Context, args []string) error {
			if err := noArguments(args); err != nil {
				return err
			}
			if params.JSON {
				return cli.WriteJSON(env.Stdout, version.Current())
			}
			_, err := fmt.Fprintf(env.Stdout, "garnix-insights %s\n", version.Full())
			return err
		},
	}
}
