// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"net"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/garnix-insights/garnix-insights/cmd/garnix-insights/cli"
	"github.com/garnix-insights/garnix-insights/lib/httpapi"
	"github.com/garnix-insights/garnix-insights/lib/service"
)

type serverParams struct {
	globalParams
	Bind string `json:"bind" flag:"bind" desc:"address to listen on (default: server.bind, 127.0.0.1)"`
	Port int    `json:"port" flag:"port,p" desc:"port to listen on (default: server.port, 8080)"`
}

func serverCommand(env *Env) *cli.Command {
	var (
		params  serverParams
		flagSet *pflag.FlagSet
	)

	return &cli.Command{
		Name:    "server",
		Summary: "Serve the build status HTTP API",
		Description: `Run the HTTP API until interrupted.

Clients pass their own Garnix token with every request, either as a
?token= query parameter, a Bearer Authorization header, or the
jwt_token member of a POST body. The server holds no credential.

Responses are JSON unless the client accepts application/cbor, and are
gzip-compressed when the client accepts it. GET / serves the API
reference as HTML.`,
		Usage: "garnix-insights server [--bind <addr>] [--port <n>]",
		Examples: []cli.Example{
			{
				Description: "Listen on every interface",
				Command:     "garnix-insights server --bind 0.0.0.0 --port 8080",
			},
			{
				Description: "Query a commit",
				Command:     "curl -H \"Authorization: Bearer $GARNIX_JWT_TOKEN\" localhost:8080/api/v1/build-status/3f2a9c1d0e",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet = cli.FlagsFromParams("server", &params)
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if err := noArguments(args); err != nil {
				return err
			}
			if params.Port < 0 || params.Port > 65535 {
				return cli.Validation("--port must be between 1 and 65535, got %d", params.Port)
			}

			session, err := env.open("server", &params, &params.globalParams, flagSet)
			if err != nil {
				return err
			}

			bind := params.Bind
			if bind == "" {
				bind = session.config.Server.Bind
			}
			port := params.Port
			if port == 0 {
				port = session.config.Server.Port
			}

			provider, err := session.provider()
			if err != nil {
				return err
			}
			handler, err := httpapi.NewHandler(httpapi.Config{
				Provider: provider,
				Logger:   session.logger,
				Clock:    env.clock(),
			})
			if err != nil {
				return cli.Internal("building HTTP handler: %v", err)
			}

			server := service.NewHTTPServer(service.HTTPServerConfig{
				Address: net.JoinHostPort(bind, strconv.Itoa(port)),
				Handler: handler,
				Logger:  session.logger,
			})
			if err := server.Serve(ctx); err != nil {
				return cli.Internal("%v", err)
			}
			return nil
		},
	}
}
