// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/garnix-insights/garnix-insights/cmd/garnix-insights/cli"
	"github.com/garnix-insights/garnix-insights/lib/sealed"
	"github.com/garnix-insights/garnix-insights/lib/secret"
)

type sealTokenParams struct {
	Recipients       []string `json:"recipients" flag:"recipient,r" desc:"age recipient (age1...) to encrypt to; repeatable"`
	Output           string   `json:"output" flag:"output,o" desc:"write the sealed token to this file instead of stdout"`
	GenerateIdentity string   `json:"generate_identity" flag:"generate-identity" desc:"create a new age identity at this path and encrypt to it"`
}

func sealTokenCommand(env *Env) *cli.Command {
	var params sealTokenParams

	return &cli.Command{
		Name:    "seal-token",
		Summary: "Encrypt a JWT token for use as auth.token_file",
		Description: `Read a Garnix JWT token from stdin and encrypt it with age to one or
more recipients. The armored result can be stored in a repository or a
dotfile and referenced as auth.token_file (with a .age suffix) together
with auth.identity_file.

With --generate-identity a new X25519 identity is written to the given
path (mode 0600, never overwritten) and added to the recipients.`,
		Usage: "garnix-insights seal-token (--recipient <age1...> | --generate-identity <path>) [--output <file>]",
		Examples: []cli.Example{
			{
				Description: "Seal a token to an existing key",
				Command:     "printf %s \"$GARNIX_JWT_TOKEN\" | garnix-insights seal-token -r age1... -o ~/.config/garnix/token.age",
			},
			{
				Description: "Create a key and seal to it",
				Command:     "garnix-insights seal-token --generate-identity ~/.config/garnix/identity.txt -o token.age < token.txt",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("seal-token", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if err := noArguments(args); err != nil {
				return err
			}
			if len(params.Recipients) == 0 && params.GenerateIdentity == "" {
				return cli.Validation("at least one --recipient or --generate-identity is required")
			}
			recipients := append([]string(nil), params.Recipients...)
			for _, recipient := range recipients {
				if err := sealed.ParseRecipient(recipient); err != nil {
					return cli.Validation("%v", err)
				}
			}

			token, err := secret.ReadFrom(env.Stdin)
			if err != nil {
				if errors.Is(err, secret.ErrEmpty) {
					return cli.Validation("no token on stdin")
				}
				return cli.Validation("reading token: %v", err)
			}
			defer token.Close()

			if params.GenerateIdentity != "" {
				recipient, err := writeIdentity(params.GenerateIdentity)
				if err != nil {
					return err
				}
				fmt.Fprintf(env.Stderr, "Public key: %s\n", recipient)
				recipients = append(recipients, recipient)
			}

			ciphertext, err := sealed.Seal(token.Bytes(), recipients)
			if err != nil {
				return cli.Internal("sealing token: %v", err)
			}

			if params.Output == "" {
				_, err = env.Stdout.Write(ciphertext)
				return err
			}
			if err := os.WriteFile(params.Output, ciphertext, 0o600); err != nil {
				return cli.Internal("writing sealed token: %v", err)
			}
			fmt.Fprintf(env.Stderr, "Sealed token written to %s\n", params.Output)
			return nil
		},
	}
}

// writeIdentity creates a new age identity file at path and returns its
// recipient. An existing file is never replaced.
func writeIdentity(path string) (string, error) {
	keypair, err := sealed.GenerateKeypair()
	if err != nil {
		return "", cli.Internal("%v", err)
	}
	defer keypair.Close()

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", cli.Validation("%s already exists", path)
		}
		return "", cli.Internal("creating identity file: %v", err)
	}
	defer file.Close()

	header := fmt.Sprintf("# created: %s\n# public key: %s\n", time.Now().UTC().Format(time.RFC3339), keypair.Recipient)
	if _, err := file.WriteString(header); err != nil {
		return "", cli.Internal("writing identity file: %v", err)
	}
	if _, err := file.Write(keypair.Identity.Bytes()); err != nil {
		return "", cli.Internal("writing identity file: %v", err)
	}
	if _, err := file.WriteString("\n"); err != nil {
		return "", cli.Internal("writing identity file: %v", err)
	}
	return keypair.Recipient, nil
}
