// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"os"

	"github.com/garnix-insights/garnix-insights/cmd/garnix-insights/cli"
	"github.com/garnix-insights/garnix-insights/lib/sealed"
	"github.com/garnix-insights/garnix-insights/lib/secret"
)

// token returns the JWT token in precedence order: the --token flag or
// $GARNIX_JWT_TOKEN (already merged into explicit), then auth.token,
// then auth.token_file. A token file ending in .age is decrypted with
// auth.identity_file.
func (s *session) token(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	auth := s.config.Auth
	if auth.Token != "" {
		return auth.Token, nil
	}
	if auth.TokenFile == "" {
		return "", cli.Validation("a Garnix JWT token is required: pass --token, set GARNIX_JWT_TOKEN, or configure auth.token_file")
	}

	var (
		buffer *secret.Buffer
		err    error
	)
	if auth.IsSealed() {
		s.logger.Debug("decrypting sealed token file", "path", auth.TokenFile)
		buffer, err = sealed.OpenFile(auth.TokenFile, auth.IdentityFile)
	} else {
		buffer, err = secret.ReadFile(auth.TokenFile)
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", cli.Validation("reading token file: %v", err)
		}
		return "", cli.Internal("reading token file: %v", err)
	}
	defer buffer.Close()

	return buffer.String(), nil
}
