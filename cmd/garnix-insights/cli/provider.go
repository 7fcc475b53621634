// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/garnix-insights/garnix-insights/lib/garnix"
)

// FromProviderError attaches a category to a Garnix client failure.
// The message stays the client's own text. Errors that already carry
// a category pass through unchanged.
func FromProviderError(err error) error {
	if err == nil {
		return nil
	}
	var toolError *ToolError
	if errors.As(err, &toolError) {
		return err
	}

	var apiError *garnix.Error
	if errors.As(err, &apiError) {
		switch apiError.Kind {
		case garnix.KindAuth:
			return Wrap(CategoryForbidden, err)
		case garnix.KindNotFound:
			return Wrap(CategoryNotFound, err)
		case garnix.KindValidation:
			return Wrap(CategoryValidation, err)
		case garnix.KindRateLimit, garnix.KindNetwork, garnix.KindTimeout:
			return Wrap(CategoryTransient, err)
		case garnix.KindAPI:
			if apiError.StatusCode >= http.StatusInternalServerError {
				return Wrap(CategoryTransient, err)
			}
		}
		return Wrap(CategoryInternal, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Wrap(CategoryTransient, err)
	}
	return Wrap(CategoryInternal, err)
}
