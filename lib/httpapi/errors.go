// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package httpapi

import (
	"errors"
	"net/http"

	"github.com/garnix-insights/garnix-insights/lib/garnix"
)

// Error codes carried in ErrorBody.Code.
const (
	CodeMissingToken         = "MISSING_TOKEN"
	CodeMissingCommitID      = "MISSING_COMMIT_ID"
	CodeInvalidCommitID      = "INVALID_COMMIT_ID"
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeRequestTooLarge      = "REQUEST_TOO_LARGE"
	CodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	CodeNotFound             = "NOT_FOUND"
	CodeRateLimited          = "RATE_LIMITED"
	CodeNetworkError         = "NETWORK_ERROR"
	CodeInternalError        = "INTERNAL_ERROR"
)

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`

	// Details carries the upstream cause for NETWORK_ERROR.
	Details string `json:"details,omitempty"`

	// AvailableEndpoints is set on 404s for unknown paths.
	AvailableEndpoints []string `json:"available_endpoints,omitempty"`
}

// providerFailure maps a Garnix client error to a status code and body.
// Auth, not-found, and rate-limit messages come from the client and are
// safe to echo. Internal errors are not.
func providerFailure(err error) (int, ErrorBody) {
	switch garnix.KindOf(err) {
	case garnix.KindAuth:
		return http.StatusUnauthorized, ErrorBody{Code: CodeAuthenticationFailed, Message: message(err)}
	case garnix.KindNotFound:
		return http.StatusNotFound, ErrorBody{Code: CodeNotFound, Message: message(err)}
	case garnix.KindRateLimit:
		return http.StatusTooManyRequests, ErrorBody{Code: CodeRateLimited, Message: message(err)}
	case garnix.KindNetwork, garnix.KindTimeout:
		return http.StatusBadGateway, ErrorBody{
			Code:    CodeNetworkError,
			Message: "Failed to connect to Garnix API",
			Details: err.Error(),
		}
	default:
		return http.StatusInternalServerError, ErrorBody{Code: CodeInternalError, Message: "Internal server error"}
	}
}

// message returns the client's own description without the wrapped
// cause chain.
func message(err error) string {
	var garnixErr *garnix.Error
	if errors.As(err, &garnixErr) {
		return garnixErr.Message
	}
	return err.Error()
}
