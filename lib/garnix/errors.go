// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package garnix

import (
	"errors"
	"strings"
)

// ErrorKind classifies a failure from the Garnix client.
type ErrorKind string

const (
	KindNetwork    ErrorKind = "network"
	KindAuth       ErrorKind = "auth"
	KindNotFound   ErrorKind = "not_found"
	KindRateLimit  ErrorKind = "rate_limit"
	KindAPI        ErrorKind = "api"
	KindParse      ErrorKind = "parse"
	KindConfig     ErrorKind = "config"
	KindIO         ErrorKind = "io"
	KindValidation ErrorKind = "validation"
	KindTimeout    ErrorKind = "timeout"
)

// Error is the error type returned by every Client operation.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// StatusCode is the HTTP status of the response that produced
	// the error. Zero when no response was received.
	StatusCode int

	// Message is the human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (err *Error) Error() string {
	if err.Err != nil {
		return err.Message + ": " + err.Err.Error()
	}
	return err.Message
}

func (err *Error) Unwrap() error { return err.Err }

// KindOf returns the kind of the first *Error in err's chain, or ""
// when err is not a Garnix client error.
func KindOf(err error) ErrorKind {
	var garnixErr *Error
	if errors.As(err, &garnixErr) {
		return garnixErr.Kind
	}
	return ""
}

// IsRetryable reports whether repeating the same request might
// succeed: network failures, timeouts, rate limiting, and 5xx
// responses.
func IsRetryable(err error) bool {
	var garnixErr *Error
	if !errors.As(err, &garnixErr) {
		return false
	}
	switch garnixErr.Kind {
	case KindNetwork, KindRateLimit, KindTimeout:
		return true
	case KindAPI:
		return garnixErr.StatusCode >= 500 || strings.HasPrefix(garnixErr.Message, "HTTP 5")
	default:
		return false
	}
}

// IsClientError reports whether the failure was caused by the
// caller's input or credentials rather than by the service.
func IsClientError(err error) bool {
	switch KindOf(err) {
	case KindAuth, KindNotFound, KindValidation, KindConfig:
		return true
	default:
		return false
	}
}

// IsNotFound reports whether err is a 404 from Garnix.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsAuth reports whether Garnix rejected the token.
func IsAuth(err error) bool { return KindOf(err) == KindAuth }

// IsRateLimited reports whether Garnix answered 429 even after the
// client's retry.
func IsRateLimited(err error) bool { return KindOf(err) == KindRateLimit }

// IsTimeout reports whether the request deadline expired before
// Garnix answered.
func IsTimeout(err error) bool { return KindOf(err) == KindTimeout }
