// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies tool errors so that MCP clients can make
// programmatic decisions (retry, fix input, escalate) without parsing
// error message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the caller provided invalid input:
	// missing required arguments, unknown tool, malformed commit id.
	// The caller should fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates the commit or build does not exist on
	// the build service. Retrying with the same parameters will not help.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden indicates the token was rejected.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryTransient indicates a temporary failure: network error,
	// upstream timeout, rate limit, server-side 5xx. The caller should
	// back off and retry.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal indicates an unexpected error: bugs, I/O
	// failures, responses that could not be decoded.
	CategoryInternal ErrorCategory = "internal"
)

// Retryable reports whether a caller may reasonably retry an operation
// that failed with this category.
func (c ErrorCategory) Retryable() bool {
	return c == CategoryTransient
}

// ToolError is a categorized error returned by commands and MCP tools.
// The MCP server inspects the Category to produce structured error data
// alongside the human-readable message.
//
// Use the category-specific constructors (Validation, NotFound, etc.)
// or [Wrap] rather than constructing ToolError directly.
type ToolError struct {
	Category ErrorCategory
	Err      error
}

// Error returns the underlying error message. The category travels
// separately, never in the text.
func (e *ToolError) Error() string { return e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

// Wrap attaches a category to an existing error, keeping its chain
// intact for errors.Is and errors.As.
func Wrap(category ErrorCategory, err error) *ToolError {
	return &ToolError{Category: category, Err: err}
}

// CategoryOf returns the category of the first ToolError in err's
// chain, or CategoryInternal when there is none.
func CategoryOf(err error) ErrorCategory {
	var toolError *ToolError
	if errors.As(err, &toolError) {
		return toolError.Category
	}
	return CategoryInternal
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced resource does not exist.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Forbidden creates a forbidden error: the credential was rejected.
func Forbidden(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error: a temporary failure that may succeed on retry.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
