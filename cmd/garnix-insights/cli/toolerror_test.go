// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestToolError_Constructors(t *testing.T) {
	tests := []struct {
		err       *ToolError
		category  ErrorCategory
		retryable bool
	}{
		{Validation("missing %s", "token"), CategoryValidation, false},
		{NotFound("commit %s not found", "abc"), CategoryNotFound, false},
		{Forbidden("invalid token"), CategoryForbidden, false},
		{Transient("rate limited"), CategoryTransient, true},
		{Internal("decode failed"), CategoryInternal, false},
	}

	for _, test := range tests {
		t.Run(string(test.category), func(t *testing.T) {
			if test.err.Category != test.category {
				t.Errorf("Category = %q, want %q", test.err.Category, test.category)
			}
			if test.err.Category.Retryable() != test.retryable {
				t.Errorf("Retryable() = %v, want %v", test.err.Category.Retryable(), test.retryable)
			}
		})
	}
}

func TestToolError_MessageExcludesCategory(t *testing.T) {
	err := Validation("missing required argument: %s", "commit_id")
	if err.Error() != "missing required argument: commit_id" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestToolError_WrapPreservesChain(t *testing.T) {
	sentinel := errors.New("connection refused")
	wrapped := fmt.Errorf("fetching status: %w", Wrap(CategoryTransient, sentinel))

	if !errors.Is(wrapped, sentinel) {
		t.Error("errors.Is did not find the sentinel through ToolError")
	}
	if CategoryOf(wrapped) != CategoryTransient {
		t.Errorf("CategoryOf = %q, want transient", CategoryOf(wrapped))
	}
}

func TestCategoryOf_DefaultsToInternal(t *testing.T) {
	if got := CategoryOf(errors.New("plain")); got != CategoryInternal {
		t.Errorf("CategoryOf(plain) = %q, want internal", got)
	}
}
