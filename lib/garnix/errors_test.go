// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package garnix

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{Kind: KindNetwork, Message: "garnix: GET https://garnix.io/api/user", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if got := err.Error(); got != "garnix: GET https://garnix.io/api/user: connection refused" {
		t.Errorf("Error() = %q", got)
	}
}

func TestKindOf_WrappedChain(t *testing.T) {
	wrapped := fmt.Errorf("fetching: %w", &Error{Kind: KindNotFound, Message: "Commit x not found"})
	if KindOf(wrapped) != KindNotFound {
		t.Errorf("KindOf = %q, want not_found", KindOf(wrapped))
	}
	if KindOf(errors.New("plain")) != "" {
		t.Error("KindOf should be empty for foreign errors")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"network", &Error{Kind: KindNetwork}, true},
		{"timeout", &Error{Kind: KindTimeout}, true},
		{"rate_limit", &Error{Kind: KindRateLimit}, true},
		{"api_5xx", &Error{Kind: KindAPI, StatusCode: 503, Message: "HTTP 503: busy"}, true},
		{"api_4xx", &Error{Kind: KindAPI, StatusCode: 400, Message: "HTTP 400: bad"}, false},
		{"auth", &Error{Kind: KindAuth}, false},
		{"not_found", &Error{Kind: KindNotFound}, false},
		{"foreign", errors.New("boom"), false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsRetryable(test.err); got != test.want {
				t.Errorf("IsRetryable = %v, want %v", got, test.want)
			}
		})
	}
}

func TestIsClientError(t *testing.T) {
	for _, kind := range []ErrorKind{KindAuth, KindNotFound, KindValidation, KindConfig} {
		if !IsClientError(&Error{Kind: kind}) {
			t.Errorf("IsClientError(%s) = false, want true", kind)
		}
	}
	for _, kind := range []ErrorKind{KindNetwork, KindAPI, KindParse, KindIO, KindRateLimit, KindTimeout} {
		if IsClientError(&Error{Kind: kind}) {
			t.Errorf("IsClientError(%s) = true, want false", kind)
		}
	}
}
