// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil bounds HTTP body reads.
//
// Every JSON body this module reads, whether a Garnix API response or
// a request to the local HTTP API, goes through these helpers so that
// a misbehaving peer cannot make the process allocate without limit.
package netutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MaxResponseSize bounds reads of upstream API responses: 32 MiB.
// Build listings for large monorepos stay well under a megabyte.
const MaxResponseSize int64 = 32 << 20

// MaxRequestSize bounds reads of request bodies received by the local
// HTTP API: 64 KiB. Requests carry a token and a commit id.
const MaxRequestSize int64 = 64 << 10

// ErrBodyTooLarge is returned by DecodeRequest when the body exceeds
// MaxRequestSize.
var ErrBodyTooLarge = errors.New("request body too large")

// ReadResponse reads an API response body up to MaxResponseSize bytes.
// Use instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// DecodeResponse reads an API response body (up to MaxResponseSize
// bytes) and JSON-decodes it into v.
func DecodeResponse(body io.Reader, v any) error {
	data, err := ReadResponse(body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	return json.Unmarshal(data, v)
}

// DecodeRequest reads a request body and JSON-decodes it into v.
// Bodies larger than MaxRequestSize are rejected with ErrBodyTooLarge
// rather than silently truncated.
func DecodeRequest(body io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(body, MaxRequestSize+1))
	if err != nil {
		return fmt.Errorf("reading request body: %w", err)
	}
	if int64(len(data)) > MaxRequestSize {
		return ErrBodyTooLarge
	}
	return json.Unmarshal(data, v)
}
