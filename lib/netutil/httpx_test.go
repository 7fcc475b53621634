// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestReadResponse(t *testing.T) {
	t.Run("normal body", func(t *testing.T) {
		data, err := ReadResponse(bytes.NewReader([]byte(`{"status":"ok"}`)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `{"status":"ok"}` {
			t.Fatalf("got %q, want %q", data, `{"status":"ok"}`)
		}
	})

	t.Run("read error propagates", func(t *testing.T) {
		if _, err := ReadResponse(&failReader{}); err == nil {
			t.Fatal("expected error from failing reader")
		}
	})
}

func TestDecodeResponse(t *testing.T) {
	var result struct {
		Finished bool `json:"finished"`
	}
	if err := DecodeResponse(strings.NewReader(`{"finished":true}`), &result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Finished {
		t.Error("finished: got false, want true")
	}

	if err := DecodeResponse(strings.NewReader(`not json`), &result); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestDecodeRequest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var request struct {
			CommitID string `json:"commit_id"`
		}
		if err := DecodeRequest(strings.NewReader(`{"commit_id":"abc1234"}`), &request); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if request.CommitID != "abc1234" {
			t.Errorf("commit_id = %q", request.CommitID)
		}
	})

	t.Run("too large", func(t *testing.T) {
		body := `{"pad":"` + strings.Repeat("x", int(MaxRequestSize)) + `"}`
		err := DecodeRequest(strings.NewReader(body), &struct{}{})
		if !errors.Is(err, ErrBodyTooLarge) {
			t.Fatalf("got %v, want ErrBodyTooLarge", err)
		}
	})

	t.Run("read error propagates", func(t *testing.T) {
		if err := DecodeRequest(&failReader{}, &struct{}{}); err == nil {
			t.Fatal("expected error from failing reader")
		}
	})
}

// failReader always returns an error on Read.
type failReader struct{}

func (*failReader) Read([]byte) (int, error) {
	return 0, fmt.Errorf("simulated read failure")
}
