// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"testing"
)

func TestNew(t *testing.T) {
	buffer, err := New(64)
	if err != nil {
		t.Fatalf("New(64): %v", err)
	}
	defer buffer.Close()

	if buffer.Len() != 64 {
		t.Errorf("Len() = %d, want 64", buffer.Len())
	}
	for index, value := range buffer.Bytes() {
		if value != 0 {
			t.Fatalf("byte %d = %d, want zero", index, value)
		}
	}
}

func TestNew_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := New(size); err == nil {
			t.Errorf("New(%d) succeeded", size)
		}
	}
}

func TestNewFromBytes_ZeroesSource(t *testing.T) {
	source := []byte("eyJhbGciOiJIUzI1NiJ9.payload.signature")
	want := string(source)

	buffer, err := NewFromBytes(source)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	defer buffer.Close()

	if got := buffer.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	for index, value := range source {
		if value != 0 {
			t.Fatalf("source byte %d not zeroed", index)
		}
	}
}

func TestNewFromBytes_Empty(t *testing.T) {
	if _, err := NewFromBytes(nil); err == nil {
		t.Fatal("expected error for empty source")
	}
}

func TestClose(t *testing.T) {
	buffer, err := NewFromBytes([]byte("token"))
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if buffer.Len() != 0 {
		t.Errorf("Len() after Close = %d", buffer.Len())
	}

	defer func() {
		if recover() == nil {
			t.Fatal("String() after Close did not panic")
		}
	}()
	_ = buffer.String()
}
