// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadFile(t *testing.T) {
	directory := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"plain", "jwt-token"},
		{"trailing newline", "jwt-token\n"},
		{"surrounding whitespace", "  jwt-token \r\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(directory, strings.ReplaceAll(test.name, " ", "-"))
			if err := os.WriteFile(path, []byte(test.content), 0o600); err != nil {
				t.Fatal(err)
			}
			buffer, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			defer buffer.Close()
			if got := buffer.String(); got != "jwt-token" {
				t.Errorf("got %q, want %q", got, "jwt-token")
			}
		})
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}

func TestReadFrom_Empty(t *testing.T) {
	_, err := ReadFrom(strings.NewReader(" \n\t"))
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
}

func TestReadFrom_TooLarge(t *testing.T) {
	_, err := ReadFrom(strings.NewReader(strings.Repeat("a", MaxSize+1)))
	if err == nil {
		t.Fatal("expected error for oversized secret")
	}
}
