// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// MaxSize bounds how much ReadFrom and ReadFile will accept. Garnix
// JWTs are a few hundred bytes.
const MaxSize = 64 << 10

// ErrEmpty is returned when the source holds only whitespace.
var ErrEmpty = errors.New("secret is empty")

// ReadFrom reads all of r (up to MaxSize) into a Buffer, trimming
// surrounding whitespace.
func ReadFrom(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		Zero(data)
		return nil, fmt.Errorf("reading secret: %w", err)
	}
	if len(data) > MaxSize {
		Zero(data)
		return nil, fmt.Errorf("secret exceeds %d bytes", MaxSize)
	}
	return fromRaw(data)
}

// ReadFile reads a secret from path, trimming surrounding whitespace.
func ReadFile(path string) (*Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buffer, err := ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return buffer, nil
}

func fromRaw(data []byte) (*Buffer, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		Zero(data)
		return nil, ErrEmpty
	}
	buffer, err := NewFromBytes(trimmed)
	Zero(data)
	if err != nil {
		return nil, err
	}
	return buffer, nil
}
