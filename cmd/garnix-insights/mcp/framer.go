// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package mcp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// flusher is implemented by buffered writers such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// framer reads and writes line-delimited JSON messages.
type framer struct {
	reader *bufio.Reader
	logger *slog.Logger

	// sawEOF is set once the reader has returned the final,
	// unterminated line so that the next read reports end of stream.
	sawEOF bool

	writeMu sync.Mutex
	writer  io.Writer
}

func newFramer(input io.Reader, output io.Writer, logger *slog.Logger) *framer {
	return &framer{
		reader: bufio.NewReader(input),
		writer: output,
		logger: logger,
	}
}

// readMessage returns the next line that holds a JSON object, as the
// members of that object. Blank lines are skipped silently; lines that
// are not a JSON object are logged at WARN and skipped. It returns
// io.EOF at a clean end of stream and any other read error verbatim.
func (f *framer) readMessage() (map[string]json.RawMessage, error) {
	for {
		if f.sawEOF {
			return nil, io.EOF
		}

		line, err := f.reader.ReadBytes('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("reading message: %w", err)
			}
			if len(line) == 0 {
				return nil, io.EOF
			}
			f.sawEOF = true
		}

		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		var members map[string]json.RawMessage
		if err := json.Unmarshal(line, &members); err != nil || members == nil {
			f.logger.Warn("skipping malformed message",
				"error", errorText(err, "not a JSON object"),
				"bytes", len(line),
			)
			continue
		}
		return members, nil
	}
}

// writeMessage encodes value as one compact JSON line and writes it in
// a single Write call, flushing afterwards when the writer buffers.
func (f *framer) writeMessage(value any) error {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	written, err := f.writer.Write(buffer.Bytes())
	if err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	if written != buffer.Len() {
		return fmt.Errorf("writing message: %w", io.ErrShortWrite)
	}
	if buffered, ok := f.writer.(flusher); ok {
		if err := buffered.Flush(); err != nil {
			return fmt.Errorf("flushing message: %w", err)
		}
	}
	return nil
}

func errorText(err error, fallback string) string {
	if err != nil {
		return err.Error()
	}
	return fallback
}
