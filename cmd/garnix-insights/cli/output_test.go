// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestOutputFormat(t *testing.T) {
	for _, name := range []string{"human", "json", "plain"} {
		output := OutputFormat{FormatName: name}
		format, err := output.Format()
		if err != nil {
			t.Errorf("Format(%q): %v", name, err)
		}
		if string(format) != name {
			t.Errorf("Format(%q) = %q", name, format)
		}
	}

	output := OutputFormat{FormatName: "yaml"}
	if _, err := output.Format(); err == nil || CategoryOf(err) != CategoryValidation {
		t.Errorf("Format(yaml) error = %v, want validation error", err)
	}
}

func TestWriteJSON_NoHTMLEscaping(t *testing.T) {
	var buffer bytes.Buffer
	if err := WriteJSON(&buffer, map[string]string{"duration": "a -> b <c>"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buffer.String(), `"a -> b <c>"`) {
		t.Errorf("output = %q, want unescaped angle brackets", buffer.String())
	}
	if !strings.HasSuffix(buffer.String(), "}\n") {
		t.Errorf("output = %q, want trailing newline", buffer.String())
	}
}

func TestNewCommandLogger_JSONWhenNotTerminal(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewCommandLogger(&buffer, false)

	logger.Debug("hidden")
	logger.Info("visible", "commit", "abc1234")

	output := buffer.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("debug record emitted at info level: %s", output)
	}
	if !strings.Contains(output, `"msg":"visible"`) || !strings.Contains(output, `"commit":"abc1234"`) {
		t.Errorf("output = %s, want JSON record", output)
	}
}

func TestNewCommandLogger_VerboseEnablesDebug(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewCommandLogger(&buffer, true)
	if !logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("debug not enabled with verbose=true")
	}
}
