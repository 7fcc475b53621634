// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"io"
)

// Format names an output rendering for commands that print results.
type Format string

const (
	// FormatHuman is markdown-flavoured text with status labels.
	FormatHuman Format = "human"
	// FormatJSON is indented JSON of the full result.
	FormatJSON Format = "json"
	// FormatPlain is undecorated key: value text for scripts.
	FormatPlain Format = "plain"
)

// OutputFormat is an embeddable struct that adds --format to a
// command's parameter struct.
//
//	type logsParams struct {
//	    cli.OutputFormat
//	    BuildID string `flag:"build-id" desc:"build to fetch logs for"`
//	}
type OutputFormat struct {
	FormatName string `json:"-" flag:"format,f" default:"human" desc:"output format: human, json, or plain"`
}

// Format returns the validated output format.
func (o *OutputFormat) Format() (Format, error) {
	switch format := Format(o.FormatName); format {
	case FormatHuman, FormatJSON, FormatPlain:
		return format, nil
	default:
		return "", Validation("unknown output format %q (want human, json, or plain)", o.FormatName)
	}
}

// WriteJSON marshals value as indented JSON to w, without HTML
// escaping so that arrows and emoji in messages survive untouched.
func WriteJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(value)
}
