// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package cli

// ToolAnnotations describes behavioral properties of an operation when
// it is exposed as an MCP tool. The MCP server serializes them as the
// tool's annotations hints (readOnlyHint and friends), which help agents
// decide which tools are safe to call without confirmation.
//
// All fields are pointers; nil means "unspecified" and is omitted.
type ToolAnnotations struct {
	// Title is a human-facing display name for the tool.
	Title string `json:"title,omitempty"`

	// ReadOnly is true when the operation only reads state.
	ReadOnly *bool `json:"readOnlyHint,omitempty"`

	// Destructive is true when the operation may irreversibly remove
	// or damage data.
	Destructive *bool `json:"destructiveHint,omitempty"`

	// Idempotent is true when repeated calls with identical arguments
	// produce the same result.
	Idempotent *bool `json:"idempotentHint,omitempty"`

	// OpenWorld is true when the operation talks to systems beyond the
	// process, such as the Garnix API.
	OpenWorld *bool `json:"openWorldHint,omitempty"`
}

// RemoteQuery returns annotations for operations that read state from
// the build service without modifying it. Every garnix-insights tool is
// one of these.
func RemoteQuery(title string) *ToolAnnotations {
	return &ToolAnnotations{
		Title:       title,
		ReadOnly:    boolPtr(true),
		Destructive: boolPtr(false),
		Idempotent:  boolPtr(true),
		OpenWorld:   boolPtr(true),
	}
}

func boolPtr(value bool) *bool {
	return &value
}
