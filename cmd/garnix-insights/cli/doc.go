// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for garnix-insights.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in the commands package
// and dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples.
//
// Parameters are declared as tagged structs and bound with [BindFlags]
// (flag, desc, default and env tags). The same structs feed
// [ParamsSchema], which produces the JSON Schema advertised for MCP tool
// inputs, so the flag surface and the tool surface describe one shape.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
//
// Errors that carry meaning beyond their text are [ToolError] values with
// an [ErrorCategory]; the MCP server turns the category into structured
// error data and main maps [ExitError] to a process exit status.
package cli
