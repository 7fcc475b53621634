// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

// Package mcp implements a Model Context Protocol server that exposes
// Garnix CI build status as MCP tools over newline-delimited JSON-RPC 2.0
// on a single byte stream (stdin/stdout for `garnix-insights mcp serve`).
//
// The server is built from five parts:
//
//   - [Negotiate] maps a version selector ("latest", "stable", "legacy",
//     or an exact date) to one of [SupportedVersions]. Unknown or absent
//     selectors fall back to [DefaultVersion] without error.
//   - The framer reads one JSON object per line and writes each reply as
//     a single newline-terminated write. Malformed lines are logged and
//     skipped; I/O failures end the session.
//   - The dispatcher answers initialize, tools/list and tools/call.
//     Every other method gets JSON-RPC error -32601.
//   - The tool registry holds get_build_status, get_build_logs and
//     check_commit_ready. Each requires commit_id and token, checked
//     before any call to the [BuildStatusProvider]. Tool failures are
//     JSON-RPC error -32000 with a category and retryable flag in the
//     error data.
//   - [Server.Run] announces the negotiated version (an unsolicited
//     response with id 0) before reading anything, then processes
//     requests strictly one at a time until end of stream.
//
// Provider calls are bounded by a per-call timeout (30s by default, see
// [WithToolTimeout]). A call that outlives it is answered with an
// "upstream timeout" error and the session continues.
package mcp
