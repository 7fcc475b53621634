// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

// garnix-insights reports Garnix CI build status. It provides terminal
// commands (fetch, logs, validate-token, watch), an HTTP API (server),
// an MCP server on stdin/stdout for AI assistants (mcp serve), and a
// helper for storing age-sealed tokens (seal-token).
package main
