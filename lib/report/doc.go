// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

// Package report renders Garnix build status for people and agents.
//
// The string functions ([Summary], [Details], [BuildBlocks],
// [ReadinessMessage], [ProgressLine]) are pure and shared by every
// front end: the HTTP API embeds the markdown, the MCP tools return the
// block and readiness text, and the watch command prints progress
// lines. [Printer] writes the command-line formats (human, plain, JSON,
// log listings) and adds colour only when asked to, so piped output
// stays byte-for-byte stable.
package report
