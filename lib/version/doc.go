// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the
// garnix-insights binary.
//
// Three package-level variables are injected at build time via
// -ldflags -X:
//
//   - [GitCommit] -- short git SHA of the build
//   - [BuildTime] -- UTC timestamp of the build
//   - [Version] -- semantic version string (set manually for releases)
//
// When GitCommit is not injected, [Commit] falls back to the VCS
// revision recorded by the Go toolchain in the binary's build info,
// so `go install` builds still report where they came from.
//
// The version string appears in the MCP serverInfo, the Garnix API
// User-Agent, and the `version` subcommand.
package version
