// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

// Package garnix is a typed client for the Garnix CI REST API.
//
// The [Client] is the build status provider shared by every front end
// in this module: the command-line tools, the HTTP API, and the MCP
// server. It holds no credential of its own. Each call carries the
// caller's JWT token, so a single Client can serve many users
// concurrently.
//
// Three operations are exposed:
//
//   - [Client.FetchBuildStatus]: GET /builds/{commit}
//   - [Client.FetchBuildLogs]: GET /builds/{id}/logs
//   - [Client.ValidateToken]: GET /user
//
// Failures are returned as [*Error] values carrying an [ErrorKind].
// Callers branch on the kind through the predicate helpers
// ([IsRetryable], [IsClientError], [KindOf]) rather than matching
// message text.
package garnix
