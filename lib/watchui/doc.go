// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

// Package watchui follows a commit's Garnix builds until they settle.
//
// A commit is settled once Garnix has scheduled at least one build and
// none of them is pending. [Poll] is the plain loop used when output is
// not a terminal: it calls a callback after every fetch. [Run] drives
// the same loop through a bubbletea program with a spinner, a live
// per-build list, and key bindings to refresh or quit.
//
// Both wait on an injected clock.Clock between polls. Retryable fetch
// errors (network, timeout, rate limit, 5xx) are reported and the loop
// continues; any other error ends it.
package watchui
