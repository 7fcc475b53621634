// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [RequireReceive], [RequireSend], and [RequireClosed] wrap the
// select-with-timeout pattern used when a test waits on a goroutine
// (a server loop, a poller driven by a fake clock, a bubbletea
// command). They are the only place tests wait on wall-clock time;
// everything else is driven by lib/clock's fake.
//
// All helpers call t.Fatalf on failure rather than returning errors.
package testutil
