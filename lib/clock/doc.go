// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Code that waits (rate limit backoff in the Garnix client, the poll
// loop in the watch command) takes a [Clock] instead of calling the
// time package directly. Production wires [Real]; tests wire [Fake]
// and drive time explicitly:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go pollSomething(c)
//	c.WaitForTimers(1)          // the goroutine is now blocked in After
//	c.Advance(10 * time.Second) // release it deterministically
package clock
