// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds Garnix API tokens in memory that is kept out of
// swap and core dumps.
//
// [Buffer] allocates its backing store with mmap(MAP_ANONYMOUS) outside
// the Go heap, locks it with mlock, and marks it MADV_DONTDUMP. Close
// zeroes, unlocks, and unmaps the region. The garbage collector never
// sees the memory, so it cannot leave stale copies behind.
//
// Tokens enter through [NewFromBytes] (which zeroes the caller's slice),
// [ReadFile], or [ReadFrom]. [Buffer.String] makes a heap copy and is
// only for API boundaries that need a string, such as the Authorization
// header built by lib/garnix.
//
// lib/sealed returns decrypted token files as Buffers.
package secret
