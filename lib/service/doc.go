// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

// Package service runs the garnix-insights HTTP API.
//
// [HTTPServer] binds a TCP listener, signals readiness through
// [HTTPServer.Ready], serves the caller's handler with request logging,
// and shuts down gracefully when its context is cancelled: the listener
// closes and in-flight requests get ShutdownTimeout to finish. Routing
// and response encoding live in lib/httpapi.
package service
