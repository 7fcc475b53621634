// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

// Package httpapi is the HTTP front-end for Garnix build status.
//
// Routes:
//
//	GET  /                                  HTML API documentation
//	GET  /api/v1/health                     liveness and version
//	POST /api/v1/build-status               {"jwt_token", "commit_id"}
//	GET  /api/v1/build-status/{commit_id}   token via ?token= or Bearer
//	GET  /api/v1/builds/{build_id}/logs     token via ?token= or Bearer
//
// Responses are JSON unless the client sends "Accept: application/cbor",
// in which case the same values are encoded with lib/codec. Bodies are
// gzip-compressed for clients that accept it. Build status responses
// carry a BLAKE3 strong ETag of the encoded body and honour
// If-None-Match with 304 Not Modified.
//
// Errors use the envelope {"success": false, "error": {"code",
// "message"}} with the codes listed in errors.go.
package httpapi
