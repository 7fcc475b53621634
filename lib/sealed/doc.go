// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed encrypts Garnix API tokens at rest with age.
//
// A sealed token file is an ASCII-armored age file encrypted to one or
// more X25519 recipients. The seal-token command writes them with
// [Seal]; the CLI, HTTP server, and MCP server read them back with
// [OpenFile] when auth.token_file ends in ".age". Binary (unarmored)
// age files are accepted on read.
//
// Private identities and decrypted tokens are returned as
// *secret.Buffer values and must be closed by the caller.
package sealed
