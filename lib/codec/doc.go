// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding used by the HTTP API.
//
// JSON is the default wire format for every garnix-insights surface.
// HTTP clients that send "Accept: application/cbor" get the same
// response bodies as CBOR instead. The encoder uses Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Identical values always encode
// to identical bytes, so the API's content hashes are stable.
//
// Response types carry only `json` struct tags. fxamacker/cbor reads
// them when `cbor` tags are absent, so field names and omitempty
// behave the same in both formats.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
package codec
