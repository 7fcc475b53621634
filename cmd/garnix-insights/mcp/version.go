// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package mcp

import (
	"slices"
	"strings"
)

// ProtocolVersion is a dated MCP protocol revision.
type ProtocolVersion string

const (
	Version20250618 ProtocolVersion = "2025-06-18"
	Version20250326 ProtocolVersion = "2025-03-26"
	Version20241105 ProtocolVersion = "2024-11-05"

	// DefaultVersion is the result of negotiating an absent or
	// unrecognized selector.
	DefaultVersion = Version20250618
)

// supportedVersions is ordered preferred-first.
var supportedVersions = []ProtocolVersion{
	Version20250618,
	Version20250326,
	Version20241105,
}

// versionAliases maps the lower-cased selector aliases to versions.
var versionAliases = map[string]ProtocolVersion{
	"latest": Version20250618,
	"stable": Version20250326,
	"legacy": Version20241105,
}

// SupportedVersions returns the protocol versions this server speaks,
// preferred first. The returned slice is a copy.
func SupportedVersions() []ProtocolVersion {
	return slices.Clone(supportedVersions)
}

// IsSupported reports whether version is one of [SupportedVersions].
func IsSupported(version ProtocolVersion) bool {
	return slices.Contains(supportedVersions, version)
}

// Negotiate resolves a version selector. The selector is trimmed and
// aliases match case-insensitively; an exact supported date string
// selects that version. Anything else, including the empty string,
// yields [DefaultVersion]. Negotiate never fails.
func Negotiate(selector string) ProtocolVersion {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return DefaultVersion
	}
	candidate, ok := versionAliases[strings.ToLower(selector)]
	if !ok {
		candidate = ProtocolVersion(selector)
	}
	if IsSupported(candidate) {
		return candidate
	}
	return DefaultVersion
}
