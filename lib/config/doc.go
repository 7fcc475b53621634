// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the garnix-insights configuration file.
//
// The file is named by the --config flag (via [LoadFile]) or the
// GARNIX_INSIGHTS_CONFIG environment variable (via [Load]). There is no
// search path: with neither set, [Load] returns [Default].
//
// The format follows the file extension. ".yaml" and ".yml" are parsed
// with gopkg.in/yaml.v3. ".json" and ".jsonc" may contain comments and
// trailing commas; they are normalised with github.com/tidwall/jsonc
// before decoding. Keys missing from the file keep their defaults.
//
// ${HOME} and ${VAR:-default} references are expanded in file path
// fields after loading.
//
// Command-line flags and GARNIX_* environment variables take precedence
// over file values; that layering happens in the command tree, not
// here.
package config
