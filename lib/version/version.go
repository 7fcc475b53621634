// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/garnix-insights/garnix-insights/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.3.0"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// BuildInfo is the machine-readable form of the version, emitted by
// `garnix-insights version --json`.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Dirty     bool   `json:"dirty"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Current returns the build information for the running binary.
func Current() BuildInfo {
	commit, dirty := vcsState()
	return BuildInfo{
		Version:   Version,
		Commit:    commit,
		Dirty:     dirty,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	commit, dirty := vcsState()
	suffix := ""
	if dirty {
		suffix = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, commit, suffix, BuildTime)
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Commit returns the git commit SHA.
func Commit() string {
	commit, _ := vcsState()
	return commit
}

// vcsState prefers the ldflags-injected commit and otherwise reads the
// vcs.revision and vcs.modified settings stamped by the toolchain.
func vcsState() (commit string, dirty bool) {
	if GitCommit != "unknown" && GitCommit != "" {
		return GitCommit, false
	}
	info, ok := readBuildInfo()
	if !ok {
		return "unknown", false
	}
	commit = "unknown"
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			commit = setting.Value
			if len(commit) > 7 {
				commit = commit[:7]
			}
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	return commit, dirty
}
