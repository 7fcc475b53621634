// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func withBuildInfo(t *testing.T, commit string, info *debug.BuildInfo) {
	t.Helper()
	savedCommit, savedRead := GitCommit, readBuildInfo
	t.Cleanup(func() {
		GitCommit, readBuildInfo = savedCommit, savedRead
	})
	GitCommit = commit
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return info, info != nil
	}
}

func TestCommitPrefersInjectedValue(t *testing.T) {
	withBuildInfo(t, "abc1234", &debug.BuildInfo{
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffffffffffffffff"}},
	})
	if got := Commit(); got != "abc1234" {
		t.Errorf("Commit() = %q, want abc1234", got)
	}
}

func TestCommitFallsBackToBuildInfo(t *testing.T) {
	withBuildInfo(t, "unknown", &debug.BuildInfo{
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
		},
	})
	if got := Commit(); got != "0123456" {
		t.Errorf("Commit() = %q, want 0123456", got)
	}
	if !strings.Contains(Info(), "0123456-dirty") {
		t.Errorf("Info() = %q, want dirty marker", Info())
	}
	if !Current().Dirty {
		t.Error("Current().Dirty = false, want true")
	}
}

func TestCommitWithoutBuildInfo(t *testing.T) {
	withBuildInfo(t, "", nil)
	if got := Commit(); got != "unknown" {
		t.Errorf("Commit() = %q, want unknown", got)
	}
}

func TestFullIncludesPlatform(t *testing.T) {
	withBuildInfo(t, "abc1234", nil)
	full := Full()
	if !strings.HasPrefix(full, Short()+" (abc1234, ") {
		t.Errorf("Full() = %q", full)
	}
	if !strings.Contains(full, "Platform: "+Current().Platform) {
		t.Errorf("Full() missing platform: %q", full)
	}
}
