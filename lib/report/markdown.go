// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"strings"

	"github.com/garnix-insights/garnix-insights/lib/garnix"
)

// Summary renders the per-commit summary as markdown: a heading with
// the abbreviated commit, repository metadata, and the four counts.
func Summary(status *garnix.BuildStatus) string {
	summary := status.Summary
	return fmt.Sprintf("# Build Summary for %s\n\n"+
		"**Repository:** %s/%s\n"+
		"**Branch:** %s\n"+
		"**Started:** %s\n\n"+
		"## Summary\n"+
		"- [OK] Succeeded: %d\n"+
		"- [FAIL] Failed: %d\n"+
		"- ⏳ Pending: %d\n"+
		"- [CANCELLED] Cancelled: %d",
		ShortCommit(summary.GitCommit),
		summary.RepoOwner, summary.RepoName,
		summary.Branch,
		summary.StartTime,
		summary.Succeeded, summary.Failed, summary.Pending, summary.Cancelled,
	)
}

// Details renders one markdown section per build. Failed builds also
// list their derivation path.
func Details(builds []garnix.Build) string {
	if len(builds) == 0 {
		return "\n## No builds found"
	}

	var out strings.Builder
	out.WriteString("\n## Individual Builds\n")
	for _, build := range builds {
		fmt.Fprintf(&out, "### %s\n- **Status:** %s\n", build.Package, build.Status.WithIndicator())
		if build.System != "" {
			fmt.Fprintf(&out, "- **System:** %s\n", build.System)
		}
		fmt.Fprintf(&out, "- **Duration:** %s → %s\n- **Build ID:** %s\n\n", build.StartTime, build.EndTime, build.ID)
		if build.Status == garnix.StatusFailed && build.DrvPath != "" {
			fmt.Fprintf(&out, "- **Derivation:** %s\n", build.DrvPath)
		}
	}
	return out.String()
}

// ShortCommit returns the first eight characters of a commit SHA.
func ShortCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
