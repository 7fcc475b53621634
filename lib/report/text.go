// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/garnix-insights/garnix-insights/lib/garnix"
)

// IndentedJSON marshals value with two-space indentation and without
// HTML escaping. The result has no trailing newline.
func IndentedJSON(value any) (string, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buffer.String(), "\n"), nil
}

// BuildBlocks renders one block per build with its id, system, status,
// package and timing, separated by blank lines.
func BuildBlocks(commitID string, status *garnix.BuildStatus) string {
	if len(status.Builds) == 0 {
		return "No builds found for commit " + commitID
	}

	blocks := make([]string, 0, len(status.Builds))
	for _, build := range status.Builds {
		blocks = append(blocks, fmt.Sprintf(
			"Build ID: %s\nSystem: %s\nStatus: %s\nPackage: %s\nStarted: %s\nEnded: %s",
			build.ID,
			orDefault(build.System, "unknown"),
			build.Status.WithIndicator(),
			build.Package,
			build.StartTime,
			orDefault(build.EndTime, "still running"),
		))
	}
	return strings.Join(blocks, "\n\n")
}

// ReadinessMessage states whether a commit is ready, has no builds yet,
// or is not ready, with counts and the success rate.
func ReadinessMessage(commitID string, status *garnix.BuildStatus) string {
	total := len(status.Builds)
	switch status.Readiness() {
	case garnix.ReadinessReady:
		return fmt.Sprintf("✅ Commit %s is ready! All %d builds passed (100.0%% success rate).", commitID, total)
	case garnix.ReadinessNoBuilds:
		return fmt.Sprintf("⏳ Commit %s has no builds yet.", commitID)
	default:
		summary := status.Summary
		return fmt.Sprintf("❌ Commit %s is not ready. %d succeeded, %d failed, %d pending, %d cancelled out of %d builds (%.1f%% success rate).",
			commitID, summary.Succeeded, summary.Failed, summary.Pending, summary.Cancelled, total, status.SuccessRate())
	}
}

// ProgressLine is a one-line snapshot of a commit's builds, used when
// polling without an interactive terminal.
func ProgressLine(commitID string, status *garnix.BuildStatus) string {
	summary := status.Summary
	return fmt.Sprintf("%s: %d succeeded, %d failed, %d pending, %d cancelled (%.1f%% success rate)",
		ShortCommit(commitID), summary.Succeeded, summary.Failed, summary.Pending, summary.Cancelled, status.SuccessRate())
}

// SuccessLabel grades a success rate: [SUCCESS] at 100, [GOOD] from 80,
// [WARNING] below.
func SuccessLabel(rate float64) string {
	switch {
	case rate == 100:
		return "[SUCCESS]"
	case rate >= 80:
		return "[GOOD]"
	default:
		return "[WARNING]"
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
