// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/garnix-insights/garnix-insights/lib/garnix"
)

func sampleStatus() *garnix.BuildStatus {
	return &garnix.BuildStatus{
		Summary: garnix.Summary{
			RepoOwner: "garnix-io",
			RepoName:  "insights",
			GitCommit: "abc123def456",
			Branch:    "main",
			StartTime: "2025-01-01T00:00:00Z",
			Succeeded: 1,
			Failed:    1,
		},
		Builds: []garnix.Build{
			{
				ID:        "build-1",
				Package:   "hello",
				System:    "x86_64-linux",
				Status:    garnix.StatusSuccess,
				StartTime: "2025-01-01T00:00:00Z",
				EndTime:   "2025-01-01T00:05:00Z",
			},
			{
				ID:        "build-2",
				Package:   "broken",
				Status:    garnix.StatusFailed,
				StartTime: "2025-01-01T00:00:00Z",
				DrvPath:   "/nix/store/xyz-broken.drv",
			},
		},
	}
}

func TestSummary(t *testing.T) {
	summary := Summary(sampleStatus())
	for _, want := range []string{
		"# Build Summary for abc123de\n",
		"**Repository:** garnix-io/insights\n",
		"**Branch:** main\n",
		"## Summary\n",
		"- [OK] Succeeded: 1\n",
		"- [FAIL] Failed: 1\n",
		"- ⏳ Pending: 0\n",
		"- [CANCELLED] Cancelled: 0",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary missing %q:\n%s", want, summary)
		}
	}
}

func TestDetails(t *testing.T) {
	details := Details(sampleStatus().Builds)
	for _, want := range []string{
		"\n## Individual Builds\n",
		"### hello\n- **Status:** ✅ Success\n- **System:** x86_64-linux\n",
		"- **Duration:** 2025-01-01T00:00:00Z → 2025-01-01T00:05:00Z\n- **Build ID:** build-1\n\n",
		"### broken\n- **Status:** ❌ Failed\n- **Duration:**",
		"- **Derivation:** /nix/store/xyz-broken.drv\n",
	} {
		if !strings.Contains(details, want) {
			t.Errorf("Details missing %q:\n%s", want, details)
		}
	}

	if got := Details(nil); got != "\n## No builds found" {
		t.Errorf("Details(nil) = %q", got)
	}
}

func TestBuildBlocks(t *testing.T) {
	got := BuildBlocks("abc123def456", sampleStatus())
	want := "Build ID: build-1\nSystem: x86_64-linux\nStatus: ✅ Success\nPackage: hello\n" +
		"Started: 2025-01-01T00:00:00Z\nEnded: 2025-01-01T00:05:00Z\n\n" +
		"Build ID: build-2\nSystem: unknown\nStatus: ❌ Failed\nPackage: broken\n" +
		"Started: 2025-01-01T00:00:00Z\nEnded: still running"
	if got != want {
		t.Errorf("BuildBlocks =\n%s\nwant\n%s", got, want)
	}

	if got := BuildBlocks("deadbeef", &garnix.BuildStatus{}); got != "No builds found for commit deadbeef" {
		t.Errorf("BuildBlocks(empty) = %q", got)
	}
}

func TestReadinessMessage(t *testing.T) {
	ready := &garnix.BuildStatus{
		Summary: garnix.Summary{Succeeded: 2},
		Builds:  []garnix.Build{{Status: garnix.StatusSuccess}, {Status: garnix.StatusSuccess}},
	}
	tests := []struct {
		name   string
		status *garnix.BuildStatus
		want   string
	}{
		{"ready", ready, "✅ Commit c0ffee1 is ready! All 2 builds passed (100.0% success rate)."},
		{"no builds", &garnix.BuildStatus{}, "⏳ Commit c0ffee1 has no builds yet."},
		{"not ready", sampleStatus(), "❌ Commit c0ffee1 is not ready. 1 succeeded, 1 failed, 0 pending, 0 cancelled out of 2 builds (50.0% success rate)."},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ReadinessMessage("c0ffee1", test.status); got != test.want {
				t.Errorf("ReadinessMessage = %q, want %q", got, test.want)
			}
		})
	}
}

func TestSuccessLabel(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{100, "[SUCCESS]"},
		{99.9, "[GOOD]"},
		{80, "[GOOD]"},
		{79.9, "[WARNING]"},
		{0, "[WARNING]"},
	}
	for _, test := range tests {
		if got := SuccessLabel(test.rate); got != test.want {
			t.Errorf("SuccessLabel(%v) = %q, want %q", test.rate, got, test.want)
		}
	}
}

func TestProgressLine(t *testing.T) {
	got := ProgressLine("abc123def456", sampleStatus())
	want := "abc123de: 1 succeeded, 1 failed, 0 pending, 0 cancelled (50.0% success rate)"
	if got != want {
		t.Errorf("ProgressLine = %q, want %q", got, want)
	}
}

func TestIndentedJSON(t *testing.T) {
	got, err := IndentedJSON(map[string]string{"duration": "a → b <c>"})
	if err != nil {
		t.Fatalf("IndentedJSON: %v", err)
	}
	if got != "{\n  \"duration\": \"a → b <c>\"\n}" {
		t.Errorf("IndentedJSON = %q", got)
	}
}

func TestPrinter_HumanWithoutColor(t *testing.T) {
	var buffer bytes.Buffer
	if err := NewPrinter(&buffer, false, 0).Human(sampleStatus()); err != nil {
		t.Fatalf("Human: %v", err)
	}
	output := buffer.String()

	if !strings.HasPrefix(output, Summary(sampleStatus())+"\n") {
		t.Errorf("output does not start with the summary:\n%s", output)
	}
	for _, want := range []string{
		"\n[SEARCH] Failed Builds:\n",
		"  • broken (unknown): ❌ Failed\n",
		"    Derivation: /nix/store/xyz-broken.drv\n",
		"\n[WARNING] Success Rate: 50.0%\n",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	if strings.Contains(output, "\x1b[") {
		t.Errorf("uncoloured output contains escape sequences: %q", output)
	}
}

func TestPrinter_HumanTruncatesToWidth(t *testing.T) {
	var buffer bytes.Buffer
	if err := NewPrinter(&buffer, false, 20).Human(sampleStatus()); err != nil {
		t.Fatalf("Human: %v", err)
	}
	if !strings.Contains(buffer.String(), "    Derivation: /ni…\n") {
		t.Errorf("derivation line not truncated:\n%s", buffer.String())
	}
}

func TestPrinter_HumanWithColor(t *testing.T) {
	var buffer bytes.Buffer
	if err := NewPrinter(&buffer, true, 0).Human(sampleStatus()); err != nil {
		t.Fatalf("Human: %v", err)
	}
	if !strings.Contains(buffer.String(), "\x1b[") {
		t.Errorf("coloured output has no escape sequences: %q", buffer.String())
	}
}

func TestPrinter_Plain(t *testing.T) {
	var buffer bytes.Buffer
	if err := NewPrinter(&buffer, false, 0).Plain(sampleStatus()); err != nil {
		t.Fatalf("Plain: %v", err)
	}
	want := "Build Status for abc123def456\n" +
		"Repository: garnix-io/insights\n" +
		"Branch: main\n" +
		"Started: 2025-01-01T00:00:00Z\n\n" +
		"Summary:\n" +
		"  Succeeded: 1\n" +
		"  Failed: 1\n" +
		"  Pending: 0\n" +
		"  Cancelled: 0\n\n" +
		"Individual Builds:\n" +
		"  hello - Success (x86_64-linux)\n" +
		"  broken - Failed (unknown)\n" +
		"Success Rate: 50.0%\n"
	if buffer.String() != want {
		t.Errorf("Plain =\n%s\nwant\n%s", buffer.String(), want)
	}
}

func TestPrinter_Logs(t *testing.T) {
	var buffer bytes.Buffer
	printer := NewPrinter(&buffer, false, 0)
	logs := &garnix.LogResponse{
		Finished: true,
		Logs: []garnix.LogEntry{
			{Timestamp: "2025-01-01T00:00:01Z", Message: "building"},
			{Timestamp: "2025-01-01T00:00:02Z", Message: "done"},
		},
	}
	if err := printer.Logs("build-1", logs); err != nil {
		t.Fatalf("Logs: %v", err)
	}
	want := "Logs for build build-1 (finished: true):\n" +
		strings.Repeat("=", 60) + "\n" +
		"[2025-01-01T00:00:01Z] building\n" +
		"[2025-01-01T00:00:02Z] done\n"
	if buffer.String() != want {
		t.Errorf("Logs =\n%s\nwant\n%s", buffer.String(), want)
	}

	buffer.Reset()
	if err := printer.Logs("build-9", &garnix.LogResponse{}); err != nil {
		t.Fatalf("Logs: %v", err)
	}
	if buffer.String() != "No logs available for build build-9\n" {
		t.Errorf("Logs(empty) = %q", buffer.String())
	}
}

func TestPrinter_JSON(t *testing.T) {
	var plain bytes.Buffer
	if err := NewPrinter(&plain, false, 0).JSON(map[string]bool{"valid": true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if plain.String() != "{\n  \"valid\": true\n}\n" {
		t.Errorf("JSON = %q", plain.String())
	}

	var colored bytes.Buffer
	if err := NewPrinter(&colored, true, 0).JSON(map[string]bool{"valid": true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("highlighted JSON has no escape sequences: %q", colored.String())
	}
}
