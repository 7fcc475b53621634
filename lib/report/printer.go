// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/garnix-insights/garnix-insights/lib/garnix"
)

// logRuleWidth is the length of the "=" rule under a log heading.
const logRuleWidth = 60

// Printer writes the command-line renderings of build status and logs.
type Printer struct {
	out   io.Writer
	color bool
	width int

	heading lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	pending lipgloss.Style
	faint   lipgloss.Style
}

// NewPrinter returns a Printer writing to out. color enables ANSI
// styling and JSON syntax highlighting; width, when positive, truncates
// long lines in the human format to that many display cells.
func NewPrinter(out io.Writer, color bool, width int) *Printer {
	profile := termenv.Ascii
	if color {
		profile = termenv.ANSI256
	}
	// SetColorProfile pins the profile; otherwise lipgloss re-detects
	// from the environment.
	renderer := lipgloss.NewRenderer(out, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	return &Printer{
		out:     out,
		color:   color,
		width:   width,
		heading: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		good:    renderer.NewStyle().Foreground(lipgloss.Color("42")),
		bad:     renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		pending: renderer.NewStyle().Foreground(lipgloss.Color("214")),
		faint:   renderer.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func (p *Printer) paint(style lipgloss.Style, text string) string {
	if !p.color || text == "" {
		return text
	}
	return style.Render(text)
}

func (p *Printer) fit(line string) string {
	if p.width <= 0 {
		return line
	}
	return ansi.Truncate(line, p.width, "…")
}

// Human writes the summary markdown, the failed builds when there are
// any, and a graded success rate.
func (p *Printer) Human(status *garnix.BuildStatus) error {
	var out strings.Builder

	labels := strings.NewReplacer(
		"[OK]", p.paint(p.good, "[OK]"),
		"[FAIL]", p.paint(p.bad, "[FAIL]"),
		"[CANCELLED]", p.paint(p.faint, "[CANCELLED]"),
	)
	for i, line := range strings.Split(Summary(status), "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		if strings.HasPrefix(line, "#") {
			out.WriteString(p.paint(p.heading, line))
			continue
		}
		out.WriteString(labels.Replace(line))
	}
	out.WriteByte('\n')

	if status.Summary.Failed > 0 {
		out.WriteString("\n" + p.paint(p.bad, "[SEARCH] Failed Builds:") + "\n")
		for _, build := range status.FailedBuilds() {
			line := fmt.Sprintf("  • %s (%s): %s", build.Package, orDefault(build.System, "unknown"), build.Status.WithIndicator())
			out.WriteString(p.fit(line) + "\n")
			if build.DrvPath != "" {
				out.WriteString(p.fit("    Derivation: "+p.paint(p.faint, build.DrvPath)) + "\n")
			}
		}
	}

	rate := status.SuccessRate()
	label := SuccessLabel(rate)
	style := p.good
	switch label {
	case "[GOOD]":
		style = p.pending
	case "[WARNING]":
		style = p.bad
	}
	fmt.Fprintf(&out, "\n%s Success Rate: %.1f%%\n", p.paint(style, label), rate)

	_, err := io.WriteString(p.out, out.String())
	return err
}

// Plain writes undecorated key: value lines suitable for scripts.
func (p *Printer) Plain(status *garnix.BuildStatus) error {
	var out strings.Builder
	summary := status.Summary

	fmt.Fprintf(&out, "Build Status for %s\n", summary.GitCommit)
	fmt.Fprintf(&out, "Repository: %s/%s\n", summary.RepoOwner, summary.RepoName)
	fmt.Fprintf(&out, "Branch: %s\n", summary.Branch)
	fmt.Fprintf(&out, "Started: %s\n\n", summary.StartTime)

	out.WriteString("Summary:\n")
	fmt.Fprintf(&out, "  Succeeded: %d\n", summary.Succeeded)
	fmt.Fprintf(&out, "  Failed: %d\n", summary.Failed)
	fmt.Fprintf(&out, "  Pending: %d\n", summary.Pending)
	fmt.Fprintf(&out, "  Cancelled: %d\n\n", summary.Cancelled)

	if len(status.Builds) > 0 {
		out.WriteString("Individual Builds:\n")
		for _, build := range status.Builds {
			fmt.Fprintf(&out, "  %s - %s (%s)\n", build.Package, build.Status, orDefault(build.System, "unknown"))
		}
	}

	fmt.Fprintf(&out, "Success Rate: %.1f%%\n", status.SuccessRate())

	_, err := io.WriteString(p.out, out.String())
	return err
}

// Logs writes a build's log lines under a heading, or a notice when the
// build has none.
func (p *Printer) Logs(buildID string, logs *garnix.LogResponse) error {
	if len(logs.Logs) == 0 {
		_, err := fmt.Fprintf(p.out, "No logs available for build %s\n", buildID)
		return err
	}

	var out strings.Builder
	heading := fmt.Sprintf("Logs for build %s (finished: %t):", buildID, logs.Finished)
	out.WriteString(p.paint(p.heading, heading) + "\n")
	out.WriteString(strings.Repeat("=", logRuleWidth) + "\n")
	for _, entry := range logs.Logs {
		fmt.Fprintf(&out, "%s %s\n", p.paint(p.faint, "["+entry.Timestamp+"]"), entry.Message)
	}

	_, err := io.WriteString(p.out, out.String())
	return err
}

// JSON writes value as indented JSON, syntax-highlighted when colour is
// enabled.
func (p *Printer) JSON(value any) error {
	text, err := IndentedJSON(value)
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	if p.color {
		var highlighted strings.Builder
		if err := quick.Highlight(&highlighted, text, "json", "terminal256", "monokai"); err == nil {
			_, err := io.WriteString(p.out, highlighted.String()+"\n")
			return err
		}
	}
	_, err = io.WriteString(p.out, text+"\n")
	return err
}

// Line writes text followed by a newline.
func (p *Printer) Line(text string) error {
	_, err := io.WriteString(p.out, text+"\n")
	return err
}
