// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package watchui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/garnix-insights/garnix-insights/lib/garnix"
	"github.com/garnix-insights/garnix-insights/lib/report"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// fetchedMsg carries a poll result. generation ties it to the fetch
// that produced it.
type fetchedMsg struct {
	generation int
	update     Update
}

// pollMsg fires when the wait between polls elapses.
type pollMsg struct {
	generation int
}

// Model is the bubbletea model for the watch view.
type Model struct {
	ctx     context.Context
	config  Config
	keys    KeyMap
	spinner spinner.Model

	status     *garnix.BuildStatus
	lastErr    error
	fetching   bool
	generation int
	polls      int

	settled     bool
	interrupted bool
	err         error
}

// NewModel creates the watch model. Fetches run under ctx.
func NewModel(ctx context.Context, config Config) Model {
	return Model{
		ctx:     ctx,
		config:  config.withDefaults(),
		keys:    DefaultKeyMap,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Init starts the spinner and the first fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, func() tea.Msg { return pollMsg{generation: 0} })
}

// Update handles key presses, spinner ticks, and poll results.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(message, m.keys.Quit):
			m.interrupted = true
			return m, tea.Quit
		case key.Matches(message, m.keys.Refresh):
			if m.fetching {
				return m, nil
			}
			return m.startFetch()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(message)
		return m, cmd

	case pollMsg:
		if message.generation != m.generation || m.fetching {
			return m, nil
		}
		return m.startFetch()

	case fetchedMsg:
		if message.generation != m.generation {
			return m, nil
		}
		m.fetching = false
		m.polls++
		if err := message.update.Err; err != nil {
			if m.ctx.Err() != nil {
				m.err = m.ctx.Err()
				return m, tea.Quit
			}
			m.lastErr = err
			if !garnix.IsRetryable(err) {
				m.err = err
				return m, tea.Quit
			}
			return m, m.wait()
		}
		m.lastErr = nil
		m.status = message.update.Status
		if Settled(m.status) {
			m.settled = true
			return m, tea.Quit
		}
		return m, m.wait()
	}
	return m, nil
}

func (m Model) startFetch() (Model, tea.Cmd) {
	m.generation++
	m.fetching = true
	generation := m.generation
	ctx, fetch := m.ctx, m.config.Fetch
	return m, func() tea.Msg {
		status, err := fetch(ctx)
		if err != nil {
			return fetchedMsg{generation: generation, update: Update{Err: err}}
		}
		return fetchedMsg{generation: generation, update: Update{Status: status}}
	}
}

func (m Model) wait() tea.Cmd {
	generation := m.generation
	ctx, clk, interval := m.ctx, m.config.Clock, m.config.Interval
	return func() tea.Msg {
		select {
		case <-clk.After(interval):
			return pollMsg{generation: generation}
		case <-ctx.Done():
			return tea.Quit()
		}
	}
}

// View renders the current state.
func (m Model) View() string {
	commit := report.ShortCommit(m.config.CommitID)
	var out strings.Builder

	switch {
	case m.settled:
		out.WriteString(doneStyle.Render("Builds settled for "+commit) + "\n")
	case m.err != nil:
		out.WriteString(errorStyle.Render("Stopped watching "+commit) + "\n")
	default:
		fmt.Fprintf(&out, "%s %s %s\n", m.spinner.View(),
			headingStyle.Render("Watching "+commit),
			faintStyle.Render(fmt.Sprintf("(poll %d, every %s)", m.polls, m.config.Interval)))
	}

	if m.status != nil {
		out.WriteString(report.ProgressLine(m.config.CommitID, m.status) + "\n\n")
		for _, build := range m.status.Builds {
			fmt.Fprintf(&out, "  %s %s", build.Status.Indicator(), build.Package)
			if build.System != "" {
				out.WriteString(faintStyle.Render(" (" + build.System + ")"))
			}
			out.WriteString("\n")
		}
	} else if m.lastErr == nil && m.err == nil {
		out.WriteString(faintStyle.Render("waiting for Garnix...") + "\n")
	}

	if m.lastErr != nil {
		out.WriteString("\n" + errorStyle.Render("error: "+m.lastErr.Error()) + "\n")
	}

	if !m.settled && m.err == nil {
		help := make([]string, 0, 2)
		for _, binding := range m.keys.bindings() {
			help = append(help, binding.Help().Key+" "+binding.Help().Desc)
		}
		out.WriteString("\n" + faintStyle.Render(strings.Join(help, " • ")) + "\n")
	}
	return out.String()
}

// Result returns the final status once the program has exited.
func (m Model) Result() (*garnix.BuildStatus, error) {
	switch {
	case m.err != nil:
		return nil, m.err
	case m.interrupted, !m.settled:
		return m.status, ErrInterrupted
	default:
		return m.status, nil
	}
}

// Run shows the interactive watch view on output, reading keys from
// input, and returns when the builds settle, the user quits, or ctx is
// cancelled.
func Run(ctx context.Context, config Config, input io.Reader, output io.Writer) (*garnix.BuildStatus, error) {
	program := tea.NewProgram(NewModel(ctx, config),
		tea.WithContext(ctx),
		tea.WithInput(input),
		tea.WithOutput(output),
	)
	final, err := program.Run()
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, fmt.Errorf("watch view: %w", err)
	}
	return final.(Model).Result()
}
