// Copyright 2026 The Garnix Insights Authors
// SPDX-License-Identifier: Apache-2.0

package watchui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the watch view's key bindings.
type KeyMap struct {
	Refresh key.Binding
	Quit    key.Binding
}

// DefaultKeyMap is the built-in binding set.
var DefaultKeyMap = KeyMap{
	Refresh: key.NewBinding(
		key.WithKeys("r", "enter"),
		key.WithHelp("r", "refresh now"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k KeyMap) bindings() []key.Binding {
	return []key.Binding{k.Refresh, k.Quit}
}
