// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/streamchat-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// ConnState is the IRC connection state shown in the bar.
type ConnState int

const (
	StateConnecting ConnState = iota
	StateConnected
	StateDisconnected
)

// String returns the display string for the state.
func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting..."
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// StatusBar is the bottom status bar: connection state, identity, scroll
// position hint and shortcuts.
type StatusBar struct {
	State         ConnState
	Username      string
	Anonymous     bool
	ScrolledUp    bool // viewport is not pinned to the latest message
	ShowShortcuts bool
	Width         int
	spinner       spinner.Model
	theme         *styles.Theme
}

// NewStatusBar creates a status bar in the connecting state.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(theme.Disconnected),
	)
	return &StatusBar{
		State:         StateConnecting,
		ShowShortcuts: true,
		Width:         80,
		spinner:       sp,
		theme:         theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// Tick starts the connecting spinner.
func (s *StatusBar) Tick() tea.Cmd {
	return s.spinner.Tick
}

// Update advances the spinner while connecting.
func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	if s.State != StateConnecting {
		return nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

// View renders the status bar.
func (s *StatusBar) View() string {
	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")

	var parts []string

	stateStyle := s.theme.Disconnected
	if s.State == StateConnected {
		stateStyle = s.theme.Connected
	}
	state := stateStyle.Render(s.State.String())
	if s.State == StateConnecting {
		state = s.spinner.View() + state
	}
	parts = append(parts, state)

	identity := s.Username
	if s.Anonymous {
		identity = "anonymous (read-only)"
	}
	if identity != "" {
		parts = append(parts, identity)
	}

	if s.ScrolledUp {
		parts = append(parts, s.theme.JumpButton.Render("scrolled up - End jumps to latest"))
	}

	left := strings.Join(parts, sep)

	right := ""
	if s.ShowShortcuts && s.Width >= 60 {
		shortcuts := []string{
			s.theme.ShortcutKey.Render("j") + s.theme.ShortcutDesc.Render(" join"),
			s.theme.ShortcutKey.Render("^W") + s.theme.ShortcutDesc.Render(" close"),
			s.theme.ShortcutKey.Render("?") + s.theme.ShortcutDesc.Render(" help"),
			s.theme.ShortcutKey.Render("^C") + s.theme.ShortcutDesc.Render(" quit"),
		}
		right = strings.Join(shortcuts, " ")
	}

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return s.theme.StatusBar.Width(s.Width).Render(
		left + strings.Repeat(" ", gap) + right)
}
