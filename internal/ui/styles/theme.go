// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// TAB BAR STYLES
	// ==========================================================================

	TabBar      lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	TabUnread   lipgloss.Style
	TabMention  lipgloss.Style

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	Timestamp  lipgloss.Style
	Username   lipgloss.Style
	Badge      lipgloss.Style
	Body       lipgloss.Style
	Action     lipgloss.Style
	System     lipgloss.Style
	Deleted    lipgloss.Style
	Historical lipgloss.Style
	Emote      lipgloss.Style
	Mention    lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	Connected    lipgloss.Style
	Disconnected lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// OVERLAY STYLES
	// ==========================================================================

	PopupBox    lipgloss.Style
	PopupTitle  lipgloss.Style
	HelpOverlay lipgloss.Style

	// JumpButton is the floating "scroll to bottom" affordance shown while
	// scrolled up.
	JumpButton lipgloss.Style
}

// New builds the theme for the current terminal.
func New() *Theme {
	t := &Theme{
		IsDark:       lipgloss.HasDarkBackground(),
		ColorProfile: termenv.ColorProfile(),
	}

	t.TabBar = lipgloss.NewStyle().
		Background(SurfaceDim)
	t.Tab = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)
	t.TabActive = t.Tab.
		Foreground(TextInverse).
		Background(Purple).
		Bold(true)
	t.TabUnread = t.Tab.
		Foreground(Amber).
		Bold(true)
	t.TabMention = t.Tab.
		Foreground(Rose).
		Bold(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.Username = lipgloss.NewStyle().
		Bold(true)
	t.Badge = lipgloss.NewStyle().
		Foreground(Cyan)
	t.Body = lipgloss.NewStyle().
		Foreground(TextPrimary)
	t.Action = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Italic(true)
	t.System = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
	t.Deleted = lipgloss.NewStyle().
		Foreground(TextMuted).
		Strikethrough(true)
	t.Historical = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.Emote = lipgloss.NewStyle().
		Foreground(Cyan)
	t.Mention = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)
	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)
	t.Connected = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)
	t.Disconnected = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.PopupBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)
	t.PopupTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)
	t.HelpOverlay = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.JumpButton = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Padding(0, 1).
		Bold(true)

	return t
}
