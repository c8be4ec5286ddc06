// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/streamchat-tui/internal/ui/styles"
)

// =============================================================================
// JOIN CHANNEL PROMPT
// =============================================================================

// JoinPrompt is the popup asking for a channel name to join.
type JoinPrompt struct {
	input   textinput.Model
	visible bool
	theme   *styles.Theme
}

// NewJoinPrompt creates a hidden prompt.
func NewJoinPrompt(theme *styles.Theme) *JoinPrompt {
	ti := textinput.New()
	ti.Placeholder = "channel name"
	ti.Prompt = "#"
	ti.CharLimit = 25 // Twitch login length limit
	ti.Width = 28
	return &JoinPrompt{input: ti, theme: theme}
}

// Visible reports whether the prompt is showing.
func (p *JoinPrompt) Visible() bool {
	return p.visible
}

// Show opens the prompt with an empty input and focuses it.
func (p *JoinPrompt) Show() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

// Hide closes the prompt.
func (p *JoinPrompt) Hide() {
	p.visible = false
	p.input.Blur()
}

// Value returns the entered channel name, normalized to a Twitch login.
func (p *JoinPrompt) Value() string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(p.input.Value(), "#")))
}

// Update forwards input events while the prompt is visible.
func (p *JoinPrompt) Update(msg tea.Msg) tea.Cmd {
	if !p.visible {
		return nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// View renders the prompt box, centered within the given area.
func (p *JoinPrompt) View(width, height int) string {
	if !p.visible {
		return ""
	}
	box := p.theme.PopupBox.Render(
		p.theme.PopupTitle.Render("Join channel") + "\n\n" +
			p.input.View() + "\n\n" +
			p.theme.ShortcutDesc.Render("enter to join, esc to cancel"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
