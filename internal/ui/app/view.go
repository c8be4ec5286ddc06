// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// jumpLabel is the scroll-to-bottom affordance overlaid on the transcript
// while the view is scrolled up. Clicking it jumps to the newest message.
const jumpLabel = "v latest"

// View composes the screen: tab bar, transcript, compose input, status bar.
// Popups render over the transcript area.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	transcriptRows := m.height - chrome
	if transcriptRows < 1 {
		transcriptRows = 1
	}

	var transcript string
	switch {
	case m.join.Visible():
		transcript = m.join.View(m.width, transcriptRows)
	case m.help.Visible():
		transcript = m.help.View(m.width, transcriptRows)
	default:
		if p := m.activePane(); p != nil {
			transcript = p.View()
			if !p.AtBottom() {
				transcript = overlayBottomRight(transcript, m.theme.JumpButton.Render(jumpLabel), m.width)
			}
		} else {
			empty := m.theme.System.Render("no channel joined - press 'j'")
			transcript = lipgloss.Place(m.width, transcriptRows, lipgloss.Center, lipgloss.Center, empty)
		}
	}

	m.status.ScrolledUp = false
	if p := m.activePane(); p != nil {
		m.status.ScrolledUp = !p.AtBottom()
	}

	input := m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())

	return strings.Join([]string{
		m.tabs.View(),
		transcript,
		input,
		m.status.View(),
	}, "\n")
}

// onJumpAffordance reports whether a cell position lands on the jump
// affordance: the right end of the last transcript row (the tab bar is row
// zero, so the transcript ends at row height-chrome).
func (m *Model) onJumpAffordance(x, y int) bool {
	lastRow := m.height - chrome
	if lastRow < 1 {
		return false
	}
	return y == lastRow && x >= m.width-lipgloss.Width(m.theme.JumpButton.Render(jumpLabel))-1
}

// overlayBottomRight replaces the tail of the last transcript row with a
// right-aligned affordance.
func overlayBottomRight(block, affordance string, width int) string {
	lines := strings.Split(block, "\n")
	if len(lines) == 0 {
		return block
	}
	last := len(lines) - 1
	pad := width - lipgloss.Width(lines[last]) - lipgloss.Width(affordance) - 1
	if pad < 1 {
		pad = 1
	}
	lines[last] += strings.Repeat(" ", pad) + affordance
	return strings.Join(lines, "\n")
}
