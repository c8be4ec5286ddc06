// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/streamchat-tui/internal/ui/styles"
)

// =============================================================================
// TAB BAR COMPONENT
// =============================================================================

// Tab is one channel entry in the bar.
type Tab struct {
	Name    string
	Unread  int  // messages since the tab was last active
	Mention bool // our login was mentioned in an unread message
}

// TabBar renders the channel tabs along the top of the screen.
type TabBar struct {
	Tabs   []Tab
	Active int
	Width  int
	theme  *styles.Theme
}

// NewTabBar creates an empty tab bar.
func NewTabBar(theme *styles.Theme) *TabBar {
	return &TabBar{theme: theme}
}

// SetWidth updates the available width.
func (b *TabBar) SetWidth(width int) {
	b.Width = width
}

// View renders the bar, truncating tab labels if the terminal is narrow.
func (b *TabBar) View() string {
	if len(b.Tabs) == 0 {
		return b.theme.TabBar.Width(b.Width).Render(
			b.theme.Tab.Render("no channels - press 'j' to join"))
	}

	maxLabel := 20
	if len(b.Tabs) > 0 && b.Width > 0 {
		per := b.Width/len(b.Tabs) - 4
		if per < maxLabel && per > 4 {
			maxLabel = per
		}
	}

	var parts []string
	for i, tab := range b.Tabs {
		label := runewidth.Truncate("#"+tab.Name, maxLabel, "…")
		if tab.Unread > 0 && i != b.Active {
			label += " " + unreadBadge(tab.Unread)
		}

		style := b.theme.Tab
		switch {
		case i == b.Active:
			style = b.theme.TabActive
		case tab.Mention:
			style = b.theme.TabMention
		case tab.Unread > 0:
			style = b.theme.TabUnread
		}
		parts = append(parts, style.Render(label))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return b.theme.TabBar.Width(b.Width).Render(row)
}

func unreadBadge(n int) string {
	if n > 99 {
		return "(99+)"
	}
	var sb strings.Builder
	sb.WriteByte('(')
	if n >= 10 {
		sb.WriteByte(byte('0' + n/10))
	}
	sb.WriteByte(byte('0' + n%10))
	sb.WriteByte(')')
	return sb.String()
}
