// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/streamchat-tui/internal/ui/styles"
)

// =============================================================================
// HELP OVERLAY
// =============================================================================

const helpMarkdown = `# Keys

## Channels

| Key | Action |
|-----|--------|
| j | join a channel |
| ctrl+w | close the current channel |
| tab / shift+tab | next / previous channel |
| alt+1..9 | switch to channel N |

## Scrolling

| Key | Action |
|-----|--------|
| mouse wheel | scroll chat |
| pgup / pgdn | scroll one screen |
| home / end | jump to oldest / latest |

## Chat

| Key | Action |
|-----|--------|
| i / enter | focus the input |
| enter | send message |
| esc | leave input / close popup |
| ? | toggle this help |
| ctrl+c | quit |
`

// Help renders the keybinding overlay from markdown.
type Help struct {
	visible  bool
	rendered string
	width    int
	theme    *styles.Theme
}

// NewHelp creates a hidden help overlay.
func NewHelp(theme *styles.Theme) *Help {
	return &Help{theme: theme}
}

// Visible reports whether the overlay is showing.
func (h *Help) Visible() bool {
	return h.visible
}

// Toggle flips visibility.
func (h *Help) Toggle() {
	h.visible = !h.visible
}

// Hide closes the overlay.
func (h *Help) Hide() {
	h.visible = false
}

// View renders the overlay centered in the given area. The markdown render
// is cached per width.
func (h *Help) View(width, height int) string {
	if !h.visible {
		return ""
	}

	wrap := width - 8
	if wrap > 70 {
		wrap = 70
	}
	if wrap < 20 {
		wrap = 20
	}

	if h.rendered == "" || h.width != wrap {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		if err == nil {
			if out, err := r.Render(helpMarkdown); err == nil {
				h.rendered = out
				h.width = wrap
			}
		}
		if h.rendered == "" {
			h.rendered = helpMarkdown
		}
	}

	box := h.theme.HelpOverlay.Render(h.rendered)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
