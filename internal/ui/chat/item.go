// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/streamchat-tui/internal/model"
	"github.com/jeranaias/streamchat-tui/internal/ui/scroll"
	"github.com/jeranaias/streamchat-tui/internal/ui/styles"
)

// rowHeight is the layout-unit height of one terminal row. Wheel input is
// translated by the viewport at 80 units per tick, so one tick moves four
// rows.
const rowHeight = 20.0

// continuationIndent prefixes wrapped body lines so they hang under the text,
// not under the name column.
const continuationIndent = "  "

// =============================================================================
// MESSAGE ITEM
// =============================================================================

// messageItem adapts one ChatMessage to the viewport's Item interface.
// The shared render context comes from the owning pane.
type messageItem struct {
	msg  *model.ChatMessage
	pane *Pane
}

// messageState is the retained per-message state: the styled, wrapped lines
// for the width they were produced at. Re-wrapping happens only when the
// width or the emote generation changed.
type messageState struct {
	width    int
	emoteGen uint64
	lines    []string
}

// NewState builds empty retained state; the first Layout call fills it.
func (m messageItem) NewState() any {
	return &messageState{width: -1}
}

// Layout wraps the message for the given width and reports its size in
// layout units. The height limit is unbounded by contract.
func (m messageItem) Layout(state any, limits scroll.Limits) scroll.Size {
	st := state.(*messageState)
	width := int(limits.MaxWidth)
	if width < 10 {
		width = 10
	}
	if st.width != width || st.emoteGen != m.pane.emoteGen {
		st.lines = m.render(width)
		st.width = width
		st.emoteGen = m.pane.emoteGen
	}
	return scroll.Size{
		Width:  float64(width),
		Height: float64(len(st.lines)) * rowHeight,
	}
}

// render produces the styled terminal lines for one message at the given
// column width.
func (m messageItem) render(width int) []string {
	theme := m.pane.theme
	msg := m.msg

	if msg.System {
		return wrapStyled(theme.System, "-- "+msg.Text, width, "   ")
	}

	stamp := theme.Timestamp.Render(msg.SentAt.Format("15:04"))
	name := lipgloss.NewStyle().
		Foreground(lipgloss.Color(styles.UserColor(msg.Color, msg.Login))).
		Bold(true).
		Render(msg.Author())

	prefix := stamp + " "
	if b := renderBadges(theme, msg.Badges); b != "" {
		prefix += b + " "
	}

	bodyStyle := theme.Body
	sep := ": "
	switch {
	case msg.Deleted:
		bodyStyle = theme.Deleted
	case msg.Action:
		bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(styles.UserColor(msg.Color, msg.Login))).
			Italic(true)
		sep = " "
	case msg.Historical:
		bodyStyle = theme.Historical
	}

	text := msg.Text
	if msg.Deleted {
		text = "<message deleted>"
	}

	head := prefix + name + sep
	headWidth := lipgloss.Width(head)

	words := splitWords(text)
	var lines []string
	cur := head
	curWidth := headWidth
	hasWord := false
	for _, w := range words {
		wWidth := runewidth.StringWidth(w)
		if hasWord && curWidth+1+wWidth > width {
			lines = append(lines, cur)
			cur = continuationIndent
			curWidth = len(continuationIndent)
			hasWord = false
		}
		if hasWord {
			cur += " "
			curWidth++
		}
		cur += m.styleWord(bodyStyle, w)
		curWidth += wWidth
		hasWord = true
	}
	lines = append(lines, cur)
	return lines
}

// styleWord styles one body word, highlighting third-party emotes and
// mentions of our own login.
func (m messageItem) styleWord(base lipgloss.Style, word string) string {
	if _, ok := m.pane.emotes[word]; ok {
		return m.pane.theme.Emote.Render(word)
	}
	if m.pane.selfLogin != "" {
		bare := strings.ToLower(strings.TrimPrefix(strings.TrimSuffix(word, ","), "@"))
		if bare == m.pane.selfLogin {
			return m.pane.theme.Mention.Render(word)
		}
	}
	return base.Render(word)
}

func renderBadges(theme *styles.Theme, badges []model.Badge) string {
	if len(badges) == 0 {
		return ""
	}
	var short []string
	for _, b := range badges {
		switch b.Set {
		case "broadcaster":
			short = append(short, "[B]")
		case "moderator":
			short = append(short, "[M]")
		case "vip":
			short = append(short, "[V]")
		case "subscriber", "founder":
			short = append(short, "[S]")
		}
	}
	if len(short) == 0 {
		return ""
	}
	return theme.Badge.Render(strings.Join(short, ""))
}

// wrapStyled wraps plain text to width and styles each resulting line.
func wrapStyled(style lipgloss.Style, text string, width int, indent string) []string {
	words := splitWords(text)
	var lines []string
	cur := ""
	curWidth := 0
	for _, w := range words {
		wWidth := runewidth.StringWidth(w)
		if curWidth > 0 && curWidth+1+wWidth > width {
			lines = append(lines, style.Render(cur))
			cur = indent + w
			curWidth = len(indent) + wWidth
			continue
		}
		if curWidth > 0 {
			cur += " "
			curWidth++
		}
		cur += w
		curWidth += wWidth
	}
	lines = append(lines, style.Render(cur))
	return lines
}

func splitWords(s string) []string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return []string{""}
	}
	return fields
}
