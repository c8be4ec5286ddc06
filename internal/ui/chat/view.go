// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"math"
	"strings"
)

// View renders the visible slice of the transcript as rows terminal rows.
// The scroll offset is converted back from layout units; heights are whole
// rows so mid-animation offsets land between rows and round to the nearest.
func (p *Pane) View() string {
	if p.rows <= 0 {
		return ""
	}

	var lines []string
	for i := range p.vp.Regions() {
		if st, ok := p.vp.StateAt(i).(*messageState); ok {
			lines = append(lines, st.lines...)
		}
	}

	top := int(math.Round(p.vp.Translation() / rowHeight))
	if top < 0 {
		top = 0
	}
	if top > len(lines) {
		top = len(lines)
	}
	end := top + p.rows
	if end > len(lines) {
		end = len(lines)
	}

	visible := make([]string, 0, p.rows)
	visible = append(visible, lines[top:end]...)
	for len(visible) < p.rows {
		visible = append(visible, "")
	}
	return strings.Join(visible, "\n")
}
