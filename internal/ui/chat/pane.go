// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/streamchat-tui/internal/model"
	"github.com/jeranaias/streamchat-tui/internal/platform"
	"github.com/jeranaias/streamchat-tui/internal/ui/scroll"
	"github.com/jeranaias/streamchat-tui/internal/ui/styles"
)

// frameInterval paces redraws while a scroll animation is in flight.
const frameInterval = 16 * time.Millisecond

// FrameMsg asks the owning program for one animation frame. Carries the
// viewport identity so multi-pane programs can route it.
type FrameMsg struct {
	ID scroll.ID
}

// =============================================================================
// PANE
// =============================================================================

// Pane is one channel transcript view: the channel model plus the scroll
// viewport that positions it. It registers itself in the scroll gateway so
// other parts of the program can address it by ID.
type Pane struct {
	Channel *model.Channel

	vp    *scroll.Viewport[uint64]
	id    scroll.ID
	theme *styles.Theme

	emotes   platform.EmoteSet
	emoteGen uint64

	selfLogin string

	// cols/rows is the visible size in terminal cells.
	cols int
	rows int

	atBottom bool

	// pointer is the last mouse position in layout units, used for the
	// wheel's pointer-inside test.
	pointer scroll.Point
}

// NewPane creates a pane for the channel and registers its viewport.
func NewPane(ch *model.Channel, theme *styles.Theme, selfLogin string) *Pane {
	p := &Pane{
		Channel:   ch,
		vp:        scroll.New[uint64](),
		id:        scroll.NewID(),
		theme:     theme,
		emotes:    make(platform.EmoteSet),
		selfLogin: selfLogin,
		atBottom:  true,
	}
	p.vp.OnScroll(func(s scroll.Snapshot) {
		p.atBottom = s.IsAtBottom()
	})
	scroll.Register(p.id, p.vp)
	return p
}

// Close unregisters the pane's viewport. Call when the channel tab closes.
func (p *Pane) Close() {
	scroll.Unregister(p.id)
}

// ID returns the viewport identity for gateway operations.
func (p *Pane) ID() scroll.ID { return p.id }

// AtBottom reports whether the view is pinned to the newest message.
func (p *Pane) AtBottom() bool { return p.atBottom }

// SetNaturalScrolling forwards the config flag to the viewport.
func (p *Pane) SetNaturalScrolling(natural bool) {
	p.vp.SetNaturalScrolling(natural)
}

// SetSize updates the visible area in terminal cells and lays out.
func (p *Pane) SetSize(cols, rows int) {
	p.cols = cols
	p.rows = rows
	p.Relayout()
}

// SetEmotes swaps the third-party emote set. Bumping the generation
// invalidates every message's cached wrap on the next layout.
func (p *Pane) SetEmotes(set platform.EmoteSet) {
	p.emotes = set
	p.emoteGen++
	p.Relayout()
}

// Relayout runs a full layout pass over the current transcript. Call after
// anything that changes content or geometry: new messages, history merges,
// deletions, resizes.
func (p *Pane) Relayout() {
	if p.cols <= 0 || p.rows <= 0 {
		return
	}
	children := make([]scroll.Child[uint64], len(p.Channel.Messages))
	for i, msg := range p.Channel.Messages {
		children[i] = scroll.Child[uint64]{
			Item: messageItem{msg: msg, pane: p},
			Key:  msg.Key,
		}
	}
	p.vp.Layout(children, scroll.Size{
		Width:  float64(p.cols),
		Height: float64(p.rows) * rowHeight,
	})
}

// =============================================================================
// INPUT
// =============================================================================

// frameCmd schedules the next animation frame.
func (p *Pane) frameCmd() tea.Cmd {
	id := p.id
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return FrameMsg{ID: id}
	})
}

// Tick advances an in-flight scroll animation. Returns a frame command while
// more frames are needed, nil once the animation settled.
func (p *Pane) Tick(now time.Time) tea.Cmd {
	if p.vp.Tick(now) {
		return p.frameCmd()
	}
	return nil
}

// HandleKey maps scroll-related keys. Returns (consumed, cmd).
func (p *Pane) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyPgDown:
		return true, p.feed(scroll.PageDown{})
	case tea.KeyPgUp:
		return true, p.feed(scroll.PageUp{})
	case tea.KeyHome:
		p.vp.ScrollToAbsolute(0)
		return true, nil
	case tea.KeyEnd:
		p.vp.ScrollToRelative(1)
		return true, nil
	}
	return false, nil
}

// HandleMouse maps wheel input. The mouse position gates whether the wheel
// applies, mirroring pointer-over-viewport behavior.
func (p *Pane) HandleMouse(msg tea.MouseMsg) (bool, tea.Cmd) {
	p.pointer = scroll.Point{
		X: float64(msg.X),
		Y: float64(msg.Y) * rowHeight,
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return true, p.feed(scroll.WheelLines{Y: 1})
	case tea.MouseButtonWheelDown:
		return true, p.feed(scroll.WheelLines{Y: -1})
	}
	return false, nil
}

func (p *Pane) feed(ev scroll.Event) tea.Cmd {
	if !p.vp.HandleEvent(ev, p.pointer, time.Now()) {
		return nil
	}
	return p.frameCmd()
}

// JumpToLatest scrolls immediately to the newest message.
func (p *Pane) JumpToLatest() {
	p.vp.ScrollToRelative(1)
}
