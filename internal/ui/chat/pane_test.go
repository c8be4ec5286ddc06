// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/streamchat-tui/internal/model"
	"github.com/jeranaias/streamchat-tui/internal/platform"
	"github.com/jeranaias/streamchat-tui/internal/ui/scroll"
	"github.com/jeranaias/streamchat-tui/internal/ui/styles"
)

func newTestPane(t *testing.T) *Pane {
	t.Helper()
	ch := model.NewChannel("somechannel")
	p := NewPane(ch, styles.New(), "someuser")
	t.Cleanup(p.Close)
	p.SetSize(60, 4)
	return p
}

func say(p *Pane, login, text string) {
	m := model.NewOutgoingMessage(p.Channel.Name, login, login, text)
	p.Channel.Append(m)
	p.Relayout()
}

func settle(t *testing.T, p *Pane) {
	t.Helper()
	now := time.Now()
	for i := 0; i < 100; i++ {
		now = now.Add(50 * time.Millisecond)
		if p.Tick(now) == nil {
			return
		}
	}
	t.Fatal("animation did not settle")
}

func TestPane_SticksToBottom(t *testing.T) {
	p := newTestPane(t)
	for i := 0; i < 10; i++ {
		say(p, "alice", "line")
	}
	if !p.AtBottom() {
		t.Error("pane should be pinned to the bottom after appends")
	}
	// 10 one-row messages in a 4-row pane: offset shows the last 4.
	if got := p.vp.Translation(); got != 6*rowHeight {
		t.Errorf("translation = %v, want %v", got, 6*rowHeight)
	}
}

func TestPane_AnchorHoldsWhileScrolledUp(t *testing.T) {
	p := newTestPane(t)
	for i := 0; i < 10; i++ {
		say(p, "alice", "line")
	}
	p.vp.ScrollToAbsolute(2 * rowHeight)

	say(p, "bob", "new line at the bottom")
	if got := p.vp.Translation(); got != 2*rowHeight {
		t.Errorf("translation moved to %v while reading scrollback", got)
	}
	if p.AtBottom() {
		t.Error("pane should not report at-bottom while scrolled up")
	}
}

func TestPane_ViewShowsVisibleRows(t *testing.T) {
	p := newTestPane(t)
	for i, text := range []string{"first", "second", "third", "fourth", "fifth", "sixth"} {
		_ = i
		say(p, "alice", text)
	}

	out := p.View()
	if strings.Contains(out, "first") {
		t.Error("oldest line should be scrolled out of view")
	}
	if !strings.Contains(out, "sixth") {
		t.Error("newest line missing from view")
	}
	if got := len(strings.Split(out, "\n")); got != 4 {
		t.Errorf("view has %d rows, want 4", got)
	}
}

func TestPane_WheelScrollsUp(t *testing.T) {
	p := newTestPane(t)
	for i := 0; i < 10; i++ {
		say(p, "alice", "line")
	}
	start := p.vp.Translation()

	consumed, cmd := p.HandleMouse(tea.MouseMsg{X: 5, Y: 2, Button: tea.MouseButtonWheelUp})
	if !consumed || cmd == nil {
		t.Fatal("wheel event not consumed")
	}
	settle(t, p)

	// One wheel tick is 80 units, four rows.
	want := start - 4*rowHeight
	if got := p.vp.Translation(); got != want {
		t.Errorf("translation = %v, want %v", got, want)
	}
}

func TestPane_PageKeys(t *testing.T) {
	p := newTestPane(t)
	for i := 0; i < 10; i++ {
		say(p, "alice", "line")
	}
	start := p.vp.Translation()

	consumed, _ := p.HandleKey(tea.KeyMsg{Type: tea.KeyPgUp})
	if !consumed {
		t.Fatal("pgup not consumed")
	}
	settle(t, p)
	if got := p.vp.Translation(); got != start-4*rowHeight {
		t.Errorf("pgup: translation = %v, want %v", got, start-4*rowHeight)
	}

	p.HandleKey(tea.KeyMsg{Type: tea.KeyEnd})
	if got := p.vp.Translation(); got != start {
		t.Errorf("end: translation = %v, want %v", got, start)
	}
	if !p.AtBottom() {
		t.Error("End should pin to the bottom")
	}

	p.HandleKey(tea.KeyMsg{Type: tea.KeyHome})
	if got := p.vp.Translation(); got != 0 {
		t.Errorf("home: translation = %v, want 0", got)
	}
}

func TestPane_GatewayAddressable(t *testing.T) {
	p := newTestPane(t)
	for i := 0; i < 10; i++ {
		say(p, "alice", "line")
	}

	h, ok := scroll.Lookup(p.ID())
	if !ok {
		t.Fatal("pane not registered in the scroll gateway")
	}
	h.ScrollToAbsolute(0)
	if got := p.vp.Translation(); got != 0 {
		t.Errorf("gateway scroll: translation = %v, want 0", got)
	}

	p.Close()
	if _, ok := scroll.Lookup(p.ID()); ok {
		t.Error("pane still registered after Close")
	}
}

func TestPane_WrapCacheInvalidatedByEmotes(t *testing.T) {
	p := newTestPane(t)
	say(p, "alice", "hello Kappa world")

	st, ok := p.vp.StateAt(0).(*messageState)
	if !ok {
		t.Fatal("missing message state")
	}
	before := st.emoteGen

	p.SetEmotes(platform.EmoteSet{"Kappa": {Code: "Kappa", Provider: platform.ProviderBTTV}})
	st, _ = p.vp.StateAt(0).(*messageState)
	if st.emoteGen == before {
		t.Error("emote swap did not invalidate the wrap cache")
	}
}

func TestPane_LongMessageWraps(t *testing.T) {
	p := newTestPane(t)
	p.SetSize(30, 10)
	say(p, "alice", strings.Repeat("word ", 20))

	st, ok := p.vp.StateAt(0).(*messageState)
	if !ok {
		t.Fatal("missing message state")
	}
	if len(st.lines) < 2 {
		t.Errorf("long message produced %d lines, expected wrapping", len(st.lines))
	}
	if got := p.vp.Regions()[0].Bounds.Height; got != float64(len(st.lines))*rowHeight {
		t.Errorf("region height %v does not match %d wrapped lines", got, len(st.lines))
	}
}
