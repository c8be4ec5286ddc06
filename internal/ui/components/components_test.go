// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/streamchat-tui/internal/ui/styles"
)

func TestTabBar_Empty(t *testing.T) {
	bar := NewTabBar(styles.New())
	bar.SetWidth(80)
	out := bar.View()
	if !strings.Contains(out, "no channels") {
		t.Errorf("empty bar missing hint: %q", out)
	}
}

func TestTabBar_RendersChannels(t *testing.T) {
	bar := NewTabBar(styles.New())
	bar.SetWidth(80)
	bar.Tabs = []Tab{
		{Name: "somechannel"},
		{Name: "otherchannel", Unread: 5},
	}
	bar.Active = 0

	out := bar.View()
	if !strings.Contains(out, "#somechannel") {
		t.Error("missing active tab label")
	}
	if !strings.Contains(out, "(05)") && !strings.Contains(out, "(5)") {
		t.Errorf("missing unread badge: %q", out)
	}
}

func TestUnreadBadge(t *testing.T) {
	cases := map[int]string{
		1:   "(1)",
		42:  "(42)",
		99:  "(99)",
		150: "(99+)",
	}
	for n, want := range cases {
		if got := unreadBadge(n); got != want {
			t.Errorf("unreadBadge(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestStatusBar_States(t *testing.T) {
	bar := NewStatusBar(styles.New())
	bar.SetWidth(100)
	bar.Username = "someuser"

	bar.State = StateConnected
	if !strings.Contains(bar.View(), "connected") {
		t.Error("missing connected state")
	}

	bar.State = StateDisconnected
	if !strings.Contains(bar.View(), "disconnected") {
		t.Error("missing disconnected state")
	}

	bar.Anonymous = true
	if !strings.Contains(bar.View(), "read-only") {
		t.Error("anonymous bar should say read-only")
	}
}

func TestStatusBar_ScrolledUpHint(t *testing.T) {
	bar := NewStatusBar(styles.New())
	bar.SetWidth(120)
	bar.ScrolledUp = true
	if !strings.Contains(bar.View(), "scrolled up") {
		t.Error("missing scrolled-up hint")
	}
}

func TestJoinPrompt_Flow(t *testing.T) {
	p := NewJoinPrompt(styles.New())
	if p.Visible() {
		t.Fatal("prompt starts hidden")
	}

	p.Show()
	if !p.Visible() {
		t.Fatal("Show did not open the prompt")
	}

	for _, r := range "#SomeChannel " {
		p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if got := p.Value(); got != "somechannel" {
		t.Errorf("Value() = %q, want normalized login", got)
	}

	p.Hide()
	if p.Visible() {
		t.Error("Hide did not close the prompt")
	}
}

func TestJoinPrompt_HiddenIgnoresInput(t *testing.T) {
	p := NewJoinPrompt(styles.New())
	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if p.Value() != "" {
		t.Error("hidden prompt accepted input")
	}
}

func TestHelp_Toggle(t *testing.T) {
	h := NewHelp(styles.New())
	if h.Visible() {
		t.Fatal("help starts hidden")
	}
	h.Toggle()
	if !h.Visible() {
		t.Fatal("Toggle did not show help")
	}
	out := h.View(80, 24)
	if out == "" {
		t.Error("visible help rendered nothing")
	}
	h.Toggle()
	if h.Visible() {
		t.Error("Toggle did not hide help")
	}
}
