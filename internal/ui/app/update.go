// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/streamchat-tui/internal/model"
	"github.com/jeranaias/streamchat-tui/internal/platform"
	"github.com/jeranaias/streamchat-tui/internal/twitch"
	"github.com/jeranaias/streamchat-tui/internal/ui/chat"
	"github.com/jeranaias/streamchat-tui/internal/ui/components"
)

// Update is the Bubble Tea message loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		p := m.activePane()
		if p == nil {
			return m, nil
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft &&
			!p.AtBottom() && m.onJumpAffordance(msg.X, msg.Y) {
			p.JumpToLatest()
			return m, nil
		}
		_, cmd := p.HandleMouse(msg)
		return m, cmd

	case chat.FrameMsg:
		for _, p := range m.panes {
			if p.ID() == msg.ID {
				return m, p.Tick(time.Now())
			}
		}
		return m, nil

	case eventMsg:
		cmd := m.handleEvent(msg.event)
		return m, tea.Batch(cmd, waitForEvent(m.events))

	case historyMsg:
		if p := m.paneFor(msg.channel); p != nil {
			p.Channel.PrependHistory(msg.messages)
			p.Relayout()
		}
		return m, nil

	case emotesMsg:
		return m.applyEmotes(msg), nil

	case configMsg:
		m.cfg.UI.NaturalScrolling = msg.cfg.naturalScrolling
		for _, p := range m.panes {
			p.SetNaturalScrolling(msg.cfg.naturalScrolling)
		}
		return m, nil

	case spinner.TickMsg:
		return m, m.status.Update(msg)
	}

	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit always works.
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Popups capture the keyboard while visible.
	if m.join.Visible() {
		switch msg.Type {
		case tea.KeyEnter:
			name := m.join.Value()
			m.join.Hide()
			return m, m.joinChannel(name)
		case tea.KeyEsc:
			m.join.Hide()
			return m, nil
		}
		return m, m.join.Update(msg)
	}
	if m.help.Visible() {
		m.help.Hide()
		return m, nil
	}

	if m.inputFocused {
		return m.updateComposeKey(msg)
	}

	switch msg.Type {
	case tea.KeyTab:
		m.selectTab((m.active + 1) % max(len(m.panes), 1))
		return m, nil
	case tea.KeyShiftTab:
		m.selectTab((m.active - 1 + len(m.panes)) % max(len(m.panes), 1))
		return m, nil
	case tea.KeyCtrlW:
		m.closeChannel()
		return m, nil
	case tea.KeyEnter:
		return m, m.focusInput()
	}

	if msg.Alt && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9' {
		m.selectTab(int(msg.Runes[0] - '1'))
		return m, nil
	}

	if len(msg.Runes) == 1 {
		switch msg.Runes[0] {
		case 'j':
			return m, m.join.Show()
		case '?':
			m.help.Toggle()
			return m, nil
		case 'i':
			return m, m.focusInput()
		}
	}

	// Everything else goes to the transcript: page keys, home/end.
	if p := m.activePane(); p != nil {
		if consumed, cmd := p.HandleKey(msg); consumed {
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) updateComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.sendMessage()
		return m, nil
	case tea.KeyEsc:
		m.inputFocused = false
		m.input.Blur()
		return m, nil
	case tea.KeyPgUp, tea.KeyPgDown:
		// Scrolling works while composing.
		if p := m.activePane(); p != nil {
			if consumed, cmd := p.HandleKey(msg); consumed {
				return m, cmd
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) focusInput() tea.Cmd {
	if m.client.Anonymous() || m.activePane() == nil {
		return nil
	}
	m.inputFocused = true
	return m.input.Focus()
}

// sendMessage queues the compose text and echoes it locally. The platform
// does not echo our own lines back, so the local copy is the only one.
func (m *Model) sendMessage() {
	p := m.activePane()
	text := strings.TrimSpace(m.input.Value())
	if p == nil || text == "" {
		return
	}

	raw := text
	action := false
	if strings.HasPrefix(text, "/me ") {
		action = true
		text = strings.TrimPrefix(text, "/me ")
	}

	if !m.client.Say(p.Channel.Name, raw) {
		p.Channel.Append(model.NewSystemMessage(p.Channel.Name, "message not sent (rate limited or read-only)"))
		p.Relayout()
		m.input.SetValue("")
		return
	}

	echo := model.NewOutgoingMessage(p.Channel.Name, m.client.Username, m.client.Username, text)
	echo.Action = action
	p.Channel.Append(echo)
	p.Relayout()
	m.persist(echo)
	m.input.SetValue("")
}

// =============================================================================
// IRC EVENTS
// =============================================================================

func (m *Model) handleEvent(ev twitch.Event) tea.Cmd {
	switch ev := ev.(type) {
	case twitch.ConnectedEvent:
		m.status.State = components.StateConnected
		return nil

	case twitch.DisconnectedEvent:
		m.status.State = components.StateDisconnected
		m.broadcastSystem("disconnected, retrying...")
		return nil

	case twitch.ReconnectEvent:
		m.broadcastSystem("server requested reconnect")
		return nil

	case twitch.MessageEvent:
		m.appendMessage(ev.Message)
		return nil

	case twitch.RoomStateEvent:
		if p := m.paneFor(ev.Channel); p != nil && p.Channel.RoomID != ev.RoomID {
			p.Channel.RoomID = ev.RoomID
			return fetchChannelEmotes(m.emotes, p.Channel.Name, ev.RoomID)
		}
		return nil

	case twitch.ClearChatEvent:
		m.handleClearChat(ev)
		return nil

	case twitch.ClearMessageEvent:
		if p := m.paneFor(ev.Channel); p != nil {
			p.Channel.DeleteMessage(ev.TargetMsgID)
			p.Relayout()
			if m.store != nil {
				if err := m.store.MarkDeleted(context.Background(), p.Channel.Name, ev.TargetMsgID); err != nil {
					slog.Warn("failed to redact stored message", "err", err)
				}
			}
		}
		return nil

	case twitch.NoticeEvent:
		if p := m.paneFor(ev.Channel); p != nil {
			p.Channel.Append(model.NewSystemMessage(p.Channel.Name, ev.Text))
			p.Relayout()
		}
		return nil
	}
	return nil
}

func (m *Model) appendMessage(msg *model.ChatMessage) {
	p := m.paneFor(msg.Channel)
	if p == nil {
		return
	}
	p.Channel.Append(msg)
	p.Relayout()
	m.persist(msg)

	for i, q := range m.panes {
		if q != p || i == m.active {
			continue
		}
		m.tabs.Tabs[i].Unread++
		if m.mentionsSelf(msg.Text) {
			m.tabs.Tabs[i].Mention = true
		}
	}
}

func (m *Model) handleClearChat(ev twitch.ClearChatEvent) {
	p := m.paneFor(ev.Channel)
	if p == nil {
		return
	}
	if ev.TargetLogin == "" {
		for _, msg := range p.Channel.Messages {
			msg.Deleted = true
		}
		p.Channel.Append(model.NewSystemMessage(p.Channel.Name, "chat was cleared by a moderator"))
	} else {
		p.Channel.DeleteUserMessages(ev.TargetLogin)
		notice := ev.TargetLogin + " was "
		if ev.Permanent {
			notice += "banned"
		} else {
			notice += "timed out for " + ev.Duration.String()
		}
		p.Channel.Append(model.NewSystemMessage(p.Channel.Name, notice))
	}
	p.Relayout()
}

// applyEmotes installs a fetched emote set. Panes always see globals merged
// with their channel's own set, channel emotes winning on collision.
func (m *Model) applyEmotes(msg emotesMsg) *Model {
	if msg.channel == "" {
		m.globalEmotes = msg.set
		for _, p := range m.panes {
			p.SetEmotes(m.mergedEmotes(p.Channel.Name))
		}
		return m
	}
	m.channelEmotes[msg.channel] = msg.set
	if p := m.paneFor(msg.channel); p != nil {
		p.SetEmotes(m.mergedEmotes(msg.channel))
	}
	return m
}

func (m *Model) mergedEmotes(channel string) platform.EmoteSet {
	merged := make(platform.EmoteSet, len(m.globalEmotes))
	merged.Merge(m.globalEmotes)
	merged.Merge(m.channelEmotes[channel])
	return merged
}

func (m *Model) broadcastSystem(text string) {
	for _, p := range m.panes {
		p.Channel.Append(model.NewSystemMessage(p.Channel.Name, text))
		p.Relayout()
	}
}

// pruneEvery bounds the on-disk log without pruning on every append.
const pruneEvery = 500

func (m *Model) persist(msg *model.ChatMessage) {
	if m.store == nil || !m.cfg.Scrollback.Persist {
		return
	}
	if err := m.store.Append(context.Background(), msg); err != nil {
		slog.Warn("failed to persist message", "err", err)
		return
	}
	m.persisted++
	if m.persisted%pruneEvery == 0 {
		if err := m.store.Prune(context.Background(), msg.Channel, m.cfg.Scrollback.Limit); err != nil {
			slog.Warn("failed to prune chat log", "err", err)
		}
	}
}

func (m *Model) mentionsSelf(text string) bool {
	login := m.client.Username
	if login == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), login)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
