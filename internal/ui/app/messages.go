// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/streamchat-tui/internal/model"
	"github.com/jeranaias/streamchat-tui/internal/platform"
	"github.com/jeranaias/streamchat-tui/internal/twitch"
)

// =============================================================================
// MESSAGES AND COMMANDS
// =============================================================================

// eventMsg wraps one IRC event delivered from the connection goroutine.
type eventMsg struct {
	event twitch.Event
}

// historyMsg carries the recent-messages backfill for a channel.
type historyMsg struct {
	channel  string
	messages []*model.ChatMessage
}

// emotesMsg carries a fetched third-party emote set.
type emotesMsg struct {
	channel string // empty for the global set
	set     platform.EmoteSet
}

// configMsg carries a config reloaded from disk by the file watcher.
type configMsg struct {
	cfg *configSnapshot
}

// configSnapshot is the subset of config applied live, without restart.
type configSnapshot struct {
	naturalScrolling bool
}

// waitForEvent blocks on the IRC event channel.
func waitForEvent(events <-chan twitch.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg{event: ev}
	}
}

// fetchHistory loads the recent-messages backfill for a channel.
func fetchHistory(client *platform.HistoryClient, channel string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		messages, err := client.Fetch(ctx, channel)
		if err != nil {
			return nil
		}
		return historyMsg{channel: channel, messages: messages}
	}
}

// fetchGlobalEmotes loads the merged global emote sets.
func fetchGlobalEmotes(client *platform.EmoteClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return emotesMsg{set: client.Globals(ctx)}
	}
}

// fetchChannelEmotes loads the channel emote sets for a room ID.
func fetchChannelEmotes(client *platform.EmoteClient, channel, roomID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return emotesMsg{channel: channel, set: client.Channel(ctx, roomID)}
	}
}
