// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sort"
	"strings"
)

// DefaultScrollback is the per-channel transcript cap when the config does
// not override it.
const DefaultScrollback = 1000

// =============================================================================
// CHANNEL TRANSCRIPT
// =============================================================================

// Channel is the bounded transcript of one joined channel. It is only
// mutated from the UI goroutine.
type Channel struct {
	// Name is the channel login, lowercase, without the leading '#'.
	Name string

	// RoomID is the platform's numeric channel ID, learned from the
	// ROOMSTATE tags after joining. Empty until then.
	RoomID string

	// Messages is the transcript, oldest first.
	Messages []*ChatMessage

	// MaxScrollback bounds len(Messages); oldest lines are dropped first.
	MaxScrollback int
}

// NewChannel creates an empty transcript for the given channel login.
func NewChannel(name string) *Channel {
	return &Channel{
		Name:          strings.ToLower(strings.TrimPrefix(name, "#")),
		MaxScrollback: DefaultScrollback,
	}
}

// Append adds a message to the tail of the transcript and trims the head
// when the scrollback cap is exceeded.
func (c *Channel) Append(msg *ChatMessage) {
	c.Messages = append(c.Messages, msg)
	c.trim()
}

// PrependHistory merges backfilled messages in front of the live transcript.
// The backfill is sorted by send time, and messages already present (same
// protocol MsgID) are skipped so a reconnect does not duplicate lines.
func (c *Channel) PrependHistory(history []*ChatMessage) {
	if len(history) == 0 {
		return
	}

	seen := make(map[string]bool, len(c.Messages))
	for _, m := range c.Messages {
		if m.MsgID != "" {
			seen[m.MsgID] = true
		}
	}

	merged := make([]*ChatMessage, 0, len(history)+len(c.Messages))
	for _, m := range history {
		if m.MsgID != "" && seen[m.MsgID] {
			continue
		}
		m.Historical = true
		merged = append(merged, m)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].SentAt.Before(merged[j].SentAt)
	})
	c.Messages = append(merged, c.Messages...)
	c.trim()
}

// DeleteMessage marks the message with the given protocol ID as deleted.
func (c *Channel) DeleteMessage(msgID string) {
	for _, m := range c.Messages {
		if m.MsgID == msgID {
			m.Deleted = true
			return
		}
	}
}

// DeleteUserMessages marks every message from login as deleted. Used for
// CLEARCHAT-style moderation events.
func (c *Channel) DeleteUserMessages(login string) {
	for _, m := range c.Messages {
		if m.Login == login {
			m.Deleted = true
		}
	}
}

// Len returns the number of transcript lines.
func (c *Channel) Len() int { return len(c.Messages) }

func (c *Channel) trim() {
	max := c.MaxScrollback
	if max <= 0 {
		max = DefaultScrollback
	}
	if over := len(c.Messages) - max; over > 0 {
		c.Messages = append([]*ChatMessage(nil), c.Messages[over:]...)
	}
}
