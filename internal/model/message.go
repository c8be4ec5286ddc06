// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	twitch "github.com/gempir/go-twitch-irc/v4"
	"github.com/google/uuid"
)

// messageKey allocates transcript keys. Starts at 1 so the zero value of a
// ChatMessage is recognizably unkeyed.
var messageKey atomic.Uint64

// NextKey returns the next transcript key. Keys are process-wide, strictly
// increasing, and never reused.
func NextKey() uint64 {
	return messageKey.Add(1)
}

// =============================================================================
// BADGES
// =============================================================================

// Badge is one entry of a message's badge tag, e.g. ("subscriber", "12").
type Badge struct {
	Set     string
	Version string
}

// =============================================================================
// CHAT MESSAGE
// =============================================================================

// ChatMessage is one line of a channel transcript: a user message, or a
// system line (joins, timeouts, reconnects) when System is set.
type ChatMessage struct {
	// Key is the stable transcript identity used by the scroll viewport.
	Key uint64

	// MsgID is the protocol-level message ID tag, when present.
	MsgID string

	Channel     string
	Login       string
	DisplayName string
	// Color is the user's chat color as "#RRGGBB", empty when unset.
	Color  string
	Badges []Badge

	Text string
	// Action marks a "/me" message; the whole line renders in the user color.
	Action bool
	// System marks a synthetic line not attributed to a user.
	System bool
	// Deleted marks a message removed by moderation; it stays in the
	// transcript but renders struck through.
	Deleted bool
	// Historical marks a backfilled message from before the client joined.
	Historical bool

	SentAt time.Time

	// Nonce is the client-nonce we attach to our own outgoing messages, used
	// to recognize the echoed copy.
	Nonce string
}

// NewSystemMessage builds a synthetic transcript line for the given channel.
func NewSystemMessage(channel, text string) *ChatMessage {
	return &ChatMessage{
		Key:     NextKey(),
		Channel: channel,
		Text:    text,
		System:  true,
		SentAt:  time.Now(),
	}
}

// NewOutgoingMessage builds the local echo of a message we are sending,
// tagged with a fresh client nonce.
func NewOutgoingMessage(channel, login, displayName, text string) *ChatMessage {
	return &ChatMessage{
		Key:         NextKey(),
		Channel:     channel,
		Login:       login,
		DisplayName: displayName,
		Text:        text,
		SentAt:      time.Now(),
		Nonce:       uuid.NewString(),
	}
}

// FromPrivateMessage converts a parsed PRIVMSG into a transcript line with a
// freshly allocated key.
func FromPrivateMessage(m twitch.PrivateMessage) *ChatMessage {
	msg := &ChatMessage{
		Key:         NextKey(),
		MsgID:       m.ID,
		Channel:     m.Channel,
		Login:       m.User.Name,
		DisplayName: m.User.DisplayName,
		Color:       m.User.Color,
		Text:        m.Message,
		Action:      m.Action,
		SentAt:      m.Time,
	}
	for set, version := range m.User.Badges {
		msg.Badges = append(msg.Badges, Badge{Set: set, Version: strconv.Itoa(version)})
	}
	if n, ok := m.Tags["client-nonce"]; ok {
		msg.Nonce = n
	}
	return msg
}

// Author returns the name to display for the sender, preferring the
// display name over the login.
func (m *ChatMessage) Author() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Login
}

// IsEmpty reports whether the message has no visible text.
func (m *ChatMessage) IsEmpty() bool {
	return strings.TrimSpace(m.Text) == ""
}
