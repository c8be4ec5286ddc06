// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package twitch

import (
	"context"
	"log/slog"
	"strings"
	"time"

	twitch "github.com/gempir/go-twitch-irc/v4"
	"golang.org/x/time/rate"

	"github.com/jeranaias/streamchat-tui/internal/config"
	"github.com/jeranaias/streamchat-tui/internal/model"
)

// =============================================================================
// EVENTS
// =============================================================================

// Event is a connection or chat event delivered to the Handler.
type Event interface{ isEvent() }

// ConnectedEvent fires when the IRC connection is established.
type ConnectedEvent struct{}

// DisconnectedEvent fires when the connection drops; the client will retry.
type DisconnectedEvent struct{ Err error }

// MessageEvent carries one incoming chat message, already converted into the
// domain model with a fresh transcript key.
type MessageEvent struct{ Message *model.ChatMessage }

// RoomStateEvent carries the channel's numeric room ID, learned from the
// ROOMSTATE tags after a join. Emote providers key their APIs on it.
type RoomStateEvent struct {
	Channel string
	RoomID  string
}

// ClearChatEvent is a ban or timeout (or a full chat clear when TargetLogin
// is empty).
type ClearChatEvent struct {
	Channel     string
	TargetLogin string
	Duration    time.Duration
	Permanent   bool
}

// ClearMessageEvent deletes a single message by its protocol ID.
type ClearMessageEvent struct {
	Channel     string
	TargetMsgID string
}

// NoticeEvent is a server-side informational line for a channel.
type NoticeEvent struct {
	Channel string
	Text    string
}

// ReconnectEvent fires when the server asks the client to reconnect.
type ReconnectEvent struct{}

func (ConnectedEvent) isEvent()    {}
func (DisconnectedEvent) isEvent() {}
func (MessageEvent) isEvent()      {}
func (RoomStateEvent) isEvent()    {}
func (ClearChatEvent) isEvent()    {}
func (ClearMessageEvent) isEvent() {}
func (NoticeEvent) isEvent()       {}
func (ReconnectEvent) isEvent()    {}

// Handler receives events on the connection goroutine. It must not block;
// the hosting program forwards onto its own loop.
type Handler func(Event)

// =============================================================================
// CLIENT
// =============================================================================

// anonymousUser is the shared read-only login the IRC library connects with
// when no credentials are given.
const anonymousUser = "justinfan123123"

// sendRate matches the platform limit for regular users: 20 messages per 30
// seconds, with the full window available as burst.
var sendRate = rate.NewLimiter(rate.Limit(20.0/30.0), 20)

type outgoing struct {
	channel string
	text    string
}

// Client wraps the IRC connection. Anonymous clients (no account configured)
// can read every channel but not send.
type Client struct {
	irc       *twitch.Client
	handler   Handler
	limiter   *rate.Limiter
	sendCh    chan outgoing
	anonymous bool

	// Username is the login messages are sent as; "justinfan…" style when
	// anonymous.
	Username string
}

// New builds a client for the given account. A zero account connects
// anonymously.
func New(acct config.Account, handler Handler) *Client {
	c := &Client{
		handler: handler,
		limiter: sendRate,
		sendCh:  make(chan outgoing, 64),
	}
	if acct.Username == "" {
		c.irc = twitch.NewAnonymousClient()
		c.anonymous = true
		c.Username = anonymousUser
	} else {
		token := acct.Token
		if token != "" && !strings.HasPrefix(token, "oauth:") {
			token = "oauth:" + token
		}
		c.irc = twitch.NewClient(acct.Username, token)
		c.Username = strings.ToLower(acct.Username)
	}
	c.irc.Capabilities = []string{twitch.TagsCapability, twitch.CommandsCapability}
	c.wire()
	return c
}

// Anonymous reports whether the connection is read-only.
func (c *Client) Anonymous() bool { return c.anonymous }

// wire converts library callbacks into events.
func (c *Client) wire() {
	c.irc.OnConnect(func() {
		c.handler(ConnectedEvent{})
	})
	c.irc.OnPrivateMessage(func(m twitch.PrivateMessage) {
		c.handler(MessageEvent{Message: model.FromPrivateMessage(m)})
	})
	c.irc.OnRoomStateMessage(func(m twitch.RoomStateMessage) {
		if id, ok := m.Tags["room-id"]; ok && id != "" {
			c.handler(RoomStateEvent{Channel: m.Channel, RoomID: id})
		}
	})
	c.irc.OnClearChatMessage(func(m twitch.ClearChatMessage) {
		c.handler(ClearChatEvent{
			Channel:     m.Channel,
			TargetLogin: m.TargetUsername,
			Duration:    time.Duration(m.BanDuration) * time.Second,
			Permanent:   m.TargetUsername != "" && m.BanDuration == 0,
		})
	})
	c.irc.OnClearMessage(func(m twitch.ClearMessage) {
		c.handler(ClearMessageEvent{Channel: m.Channel, TargetMsgID: m.TargetMsgID})
	})
	c.irc.OnNoticeMessage(func(m twitch.NoticeMessage) {
		c.handler(NoticeEvent{Channel: m.Channel, Text: m.Message})
	})
	c.irc.OnReconnectMessage(func(twitch.ReconnectMessage) {
		c.handler(ReconnectEvent{})
	})
}

// Run connects and keeps the connection alive until ctx is cancelled,
// backing off between attempts. It blocks; run it on its own goroutine.
func (c *Client) Run(ctx context.Context) error {
	go c.sendLoop(ctx)
	go func() {
		<-ctx.Done()
		c.irc.Disconnect()
	}()

	backoff := time.Second
	for {
		err := c.irc.Connect()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.handler(DisconnectedEvent{Err: err})
		slog.Warn("irc connection lost", "err", err, "retry_in", backoff)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

// Join subscribes to a channel's chat.
func (c *Client) Join(channel string) {
	c.irc.Join(strings.ToLower(strings.TrimPrefix(channel, "#")))
}

// Depart leaves a channel's chat.
func (c *Client) Depart(channel string) {
	c.irc.Depart(strings.ToLower(strings.TrimPrefix(channel, "#")))
}

// Say queues a message for sending. Returns false when the client is
// anonymous or the queue is saturated; the caller already holds the local
// echo and can surface the failure.
func (c *Client) Say(channel, text string) bool {
	if c.anonymous {
		return false
	}
	select {
	case c.sendCh <- outgoing{channel: channel, text: text}:
		return true
	default:
		return false
	}
}

// sendLoop serializes outgoing messages through the rate limiter so a paste
// burst cannot trip the platform's enforcement.
func (c *Client) sendLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case out := <-c.sendCh:
			if err := c.limiter.Wait(ctx); err != nil {
				return
			}
			c.irc.Say(out.channel, out.text)
		}
	}
}
