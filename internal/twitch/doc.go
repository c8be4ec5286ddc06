// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package twitch owns the IRC connection to the chat servers.
//
// Protocol parsing is delegated entirely to gempir/go-twitch-irc; this
// package converts its callbacks into domain events, serializes outgoing
// messages through a rate limiter (the platform enforces 20 messages per 30
// seconds for regular users), and reconnects with backoff when the
// connection drops.
//
// Events are delivered through a single Handler callback invoked from the
// connection goroutine; the hosting program forwards them onto its own loop.
package twitch
