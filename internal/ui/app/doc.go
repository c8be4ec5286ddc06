// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the top-level Bubble Tea program: the channel tab container,
// the compose input, and the glue between IRC events, the emote and history
// services, the chat log store, and the per-channel transcript panes.
package app
