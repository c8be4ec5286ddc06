// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for channels and chat messages.
//
// This package defines the core domain types used throughout the application
// for representing joined channels and the messages flowing through them.
//
// # Key Types
//
//   - ChatMessage: one line of the transcript, keyed by a monotonically
//     increasing identifier that stays stable across frames
//   - Badge: a (set, version) pair from the message's badge tags
//   - Channel: the bounded transcript of one joined channel
//
// Message keys are allocated process-wide by NextKey and are distinct from
// any protocol-level message ID or content hash: reordering, backfill and
// deletion never reassign them.
package model
