// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the chat TUI:
// the channel tab bar, the bottom status bar, the join-channel prompt and
// the help overlay.
package components
