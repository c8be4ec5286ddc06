// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and persistence for
// streamchat.
//
// The configuration lives in a single TOML file, created with defaults on
// first run and saved atomically with owner-only permissions because it can
// hold an OAuth token.
//
// File location (in order of precedence):
//   - --config flag
//   - $XDG_CONFIG_HOME/streamchat/config.toml (os.UserConfigDir)
//
// A Watcher built on fsnotify reloads the file when it changes on disk, so
// settings like natural scrolling take effect without restarting.
package config
